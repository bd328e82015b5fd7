package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand/v2"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"

	"jinglesmith/internal/config"
	"jinglesmith/internal/describe"
	"jinglesmith/internal/history"
	"jinglesmith/internal/player"
	"jinglesmith/internal/stream"
	"jinglesmith/internal/synth"
)

func main() {
	cfg := config.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Println("jinglesmith starting up...")

	// Playback controller and broadcast fan-out
	controller := player.NewController()
	broadcaster := stream.NewBroadcaster()
	go broadcaster.Run(ctx, controller.Frames())

	// Local speaker monitor (optional)
	if cfg.Monitor {
		if m, err := stream.StartMonitor(broadcaster); err != nil {
			log.Printf("Speaker monitor unavailable: %v", err)
		} else {
			defer m.Close()
		}
	}

	// Ollama LLM (optional -- enhances jingle descriptions)
	var describer *describe.Describer
	var ollamaModel string
	if cfg.OllamaURL != "" {
		client := describe.NewClient(cfg.OllamaURL, cfg.OllamaModel)
		readyCtx, readyCancel := context.WithTimeout(ctx, 30*time.Second)
		if client.WaitForReady(readyCtx) {
			describer = describe.NewDescriber(client)
			ollamaModel = cfg.OllamaModel
			log.Printf("Ollama connected: %s (LLM descriptions enabled)", cfg.OllamaModel)
		} else {
			describer = describe.NewDescriber(nil)
			log.Println("Ollama not available, using static descriptions")
		}
		readyCancel()
	} else {
		describer = describe.NewDescriber(nil)
		log.Println("Ollama not configured (set OLLAMA_URL to enable LLM descriptions)")
	}

	// History persistence (optional)
	store := history.NewClient(cfg.HistoryAPIURL, cfg.HistoryAPIKey)
	if !store.Enabled() {
		log.Println("History API not configured (set HISTORY_API_URL to persist records)")
	}

	// WebRTC handler (track peer count for status)
	webrtcHandler := stream.NewWebRTCHandler(broadcaster)

	mux := http.NewServeMux()

	// Audio streams
	mux.Handle("/stream", stream.NewHTTPHandler(broadcaster))
	mux.Handle("/offer", webrtcHandler)

	mux.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST required", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			PodcastName string `json:"podcast_name"`
			Theme       string `json:"theme"`
			Tone        string `json:"tone"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PodcastName == "" {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		desc := describer.Describe(r.Context(), req.PodcastName, req.Theme, req.Tone)

		rec := history.Record{
			ID:            uuid.New().String(),
			PodcastName:   req.PodcastName,
			Theme:         req.Theme,
			Tone:          req.Tone,
			BPM:           desc.BPM,
			MusicalStyle:  desc.MusicalStyle,
			VoiceoverLine: desc.VoiceoverLine,
			Description:   desc.Description,
			CreatedAt:     time.Now().UTC(),
		}
		if store.Enabled() {
			if err := store.Save(r.Context(), rec); err != nil {
				log.Printf("History save failed: %v", err)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		json.NewEncoder(w).Encode(rec)
	})

	mux.HandleFunc("/api/play", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST required", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			BPM          int     `json:"bpm"`
			MusicalStyle string  `json:"musical_style"`
			Tone         string  `json:"tone"`
			Duration     float64 `json:"duration_seconds"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BPM <= 0 {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Duration <= 0 {
			req.Duration = cfg.JingleDuration
		}

		go func() {
			err := controller.Play(ctx, player.Params{
				BPM:      req.BPM,
				Style:    req.MusicalStyle,
				Tone:     req.Tone,
				Duration: req.Duration,
			})
			if err != nil {
				log.Printf("Playback error: %v", err)
			}
		}()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})

	mux.HandleFunc("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST required", http.StatusMethodNotAllowed)
			return
		}
		controller.Stop()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})

	mux.HandleFunc("/api/status", func(w http.ResponseWriter, r *http.Request) {
		elapsed, total, playing := controller.Progress()
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		json.NewEncoder(w).Encode(map[string]any{
			"playing":          playing,
			"elapsed":          elapsed,
			"duration":         total,
			"http_listeners":   broadcaster.ListenerCount(),
			"webrtc_listeners": webrtcHandler.PeerCount(),
			"config": map[string]any{
				"default_duration": cfg.JingleDuration,
				"llm_model":        ollamaModel,
			},
		})
	})

	mux.HandleFunc("/api/waveform", func(w http.ResponseWriter, r *http.Request) {
		bpm, err := strconv.Atoi(r.URL.Query().Get("bpm"))
		if err != nil || bpm <= 0 {
			http.Error(w, "invalid bpm", http.StatusBadRequest)
			return
		}
		samples := 64
		if v := r.URL.Query().Get("samples"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1024 {
				samples = n
			}
		}
		rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		json.NewEncoder(w).Encode(map[string]any{
			"values": synth.WaveformPreview(bpm, samples, rng),
		})
	})

	mux.HandleFunc("/api/history", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if !store.Enabled() {
			json.NewEncoder(w).Encode([]history.Record{})
			return
		}
		records, err := store.Recent(r.Context(), 20)
		if err != nil {
			log.Printf("History list failed: %v", err)
			http.Error(w, "history unavailable", http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(records)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		controller.Stop()
		server.Close()
	}()

	log.Printf("jinglesmith live on %s", addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("HTTP server error: %v", err)
	}
}
