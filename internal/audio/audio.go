package audio

import (
	"encoding/binary"
	"time"
)

const (
	SampleRate    = 48000
	Channels      = 2
	BitDepth      = 16
	FrameDuration = 20 * time.Millisecond
	FrameSize     = 960                  // samples per channel per 20ms frame
	FrameSamples  = FrameSize * Channels // total interleaved samples per frame
	FrameBytes    = FrameSamples * 2     // bytes per frame (int16 = 2 bytes)
)

// SamplesToBytes converts int16 samples to little-endian bytes.
func SamplesToBytes(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	return buf
}

// SampleToInt16 converts a float sample in [-1,1] to int16, clipping
// anything outside that range.
func SampleToInt16(v float64) int16 {
	v *= 32767
	if v > 32767 {
		v = 32767
	} else if v < -32768 {
		v = -32768
	}
	return int16(v)
}

// Int16ToFloat converts an int16 sample back to a float in [-1,1).
func Int16ToFloat(s int16) float64 {
	return float64(s) / 32768
}

// Frames splits interleaved stereo PCM into 20ms frames. A trailing
// partial frame is zero-padded so every frame has the same length.
func Frames(pcm []int16) [][]int16 {
	n := (len(pcm) + FrameSamples - 1) / FrameSamples
	frames := make([][]int16, 0, n)
	for i := 0; i < len(pcm); i += FrameSamples {
		end := i + FrameSamples
		if end > len(pcm) {
			frame := make([]int16, FrameSamples)
			copy(frame, pcm[i:])
			frames = append(frames, frame)
			break
		}
		frames = append(frames, pcm[i:end])
	}
	return frames
}
