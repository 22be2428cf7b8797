// Package audio plays the level's music and outcome cues.
//
// Samples are 16-bit little-endian stereo PCM at SampleRate. Gameplay code
// talks to a Sink; the terminal client uses EbitenSink while headless runs and
// SSH sessions use LogSink or NopSink.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// SampleRate is the mixing rate of every Sample.
const SampleRate = 44100

const bytesPerFrame = 4

// Sample is decoded PCM ready for playback.
type Sample struct {
	Name string
	PCM  []byte
}

// Duration returns the playback length in seconds.
func (s *Sample) Duration() float64 {
	if s == nil {
		return 0
	}
	return float64(len(s.PCM)/bytesPerFrame) / SampleRate
}

// LoadSample reads a WAV file and resamples it to SampleRate.
func LoadSample(name, path string) (*Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("audio: read %q: %w", path, err)
	}
	return DecodeWAV(name, data)
}

// DecodeWAV decodes WAV bytes into a Sample.
func DecodeWAV(name string, data []byte) (*Sample, error) {
	stream, err := wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("audio: decode wav %q: %w", name, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("audio: read wav %q: %w", name, err)
	}
	return &Sample{Name: name, PCM: pcm}, nil
}

// Bank holds the three sounds a level uses.
type Bank struct {
	BGM  *Sample
	Win  *Sample
	Lose *Sample
}

// LoadBank loads each path, synthesizing a tone for empty ones.
func LoadBank(bgm, win, lose string) (Bank, error) {
	var b Bank
	var err error
	if b.BGM, err = loadOr("bgm", bgm, MusicLoop); err != nil {
		return Bank{}, err
	}
	if b.Win, err = loadOr("win", win, WinJingle); err != nil {
		return Bank{}, err
	}
	if b.Lose, err = loadOr("lose", lose, LoseJingle); err != nil {
		return Bank{}, err
	}
	return b, nil
}

// SynthBank returns a bank made only of built-in tones.
func SynthBank() Bank {
	return Bank{BGM: MusicLoop(), Win: WinJingle(), Lose: LoseJingle()}
}

func loadOr(name, path string, fallback func() *Sample) (*Sample, error) {
	if path == "" {
		return fallback(), nil
	}
	return LoadSample(name, path)
}

// applyPan returns a copy of pcm with the channels attenuated for pan in [-1, 1].
// -1 is hard left, +1 hard right.
func applyPan(pcm []byte, pan float32) []byte {
	out := make([]byte, len(pcm))
	copy(out, pcm)
	if pan == 0 {
		return out
	}
	if pan < -1 {
		pan = -1
	} else if pan > 1 {
		pan = 1
	}
	left := min(1, 1-pan)
	right := min(1, 1+pan)
	for i := 0; i+bytesPerFrame <= len(out); i += bytesPerFrame {
		scale16(out[i:i+2], left)
		scale16(out[i+2:i+4], right)
	}
	return out
}

func scale16(b []byte, g float32) {
	v := int16(uint16(b[0]) | uint16(b[1])<<8)
	v = int16(float32(v) * g)
	b[0] = byte(uint16(v))
	b[1] = byte(uint16(v) >> 8)
}
