package audio

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
)

func frame(l, r int16) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint16(b[0:], uint16(l))
	binary.LittleEndian.PutUint16(b[2:], uint16(r))
	return b
}

func channels(b []byte) (int16, int16) {
	return int16(binary.LittleEndian.Uint16(b[0:])), int16(binary.LittleEndian.Uint16(b[2:]))
}

func TestApplyPan(t *testing.T) {
	src := frame(1000, -1000)

	tests := []struct {
		name string
		pan  float32
		l, r int16
	}{
		{"center", 0, 1000, -1000},
		{"hard left", -1, 1000, 0},
		{"hard right", 1, 0, -1000},
		{"half right", 0.5, 500, -1000},
		{"clamped", 3, 0, -1000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := applyPan(src, tc.pan)
			l, r := channels(out)
			if l != tc.l || r != tc.r {
				t.Errorf("applyPan(%v) = (%d, %d), expected (%d, %d)", tc.pan, l, r, tc.l, tc.r)
			}
		})
	}

	if l, r := channels(src); l != 1000 || r != -1000 {
		t.Error("applyPan should not modify its input")
	}
}

func TestSynthBank(t *testing.T) {
	b := SynthBank()
	for _, s := range []*Sample{b.BGM, b.Win, b.Lose} {
		if s == nil || len(s.PCM) == 0 {
			t.Fatalf("synth sample missing: %+v", s)
		}
		if len(s.PCM)%bytesPerFrame != 0 {
			t.Errorf("%s: PCM length %d is not frame aligned", s.Name, len(s.PCM))
		}
	}
	if d := b.BGM.Duration(); d < 1.9 || d > 2.1 {
		t.Errorf("BGM duration = %v, expected ~2s", d)
	}
	if (*Sample)(nil).Duration() != 0 {
		t.Error("nil sample should have zero duration")
	}
}

// wavFile builds a minimal 16-bit stereo PCM WAV.
func wavFile(frames [][]byte) []byte {
	var data bytes.Buffer
	for _, f := range frames {
		data.Write(f)
	}
	var b bytes.Buffer
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(36+data.Len()))
	b.WriteString("WAVEfmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&b, binary.LittleEndian, uint16(2))
	binary.Write(&b, binary.LittleEndian, uint32(SampleRate))
	binary.Write(&b, binary.LittleEndian, uint32(SampleRate*4))
	binary.Write(&b, binary.LittleEndian, uint16(4))
	binary.Write(&b, binary.LittleEndian, uint16(16))
	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, uint32(data.Len()))
	b.Write(data.Bytes())
	return b.Bytes()
}

func TestLoadBank(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "win.wav")
	if err := os.WriteFile(path, wavFile([][]byte{frame(1, 2), frame(3, 4)}), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := LoadBank("", path, "")
	if err != nil {
		t.Fatalf("LoadBank() error: %v", err)
	}
	if b.Win.Name != "win" || len(b.Win.PCM) != 8 {
		t.Errorf("Win = %s with %d bytes, expected 8 bytes of decoded PCM", b.Win.Name, len(b.Win.PCM))
	}
	if b.BGM == nil || b.Lose == nil {
		t.Error("empty paths should fall back to synth tones")
	}

	if _, err := LoadBank("", "", filepath.Join(dir, "missing.wav")); err == nil {
		t.Error("missing file should be an error")
	}
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	if _, err := DecodeWAV("junk", []byte("not a wav file at all")); err == nil {
		t.Error("DecodeWAV should reject non-WAV data")
	}
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	sink := NewLogSink(logger)

	h := sink.Loop(&Sample{Name: "bgm"}, 1)
	sink.Play(&Sample{Name: "win"}, 0.5, 0)
	sink.SetListener(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, 1.0/60)
	h.Stop()
	h.Stop()

	out := buf.String()
	for _, want := range []string{"loop start", "bgm", "cue", "win"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "loop stop") != 1 {
		t.Errorf("Stop should log once:\n%s", out)
	}
	if strings.Contains(out, "listener") {
		t.Error("listener updates should stay below info level")
	}
}

func TestNopSink(t *testing.T) {
	var s Sink = NopSink{}
	s.Play(nil, 1, 0)
	s.Loop(nil, 1).Stop()
	s.SetListener(mgl32.Vec3{}, mgl32.Vec3{}, 0)
}

type countingSink struct {
	plays, loops, stops, listeners int
}

type countingHandle struct{ s *countingSink }

func (h countingHandle) Stop() { h.s.stops++ }

func (c *countingSink) Play(*Sample, float32, float32) { c.plays++ }
func (c *countingSink) Loop(*Sample, float32) Handle {
	c.loops++
	return countingHandle{c}
}
func (c *countingSink) SetListener(mgl32.Vec3, mgl32.Vec3, float32) { c.listeners++ }

func TestLogSinkForwards(t *testing.T) {
	next := &countingSink{}
	sink := NewLogSink(log.New(io.Discard))
	sink.Next = next

	h := sink.Loop(&Sample{Name: "bgm"}, 1)
	sink.Play(&Sample{Name: "lose"}, 1, -1)
	sink.SetListener(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, 0)
	h.Stop()
	h.Stop()

	if next.plays != 1 || next.loops != 1 || next.listeners != 1 {
		t.Errorf("forwarded (plays, loops, listeners) = (%d, %d, %d), expected (1, 1, 1)",
			next.plays, next.loops, next.listeners)
	}
	if next.stops != 1 {
		t.Errorf("forwarded stops = %d, expected 1", next.stops)
	}
}
