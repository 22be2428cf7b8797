package audio

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// EbitenSink plays through the system audio device.
type EbitenSink struct {
	ctx *ebaudio.Context

	mu       sync.Mutex
	active   []*ebaudio.Player
	position mgl32.Vec3
	right    mgl32.Vec3
}

// NewEbitenSink opens the process-wide audio context, reusing one if it exists.
func NewEbitenSink() (*EbitenSink, error) {
	ctx := ebaudio.CurrentContext()
	if ctx == nil {
		ctx = ebaudio.NewContext(SampleRate)
	}
	if ctx.SampleRate() != SampleRate {
		return nil, fmt.Errorf("audio: context sample rate %d, expected %d", ctx.SampleRate(), SampleRate)
	}
	return &EbitenSink{ctx: ctx, right: mgl32.Vec3{1, 0, 0}}, nil
}

func (e *EbitenSink) Play(s *Sample, volume, pan float32) {
	if s == nil || len(s.PCM) == 0 {
		return
	}
	p := e.ctx.NewPlayerFromBytes(applyPan(s.PCM, pan))
	p.SetVolume(float64(volume))
	p.Play()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.prune()
	// Players must stay referenced until they finish.
	e.active = append(e.active, p)
}

func (e *EbitenSink) Loop(s *Sample, volume float32) Handle {
	if s == nil || len(s.PCM) == 0 {
		return nopHandle{}
	}
	loop := ebaudio.NewInfiniteLoop(bytes.NewReader(s.PCM), int64(len(s.PCM)))
	p, err := e.ctx.NewPlayer(loop)
	if err != nil {
		return nopHandle{}
	}
	p.SetVolume(float64(volume))
	p.Play()
	return &playerHandle{player: p}
}

// SetListener records the listener pose. Samples are not positional yet, so
// the pose only matters to Listener.
func (e *EbitenSink) SetListener(position, right mgl32.Vec3, _ float32) {
	e.mu.Lock()
	e.position, e.right = position, right
	e.mu.Unlock()
}

// Listener returns the last pose set.
func (e *EbitenSink) Listener() (position, right mgl32.Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.position, e.right
}

// Close stops every one-shot still playing.
func (e *EbitenSink) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, p := range e.active {
		p.Pause()
		_ = p.Close()
	}
	e.active = nil
	return nil
}

func (e *EbitenSink) prune() {
	kept := e.active[:0]
	for _, p := range e.active {
		if p.IsPlaying() {
			kept = append(kept, p)
			continue
		}
		_ = p.Close()
	}
	e.active = kept
}

type playerHandle struct {
	once   sync.Once
	player *ebaudio.Player
}

func (h *playerHandle) Stop() {
	h.once.Do(func() {
		h.player.Pause()
		_ = h.player.Close()
	})
}
