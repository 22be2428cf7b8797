package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/wingchase/internal/audio"
	"github.com/vovakirdan/wingchase/internal/config"
	"github.com/vovakirdan/wingchase/internal/scene"
)

const testSceneYAML = `
transforms:
  - name: Sphere
    position: [0, 4, 10]
    mesh: Sphere
  - name: Sphere1
    position: [-5, -5, 8]
    mesh: Sphere
  - name: Target
    position: [5, 6, 12]
    mesh: Body
  - name: LeftAnkle
    parent: Target
    position: [-0.3, 0, -0.5]
  - name: RightAnkle
    parent: Target
    position: [0.3, 0, -0.5]
  - name: Camera
    position: [0, -7, 2]
    rotation: [0.7071068, 0.7071068, 0, 0]
cameras:
  - transform: Camera
    fovy: 60
`

type recordingSink struct {
	plays     []string
	loops     []string
	stops     int
	listeners int
	position  mgl32.Vec3
	right     mgl32.Vec3
	ramp      float32
}

type recordingHandle struct{ s *recordingSink }

func (h recordingHandle) Stop() { h.s.stops++ }

func (r *recordingSink) Play(s *audio.Sample, _, _ float32) {
	r.plays = append(r.plays, s.Name)
}

func (r *recordingSink) Loop(s *audio.Sample, _ float32) audio.Handle {
	r.loops = append(r.loops, s.Name)
	return recordingHandle{r}
}

func (r *recordingSink) SetListener(position, right mgl32.Vec3, ramp float32) {
	r.listeners++
	r.position, r.right, r.ramp = position, right, ramp
}

func testBank() audio.Bank {
	return audio.Bank{
		BGM:  &audio.Sample{Name: "bgm"},
		Win:  &audio.Sample{Name: "win"},
		Lose: &audio.Sample{Name: "lose"},
	}
}

func testScene(t *testing.T) *scene.Scene {
	t.Helper()
	sc, err := scene.Parse([]byte(testSceneYAML))
	if err != nil {
		t.Fatalf("scene.Parse() error: %v", err)
	}
	return sc
}

// stillConfig stops every body so proximity tests control positions exactly.
func stillConfig() config.Level {
	cfg := config.Default()
	for i := range cfg.Hazards {
		cfg.Hazards[i].Velocity = mgl32.Vec3{}
		cfg.Hazards[i].Gravity = 0
	}
	cfg.Goal.Velocity = mgl32.Vec3{}
	return cfg
}

func newTestMode(t *testing.T, cfg config.Level) (*Mode, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	m, err := New(testScene(t), cfg, sink, testBank())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return m, sink
}
