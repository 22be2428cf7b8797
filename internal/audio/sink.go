package audio

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
)

// Sink is where gameplay sends sound.
type Sink interface {
	// Play fires a one-shot sample. pan is in [-1, 1].
	Play(s *Sample, volume, pan float32)
	// Loop starts s repeating until the handle is stopped.
	Loop(s *Sample, volume float32) Handle
	// SetListener moves the listener, reaching the new pose over ramp seconds.
	SetListener(position, right mgl32.Vec3, ramp float32)
}

// Handle controls a looping sound.
type Handle interface {
	Stop()
}

type nopHandle struct{}

func (nopHandle) Stop() {}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) Play(*Sample, float32, float32) {}
func (NopSink) Loop(*Sample, float32) Handle { return nopHandle{} }
func (NopSink) SetListener(mgl32.Vec3, mgl32.Vec3, float32) {}

// LogSink logs cues and forwards them to Next, if set.
// Listener updates are only logged at debug level.
type LogSink struct {
	Logger *log.Logger
	Next   Sink
}

// NewLogSink returns a sink writing to logger, or to the default logger if nil.
func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSink{Logger: logger.WithPrefix("audio")}
}

func (l *LogSink) Play(s *Sample, volume, pan float32) {
	l.Logger.Info("cue", "sample", sampleName(s), "volume", volume, "pan", pan)
	if l.Next != nil {
		l.Next.Play(s, volume, pan)
	}
}

func (l *LogSink) Loop(s *Sample, volume float32) Handle {
	name := sampleName(s)
	l.Logger.Info("loop start", "sample", name, "volume", volume)
	h := &logHandle{logger: l.Logger, name: name}
	if l.Next != nil {
		h.next = l.Next.Loop(s, volume)
	}
	return h
}

func (l *LogSink) SetListener(position, right mgl32.Vec3, ramp float32) {
	l.Logger.Debug("listener", "position", position, "right", right, "ramp", ramp)
	if l.Next != nil {
		l.Next.SetListener(position, right, ramp)
	}
}

type logHandle struct {
	once   sync.Once
	logger *log.Logger
	name   string
	next   Handle
}

func (h *logHandle) Stop() {
	h.once.Do(func() {
		h.logger.Info("loop stop", "sample", h.name)
		if h.next != nil {
			h.next.Stop()
		}
	})
}

func sampleName(s *Sample) string {
	if s == nil {
		return "<nil>"
	}
	return s.Name
}
