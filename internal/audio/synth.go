package audio

import "math"

type note struct {
	freq float64 // Hz, 0 is a rest
	dur  float64 // seconds
}

// MusicLoop is a short arpeggio that loops seamlessly.
func MusicLoop() *Sample {
	return render("bgm", 0.18, []note{
		{220, 0.25}, {277.18, 0.25}, {329.63, 0.25}, {277.18, 0.25},
		{196, 0.25}, {246.94, 0.25}, {293.66, 0.25}, {246.94, 0.25},
	})
}

// WinJingle rises.
func WinJingle() *Sample {
	return render("win", 0.5, []note{
		{523.25, 0.12}, {659.25, 0.12}, {783.99, 0.12}, {1046.5, 0.4},
	})
}

// LoseJingle falls.
func LoseJingle() *Sample {
	return render("lose", 0.5, []note{
		{392, 0.18}, {311.13, 0.18}, {233.08, 0.5},
	})
}

func render(name string, gain float64, notes []note) *Sample {
	var frames int
	for _, n := range notes {
		frames += int(n.dur * SampleRate)
	}
	pcm := make([]byte, 0, frames*bytesPerFrame)

	for _, n := range notes {
		count := int(n.dur * SampleRate)
		attack := min(count/10, SampleRate/100)
		for i := 0; i < count; i++ {
			var v float64
			if n.freq > 0 {
				env := 1.0
				if attack > 0 && i < attack {
					env = float64(i) / float64(attack)
				}
				// Linear release to silence at note end avoids clicks.
				env *= 1 - float64(i)/float64(count)
				v = math.Sin(2*math.Pi*n.freq*float64(i)/SampleRate) * env * gain
			}
			s := uint16(int16(v * math.MaxInt16))
			pcm = append(pcm, byte(s), byte(s>>8), byte(s), byte(s>>8))
		}
	}
	return &Sample{Name: name, PCM: pcm}
}
