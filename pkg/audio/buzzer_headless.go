//go:build headless

package audio

// Buzzer tracks the started state without producing sound.
type Buzzer struct {
	playing bool
	starts  int
}

func NewBuzzer() (*Buzzer, error) {
	return &Buzzer{}, nil
}

func (b *Buzzer) Start() {
	if !b.playing {
		b.starts++
	}
	b.playing = true
}

func (b *Buzzer) Stop() {
	b.playing = false
}

func (b *Buzzer) Playing() bool {
	return b.playing
}

// Starts returns how often the buzzer went from silent to playing.
func (b *Buzzer) Starts() int {
	return b.starts
}

func (b *Buzzer) Close() error {
	b.playing = false
	return nil
}
