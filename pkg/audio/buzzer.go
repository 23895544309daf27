//go:build !headless

package audio

import (
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/pkg/errors"
)

// Buzzer plays a 440 Hz square wave through oto while started.
type Buzzer struct {
	ctx    *oto.Context
	player *oto.Player

	mu      sync.Mutex
	playing bool
}

// NewBuzzer opens the audio device. Only one oto context may exist per
// process.
func NewBuzzer() (*Buzzer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   0,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, errors.Wrap(err, "creating audio context")
	}
	<-ready

	return &Buzzer{
		ctx:    ctx,
		player: ctx.NewPlayer(NewSquareWave(Frequency, SampleRate, Volume)),
	}, nil
}

func (b *Buzzer) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.playing && b.player != nil {
		b.player.Play()
		b.playing = true
	}
}

func (b *Buzzer) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.playing && b.player != nil {
		b.player.Pause()
		b.playing = false
	}
}

func (b *Buzzer) Playing() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.playing
}

// Close releases the player. The buzzer is silent afterwards.
func (b *Buzzer) Close() error {
	b.Stop()

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.player == nil {
		return nil
	}
	err := b.player.Close()
	b.player = nil
	return errors.Wrap(err, "closing audio player")
}
