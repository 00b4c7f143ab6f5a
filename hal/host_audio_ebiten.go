//go:build !tinygo && cgo

package hal

import (
	"errors"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const hostSampleRate = 44100

// hostBuzzer plays a square wave through Ebiten's audio package, standing in
// for the PWM buzzer.
type hostBuzzer struct {
	mu    sync.Mutex
	hz    uint32
	phase uint32 // samples into the current period
	amp   int16

	player *audio.Player
}

func newHostBuzzer(percent uint8) (*hostBuzzer, error) {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(hostSampleRate)
	} else if ctx.SampleRate() != hostSampleRate {
		return nil, errors.New("host audio: ebiten audio context sample rate is fixed")
	}

	b := &hostBuzzer{}
	b.SetVolume(percent)
	p, err := ctx.NewPlayer(&squareReader{b: b})
	if err != nil {
		return nil, err
	}
	p.SetBufferSize(50 * time.Millisecond)
	p.Play()
	b.player = p
	return b, nil
}

func (b *hostBuzzer) Tone(hz uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if hz != b.hz {
		b.hz = hz
		b.phase = 0
	}
	return nil
}

func (b *hostBuzzer) Off() error { return b.Tone(0) }

// SetVolume maps the duty cycle percent onto the wave amplitude.
func (b *hostBuzzer) SetVolume(percent uint8) {
	if percent > 50 {
		percent = 50
	}
	b.mu.Lock()
	b.amp = int16(percent) * 600
	b.mu.Unlock()
}

// sample returns the next mono sample.
func (b *hostBuzzer) sample() int16 {
	if b.hz == 0 {
		return 0
	}
	period := hostSampleRate / b.hz
	if period < 2 {
		period = 2
	}
	b.phase++
	if b.phase >= period {
		b.phase = 0
	}
	if b.phase < period/2 {
		return b.amp
	}
	return -b.amp
}

type squareReader struct {
	b *hostBuzzer
}

func (r *squareReader) Read(p []byte) (int, error) {
	b := r.b
	b.mu.Lock()
	defer b.mu.Unlock()
	// Ebiten audio expects 16-bit little-endian stereo.
	n := len(p) &^ 3
	for i := 0; i < n; i += 4 {
		s := b.sample()
		p[i+0] = byte(s)
		p[i+1] = byte(s >> 8)
		p[i+2] = byte(s)
		p[i+3] = byte(s >> 8)
	}
	return n, nil
}
