// Package music plays the background theme on the buzzer.
package music

import (
	"fmt"

	"picotris/hal"
	"picotris/kernel"
	"picotris/music"
	"picotris/proto"
	"picotris/tasks/logger"
)

// Task sequences notes on a hal.Buzzer. Play and stop requests arrive on the
// control endpoint as MsgMusic.
type Task struct {
	bz     hal.Buzzer
	player *music.Player
	tempo  music.Tempo
	ctl    kernel.Capability
	log    kernel.Capability

	playing bool
	inGap   bool
	gap     uint32
	next    uint64

	notes  uint64
	errors uint64
}

// New returns the music task. With a nil buzzer the task only drains its
// control endpoint.
func New(bz hal.Buzzer, tempo music.Tempo, autoplay bool, ctl, log kernel.Capability) *Task {
	return &Task{
		bz:      bz,
		player:  music.NewPlayer(music.Theme, tempo),
		tempo:   tempo,
		ctl:     ctl,
		log:     log,
		playing: autoplay && bz != nil,
	}
}

// Playing reports whether the theme is running.
func (t *Task) Playing() bool { return t.playing }

// Notes returns how many notes have been started.
func (t *Task) Notes() uint64 { return t.notes }

// Errors returns how many buzzer calls failed.
func (t *Task) Errors() uint64 { return t.errors }

func (t *Task) Step(ctx *kernel.Context) {
	now := ctx.Now()
	for {
		msg, ok := ctx.TryRecv(t.ctl)
		if !ok {
			break
		}
		if msg.Kind != uint16(proto.MsgMusic) {
			continue
		}
		play, ok := proto.DecodeMusicPayload(msg.Payload())
		if !ok {
			continue
		}
		t.control(ctx, now, play)
	}

	if !t.playing {
		ctx.BlockOn(t.ctl, 0)
		return
	}

	// Resync after a stall instead of replaying every missed note.
	if now > t.next+uint64(t.tempo.Whole()) {
		t.next = now
	}
	for now >= t.next {
		t.advance(ctx)
	}
	ctx.BlockOn(t.ctl, t.next)
}

func (t *Task) control(ctx *kernel.Context, now uint64, play bool) {
	if t.bz == nil {
		return
	}
	if !play {
		if t.playing {
			t.playing = false
			t.check(ctx, t.bz.Off())
		}
		return
	}
	t.player.Rewind()
	t.playing = true
	t.inGap = false
	t.gap = 0
	t.next = now
}

// advance ends the current note or gap and schedules the next one.
func (t *Task) advance(ctx *kernel.Context) {
	if !t.inGap && t.gap > 0 {
		t.inGap = true
		t.check(ctx, t.bz.Off())
		t.next += uint64(t.gap)
		return
	}
	t.inGap = false

	note, sound, gap := t.player.Next()
	if note == music.Rest {
		t.check(ctx, t.bz.Off())
	} else {
		t.check(ctx, t.bz.Tone(note.Hz()))
	}
	t.notes++
	t.gap = gap
	if sound == 0 {
		sound = 1
	}
	t.next += uint64(sound)
}

func (t *Task) check(ctx *kernel.Context, err error) {
	if err == nil {
		return
	}
	t.errors++
	if t.errors == 1 {
		logger.Log(ctx, t.log, fmt.Sprintf("music: buzzer: %v", err))
	}
}
