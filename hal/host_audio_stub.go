//go:build !tinygo && !cgo

package hal

import "errors"

type hostBuzzer struct{}

func newHostBuzzer(uint8) (*hostBuzzer, error) {
	return nil, errors.New("host audio requires cgo")
}

func (*hostBuzzer) Tone(uint32) error { return ErrNotImplemented }
func (*hostBuzzer) Off() error        { return ErrNotImplemented }
func (*hostBuzzer) SetVolume(uint8)   {}
