//go:build !tinygo

package hal

import "sync"

// hostFramebuffer is a 128x64 page-layout buffer. Present copies the back
// buffer to a front buffer the window reads.
type hostFramebuffer struct {
	mu       sync.Mutex
	buf      []byte
	front    []byte
	presents uint64
}

func newHostFramebuffer() *hostFramebuffer {
	size := PanelWidth * PanelHeight / 8
	return &hostFramebuffer{
		buf:   make([]byte, size),
		front: make([]byte, size),
	}
}

func (f *hostFramebuffer) Width() int          { return PanelWidth }
func (f *hostFramebuffer) Height() int         { return PanelHeight }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatMono1Page }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }

func (f *hostFramebuffer) Clear() {
	for i := range f.buf {
		f.buf[i] = 0
	}
}

func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(f.front, f.buf)
	f.presents++
	return nil
}

func (f *hostFramebuffer) snapshot(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.front)
}

func (f *hostFramebuffer) presentCount() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.presents
}
