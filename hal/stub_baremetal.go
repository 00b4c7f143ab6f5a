//go:build tinygo && baremetal

package hal

// stubFramebuffer stands in when the panel does not answer. Frames are
// rendered and dropped; Present reports the missing device.
type stubFramebuffer struct {
	buf [PanelWidth * PanelHeight / 8]byte
}

func (f *stubFramebuffer) Width() int          { return PanelWidth }
func (f *stubFramebuffer) Height() int         { return PanelHeight }
func (f *stubFramebuffer) Format() PixelFormat { return PixelFormatMono1Page }
func (f *stubFramebuffer) Buffer() []byte      { return f.buf[:] }
func (f *stubFramebuffer) Clear()              { f.buf = [len(f.buf)]byte{} }
func (f *stubFramebuffer) Present() error      { return ErrNotImplemented }
