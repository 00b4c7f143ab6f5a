//go:build tinygo && !baremetal

package hal

// tinyGoHostFramebuffer keeps frames in memory only.
type tinyGoHostFramebuffer struct {
	buf      [PanelWidth * PanelHeight / 8]byte
	presents uint64
}

func (f *tinyGoHostFramebuffer) Width() int          { return PanelWidth }
func (f *tinyGoHostFramebuffer) Height() int         { return PanelHeight }
func (f *tinyGoHostFramebuffer) Format() PixelFormat { return PixelFormatMono1Page }
func (f *tinyGoHostFramebuffer) Buffer() []byte      { return f.buf[:] }

func (f *tinyGoHostFramebuffer) Clear() {
	f.buf = [len(f.buf)]byte{}
}

func (f *tinyGoHostFramebuffer) Present() error {
	f.presents++
	return nil
}
