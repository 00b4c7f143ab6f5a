//go:build tinygo && baremetal

package hal

import (
	"machine"

	"tinygo.org/x/drivers/ssd1306"
)

// ssd1306Framebuffer renders straight into the driver's buffer, which
// already uses the page layout of PixelFormatMono1Page.
type ssd1306Framebuffer struct {
	dev ssd1306.Device
	buf []byte
}

func newSSD1306() (*ssd1306Framebuffer, error) {
	bus := machine.I2C0
	if err := bus.Configure(machine.I2CConfig{
		SDA:       machine.GP20,
		SCL:       machine.GP21,
		Frequency: 400 * machine.KHz,
	}); err != nil {
		return nil, err
	}
	f := &ssd1306Framebuffer{dev: ssd1306.NewI2C(bus)}
	f.dev.Configure(ssd1306.Config{
		Width:    PanelWidth,
		Height:   PanelHeight,
		Address:  0x3C,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	f.dev.ClearDisplay()
	f.buf = f.dev.GetBuffer()
	return f, nil
}

func (f *ssd1306Framebuffer) Width() int          { return PanelWidth }
func (f *ssd1306Framebuffer) Height() int         { return PanelHeight }
func (f *ssd1306Framebuffer) Format() PixelFormat { return PixelFormatMono1Page }
func (f *ssd1306Framebuffer) Buffer() []byte      { return f.buf }
func (f *ssd1306Framebuffer) Clear()              { f.dev.ClearBuffer() }
func (f *ssd1306Framebuffer) Present() error      { return f.dev.Display() }
