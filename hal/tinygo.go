//go:build tinygo && baremetal

package hal

import (
	"machine"
)

type tinyGoHAL struct {
	logger  *uartLogger
	led     *pinLED
	fb      Framebuffer
	buttons Buttons
	t       *tinyGoTime
	bz      Buzzer
}

// New returns a Raspberry Pi Pico HAL implementation.
//
//	UART0  GP0 (TX) / GP1 (RX), 115200 8N1
//	I2C0   GP20 (SDA) / GP21 (SCL), SSD1306 at 0x3C
//	Stick  GP26 (y) / GP27 (x) ADC, GP22 push
//	Keys   GP10..GP15, active-low
//	Buzzer GP2 PWM
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	var fb Framebuffer
	if d, err := newSSD1306(); err == nil {
		fb = d
	} else {
		logger.WriteLineString("hal: display: " + err.Error())
		fb = &stubFramebuffer{}
	}

	var bz Buzzer
	if b := newPWMBuzzer(machine.GP2); b != nil {
		bz = b
	}

	return &tinyGoHAL{
		logger:  logger,
		led:     &pinLED{pin: ledPin},
		fb:      fb,
		buttons: newBoardButtons(logger),
		t:       newTinyGoTime(),
		bz:      bz,
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) LED() LED         { return h.led }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Buttons() Buttons { return h.buttons }
func (h *tinyGoHAL) Time() Time       { return h.t }
func (h *tinyGoHAL) Entropy() Entropy { return rngEntropy{} }
func (h *tinyGoHAL) Buzzer() Buzzer   { return h.bz }

type rngEntropy struct{}

func (rngEntropy) Uint32() (uint32, error) { return machine.GetRNG() }
