package hal

// AnalogPin is an ADC channel scaled to 0..65535.
type AnalogPin interface {
	Get() uint16
}

// Joystick turns a two-axis analog stick with a push button into buttons.
// The rest position is sampled once at construction.
//
// Direction is picked by the dominant axis: sideways is Left or Right,
// down is SoftDrop, and up tilted either way is RotateCW. Readings within
// Deadzone of the rest position (Euclidean) are centred.
type Joystick struct {
	x, y     AnalogPin
	push     GPIOPin
	cx, cy   uint16
	deadzone uint32
}

// DefaultDeadzone suits a 16-bit ADC reading.
const DefaultDeadzone = 16000

// NewJoystick calibrates the stick. push is active-low and may be nil.
func NewJoystick(x, y AnalogPin, push GPIOPin, deadzone uint32) (*Joystick, error) {
	if deadzone == 0 {
		deadzone = DefaultDeadzone
	}
	if push != nil {
		pull := GPIOPullNone
		if push.Caps()&GPIOCapPullUp != 0 {
			pull = GPIOPullUp
		}
		if err := push.Configure(GPIOModeInput, pull); err != nil {
			return nil, err
		}
	}
	return &Joystick{x: x, y: y, push: push, cx: x.Get(), cy: y.Get(), deadzone: deadzone}, nil
}

func (j *Joystick) Read() ButtonState {
	s := j.direction(j.x.Get(), j.y.Get())
	if j.push != nil {
		if level, err := j.push.Read(); err == nil && !level {
			s = s.With(ButtonHardDrop)
		}
	}
	return s
}

func (j *Joystick) direction(x, y uint16) ButtonState {
	dx := absDiff(x, j.cx)
	dy := absDiff(y, j.cy)
	if uint64(dx)*uint64(dx)+uint64(dy)*uint64(dy) <= uint64(j.deadzone)*uint64(j.deadzone) {
		return 0
	}
	var s ButtonState
	switch {
	case dx > dy && x > j.cx:
		s = s.With(ButtonRight)
	case dx > dy:
		s = s.With(ButtonLeft)
	case y > j.cy:
		s = s.With(ButtonRotateCW)
	case dx < dy:
		s = s.With(ButtonSoftDrop)
	}
	return s
}

func absDiff(a, b uint16) uint32 {
	if a > b {
		return uint32(a - b)
	}
	return uint32(b - a)
}
