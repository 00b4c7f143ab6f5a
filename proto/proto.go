package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgCommand
	MsgFrame
	MsgMusic
)

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log-line"
	case MsgCommand:
		return "command"
	case MsgFrame:
		return "frame"
	case MsgMusic:
		return "music"
	default:
		return "unknown"
	}
}
