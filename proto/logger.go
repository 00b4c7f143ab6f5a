package proto

// LogLinePayload encodes a MsgLogLine payload.
//
// Convention:
// - Payload is UTF-8 bytes without a trailing newline.
// - Delivery is best-effort; callers may drop on overflow.
// - Lines longer than max are cut at max bytes.
func LogLinePayload(s string, max int) []byte {
	if len(s) > max {
		s = s[:max]
	}
	return []byte(s)
}
