// Package logger is the log sink task and the helper tasks use to reach it.
package logger

import (
	"picotris/hal"
	"picotris/kernel"
	"picotris/proto"
)

type Service struct {
	log hal.Logger
	ep  kernel.Capability
}

func New(log hal.Logger, ep kernel.Capability) *Service {
	return &Service{log: log, ep: ep}
}

func (s *Service) Step(ctx *kernel.Context) {
	for {
		msg, ok := ctx.TryRecv(s.ep)
		if !ok {
			break
		}
		if s.log == nil || msg.Kind != uint16(proto.MsgLogLine) {
			continue
		}
		s.log.WriteLineBytes(msg.Payload())
	}
	ctx.BlockOn(s.ep, 0)
}

// Log sends a log line to the logger service.
//
// The call is best-effort: it may drop on queue full. Long lines are cut.
func Log(ctx *kernel.Context, logCap kernel.Capability, line string) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrNoEndpoint
	}
	if !logCap.Valid() {
		return kernel.SendErrInvalidToCap
	}
	return ctx.SendResult(logCap, uint16(proto.MsgLogLine), proto.LogLinePayload(line, kernel.MaxMessageBytes))
}
