package kernel

import "sync"

// PanicInfo contains details about a recovered panic.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

type panicState struct {
	once    sync.Once
	handler func(PanicInfo)
	info    *PanicInfo
}

// SetPanicHandler installs the handler invoked on the first task panic.
//
// The handler runs at most once. It must not panic.
func (k *Kernel) SetPanicHandler(fn func(PanicInfo)) {
	k.panic.handler = fn
}

// Panic returns the recovered panic that halted the kernel, if any.
func (k *Kernel) Panic() (PanicInfo, bool) {
	if k.panic.info == nil {
		return PanicInfo{}, false
	}
	return *k.panic.info, true
}

func (k *Kernel) triggerPanic(info PanicInfo) {
	k.panic.once.Do(func() {
		info.Stack = captureStack()
		k.panic.info = &info
		if fn := k.panic.handler; fn != nil {
			fn(info)
		}
	})
}
