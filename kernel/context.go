package kernel

type suspendMode uint8

const (
	suspendNone suspendMode = iota
	suspendSleep
	suspendTick
	suspendEndpoint
)

// Context provides task-local access to kernel operations during one step.
type Context struct {
	k      *Kernel
	taskID TaskID

	mode suspendMode
	due  uint64
	ep   Endpoint
}

// TaskID returns the current task ID.
func (c *Context) TaskID() TaskID { return c.taskID }

// Now returns the current tick.
func (c *Context) Now() uint64 {
	if c.k == nil {
		return 0
	}
	return c.k.now
}

// SleepUntil suspends the task until the clock reaches due.
func (c *Context) SleepUntil(due uint64) {
	c.mode = suspendSleep
	c.due = due
}

// Sleep suspends the task for d ticks.
func (c *Context) Sleep(d uint64) {
	c.SleepUntil(c.Now() + d)
}

// BlockOnTick suspends the task until the clock next advances.
func (c *Context) BlockOnTick() {
	c.mode = suspendTick
}

// BlockOn suspends the task until a message is available on epCap or the
// clock reaches due, whichever comes first. due 0 waits for a message only.
// An invalid capability degrades to SleepUntil(due).
func (c *Context) BlockOn(epCap Capability, due uint64) {
	if c.k == nil || !epCap.valid() || !epCap.canRecv() || epCap.ep >= c.k.endpointCount {
		c.SleepUntil(due)
		return
	}
	c.mode = suspendEndpoint
	c.ep = epCap.ep
	c.due = due
}

// TryRecv reads one message from the capability endpoint without blocking.
func (c *Context) TryRecv(epCap Capability) (Message, bool) {
	if c.k == nil || !epCap.valid() || !epCap.canRecv() {
		return Message{}, false
	}
	return c.k.recv(epCap.ep)
}

// Send sends a message to the capability endpoint.
func (c *Context) Send(toCap Capability, kind uint16, payload []byte) bool {
	return c.SendResult(toCap, kind, payload) == SendOK
}

// SendResult sends a message and reports why it failed, if it did.
func (c *Context) SendResult(toCap Capability, kind uint16, payload []byte) SendResult {
	if c.k == nil {
		return SendErrNoEndpoint
	}
	return c.k.Send(toCap, kind, payload)
}
