package kernel

import "errors"

const (
	maxTasks     = 16
	maxEndpoints = 16
	mailboxSlots = 8
)

var (
	ErrTooManyTasks     = errors.New("kernel: too many tasks")
	ErrTooManyEndpoints = errors.New("kernel: too many endpoints")
)

type TaskID uint8

// Rights define which operations are allowed for a capability.
type Rights uint8

const (
	RightSend Rights = 1 << iota
	RightRecv
)

// Endpoint identifies an IPC destination.
type Endpoint uint8

// Policy selects how an endpoint buffers messages.
type Policy uint8

const (
	// EndpointQueue keeps up to mailboxSlots messages in order and rejects
	// sends when full.
	EndpointQueue Policy = iota
	// EndpointLatest keeps one message; a newer send replaces an unconsumed
	// older one.
	EndpointLatest
)

// Capability grants access to an IPC endpoint.
//
// It is opaque by construction (no exported fields).
type Capability struct {
	ep     Endpoint
	rights Rights
}

func (c Capability) valid() bool {
	return c.rights != 0
}

func (c Capability) Valid() bool { return c.valid() }

func (c Capability) canSend() bool { return c.rights&RightSend != 0 }
func (c Capability) canRecv() bool { return c.rights&RightRecv != 0 }

// Restrict returns a capability with a reduced set of rights.
func (c Capability) Restrict(rights Rights) Capability {
	if !c.valid() {
		return Capability{}
	}
	r := c.rights & rights
	if r == 0 {
		return Capability{}
	}
	return Capability{ep: c.ep, rights: r}
}

// MaxMessageBytes is the maximum payload size for IPC messages.
const MaxMessageBytes = 48

// Message is a fixed-size IPC envelope.
type Message struct {
	Kind uint16
	Len  uint16
	Data [MaxMessageBytes]byte
}

// Payload returns the valid part of Data.
func (m *Message) Payload() []byte {
	n := int(m.Len)
	if n > len(m.Data) {
		n = len(m.Data)
	}
	return m.Data[:n]
}

// SendResult describes the outcome of a send attempt.
type SendResult uint8

const (
	SendOK SendResult = iota
	SendErrInvalidToCap
	SendErrToNoSendRight
	SendErrNoEndpoint
	SendErrPayloadTooLarge
	SendErrQueueFull
)

func (r SendResult) String() string {
	switch r {
	case SendOK:
		return "ok"
	case SendErrInvalidToCap:
		return "invalid to capability"
	case SendErrToNoSendRight:
		return "to capability has no send right"
	case SendErrNoEndpoint:
		return "no such endpoint"
	case SendErrPayloadTooLarge:
		return "payload too large"
	case SendErrQueueFull:
		return "queue full"
	default:
		return "unknown"
	}
}

// Task is a cooperative unit of execution.
//
// Step runs to completion and declares how the task suspends through the
// Context. A step that declares nothing stays runnable.
type Task interface {
	Step(*Context)
}

type endpointState struct {
	policy   Policy
	q        mailbox
	waitMask uint32
}

type taskState struct {
	task     Task
	runnable bool
	onTick   bool
	waiting  Endpoint
	blocked  bool
	due      uint64 // 0: no deadline
	steps    uint64
}

// Kernel is a minimal cooperative scheduler plus IPC router.
//
// All methods must be called from one goroutine; tasks never run
// concurrently.
type Kernel struct {
	endpoints     [maxEndpoints]endpointState
	endpointCount Endpoint

	tasks     [maxTasks]taskState
	taskCount TaskID

	rr  TaskID
	now uint64

	halted bool
	panic  panicState
}

// New creates a kernel instance.
func New() *Kernel {
	return &Kernel{}
}

// NewEndpoint allocates a new endpoint and returns a capability for it.
func (k *Kernel) NewEndpoint(policy Policy, rights Rights) (Capability, error) {
	if k.endpointCount >= maxEndpoints {
		return Capability{}, ErrTooManyEndpoints
	}
	ep := k.endpointCount
	k.endpointCount++
	k.endpoints[ep].policy = policy
	return Capability{ep: ep, rights: rights}, nil
}

// AddTask registers a task and returns its ID. New tasks start runnable.
func (k *Kernel) AddTask(t Task) (TaskID, error) {
	if k.taskCount >= maxTasks {
		return 0, ErrTooManyTasks
	}
	id := k.taskCount
	k.taskCount++
	k.tasks[id] = taskState{task: t, runnable: true}
	return id, nil
}

// Now returns the current tick (milliseconds).
func (k *Kernel) Now() uint64 { return k.now }

// Halted reports whether a task panic stopped scheduling.
func (k *Kernel) Halted() bool { return k.halted }

// Steps returns how many steps task id has run.
func (k *Kernel) Steps(id TaskID) uint64 {
	if id >= k.taskCount {
		return 0
	}
	return k.tasks[id].steps
}

// TickTo advances the clock to now and wakes every task whose suspension
// has ended. Time never moves backwards; older values are ignored.
func (k *Kernel) TickTo(now uint64) {
	if now <= k.now {
		return
	}
	k.now = now
	for tid := TaskID(0); tid < k.taskCount; tid++ {
		st := &k.tasks[tid]
		if st.runnable || st.task == nil {
			continue
		}
		switch {
		case st.onTick:
			k.wake(tid)
		case st.due != 0 && st.due <= now:
			k.wake(tid)
		}
	}
}

// NextDeadline returns the earliest pending wake-up time.
func (k *Kernel) NextDeadline() (uint64, bool) {
	var next uint64
	found := false
	for tid := TaskID(0); tid < k.taskCount; tid++ {
		st := &k.tasks[tid]
		if st.runnable {
			return k.now, true
		}
		if st.onTick {
			return k.now + 1, true
		}
		if st.due != 0 && (!found || st.due < next) {
			next, found = st.due, true
		}
	}
	return next, found
}

func (k *Kernel) wake(tid TaskID) {
	st := &k.tasks[tid]
	if st.blocked && st.waiting < k.endpointCount {
		k.endpoints[st.waiting].waitMask &^= 1 << tid
	}
	st.runnable = true
	st.onTick = false
	st.blocked = false
	st.due = 0
}

// Step runs at most one runnable task step and reports whether one ran.
func (k *Kernel) Step() bool {
	if k.taskCount == 0 || k.halted {
		return false
	}

	for i := TaskID(0); i < k.taskCount; i++ {
		id := (k.rr + i) % k.taskCount
		st := &k.tasks[id]
		if st.task == nil || !st.runnable {
			continue
		}

		k.rr = (id + 1) % k.taskCount
		ctx := &Context{k: k, taskID: id}
		if !k.run(st, ctx) {
			return true
		}
		st.steps++

		switch ctx.mode {
		case suspendTick:
			st.runnable = false
			st.onTick = true
		case suspendSleep:
			if ctx.due > k.now {
				st.runnable = false
				st.due = ctx.due
			}
		case suspendEndpoint:
			ep := &k.endpoints[ctx.ep]
			if ep.q.len() > 0 || (ctx.due != 0 && ctx.due <= k.now) {
				break
			}
			st.runnable = false
			st.blocked = true
			st.waiting = ctx.ep
			st.due = ctx.due
			ep.waitMask |= 1 << id
		}
		return true
	}
	return false
}

func (k *Kernel) run(st *taskState, ctx *Context) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			k.halted = true
			k.triggerPanic(PanicInfo{TaskID: ctx.taskID, Value: r})
			ok = false
		}
	}()
	st.task.Step(ctx)
	return true
}

// RunUntilIdle runs task steps until no task is runnable or limit steps
// have run (limit <= 0 means no limit). It returns the number of steps.
func (k *Kernel) RunUntilIdle(limit int) int {
	n := 0
	for limit <= 0 || n < limit {
		if !k.Step() {
			break
		}
		n++
	}
	return n
}

// Send delivers a message from outside any task, for example from an
// interrupt-driven platform hook.
func (k *Kernel) Send(toCap Capability, kind uint16, payload []byte) SendResult {
	if !toCap.valid() {
		return SendErrInvalidToCap
	}
	if !toCap.canSend() {
		return SendErrToNoSendRight
	}
	return k.send(toCap.ep, kind, payload)
}

func (k *Kernel) send(to Endpoint, kind uint16, payload []byte) SendResult {
	if to >= k.endpointCount {
		return SendErrNoEndpoint
	}
	if len(payload) > MaxMessageBytes {
		return SendErrPayloadTooLarge
	}

	var msg Message
	msg.Kind = kind
	msg.Len = uint16(len(payload))
	copy(msg.Data[:], payload)

	ep := &k.endpoints[to]
	switch ep.policy {
	case EndpointLatest:
		ep.q.replace(msg)
	default:
		if !ep.q.push(msg) {
			return SendErrQueueFull
		}
	}

	wait := ep.waitMask
	if wait == 0 {
		return SendOK
	}

	for tid := TaskID(0); tid < k.taskCount; tid++ {
		if wait&(1<<tid) == 0 {
			continue
		}
		k.wake(tid)
	}
	return SendOK
}

func (k *Kernel) recv(to Endpoint) (Message, bool) {
	if to >= k.endpointCount {
		return Message{}, false
	}
	return k.endpoints[to].q.pop()
}
