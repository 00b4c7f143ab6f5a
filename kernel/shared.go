package kernel

// Shared is a single-writer value slot for handing large state between
// tasks, paired with a notify message when needed.
//
// Tasks share one execution context, so a Load never observes a partial
// Publish.
type Shared[T any] struct {
	seq uint32
	v   T
}

// Publish copies *v into the slot and bumps the sequence counter.
func (s *Shared[T]) Publish(v *T) uint32 {
	s.v = *v
	s.seq++
	return s.seq
}

// Load copies the last published value into dst and returns its sequence
// number. Sequence 0 means nothing was published yet.
func (s *Shared[T]) Load(dst *T) uint32 {
	*dst = s.v
	return s.seq
}

// Seq returns the sequence number of the last Publish.
func (s *Shared[T]) Seq() uint32 { return s.seq }
