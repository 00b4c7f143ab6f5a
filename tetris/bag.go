package tetris

// FallbackSeed is used whenever no usable entropy is available.
const FallbackSeed uint32 = 0x9e3779b9

// PieceSource supplies the kinds of upcoming pieces. Peek must not change
// what Next returns or the source state: snapshots call it freely.
type PieceSource interface {
	Next() Kind
	Peek() Kind
}

// EntropySource yields seed material. Errors or zero values make the bag
// fall back to FallbackSeed.
type EntropySource interface {
	Uint32() (uint32, error)
}

// Bag is a 7-bag generator: every run of seven draws is a permutation of all
// kinds, shuffled with xorshift32.
type Bag struct {
	state uint32
	seed  uint32
	order [KindCount]Kind
	pos   int
}

// NewBag returns a bag seeded with seed (zero selects FallbackSeed).
func NewBag(seed uint32) *Bag {
	b := &Bag{}
	b.Reseed(seed)
	return b
}

// SeedFrom reads a seed from src, degrading to FallbackSeed when src is nil,
// fails or yields zero.
func SeedFrom(src EntropySource) uint32 {
	if src == nil {
		return FallbackSeed
	}
	v, err := src.Uint32()
	if err != nil || v == 0 {
		return FallbackSeed
	}
	return v
}

// Reseed restarts the sequence from seed.
func (b *Bag) Reseed(seed uint32) {
	if seed == 0 {
		seed = FallbackSeed
	}
	b.seed = seed
	b.state = seed
	b.refill()
}

// Seed returns the seed the current sequence started from.
func (b *Bag) Seed() uint32 { return b.seed }

func (b *Bag) rand() uint32 {
	x := b.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	b.state = x
	return x
}

func (b *Bag) refill() {
	for i := range b.order {
		b.order[i] = Kind(i)
	}
	for i := KindCount - 1; i > 0; i-- {
		j := int(b.rand() % uint32(i+1))
		b.order[i], b.order[j] = b.order[j], b.order[i]
	}
	b.pos = 0
}

// Next draws the next kind. The following bag is shuffled as soon as the
// current one runs out, so Peek never touches the generator.
func (b *Bag) Next() Kind {
	k := b.order[b.pos]
	b.pos++
	if b.pos == KindCount {
		b.refill()
	}
	return k
}

// Peek returns the kind Next will return without consuming it.
func (b *Bag) Peek() Kind { return b.order[b.pos] }
