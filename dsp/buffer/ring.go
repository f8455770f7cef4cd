package buffer

// Ring stores the most recent Cap() blocks of BlockLen() samples each.
// Push overwrites the oldest block once the ring is full.
type Ring struct {
	data  []float64
	block int
	slots int
	head  int // next slot to write
	count int
}

// NewRing returns a Ring holding slots blocks of block samples.
// Non-positive sizes are treated as one.
func NewRing(slots, block int) *Ring {
	if slots < 1 {
		slots = 1
	}
	if block < 1 {
		block = 1
	}
	return &Ring{
		data:  make([]float64, slots*block),
		block: block,
		slots: slots,
	}
}

// Cap returns the number of blocks the ring can hold.
func (r *Ring) Cap() int { return r.slots }

// BlockLen returns the samples per block.
func (r *Ring) BlockLen() int { return r.block }

// Len returns the number of blocks currently stored.
func (r *Ring) Len() int { return r.count }

// Push copies src into the next slot. Short blocks are zero padded and
// long blocks are truncated to BlockLen.
func (r *Ring) Push(src []float64) {
	slot := r.data[r.head*r.block : (r.head+1)*r.block]
	n := copy(slot, src)
	for i := n; i < len(slot); i++ {
		slot[i] = 0
	}

	r.head = (r.head + 1) % r.slots
	if r.count < r.slots {
		r.count++
	}
}

// Block returns block i, where 0 is the oldest stored block. The returned
// slice aliases ring storage and is only valid until the next Push.
func (r *Ring) Block(i int) []float64 {
	if i < 0 || i >= r.count {
		return nil
	}
	start := (r.head - r.count + i + r.slots) % r.slots
	return r.data[start*r.block : (start+1)*r.block]
}

// CopyTo writes the stored blocks oldest first into dst and returns the
// number of samples written.
func (r *Ring) CopyTo(dst []float64) int {
	n := 0
	for i := range r.count {
		n += copy(dst[n:], r.Block(i))
		if n == len(dst) {
			break
		}
	}
	return n
}

// Reset discards all stored blocks.
func (r *Ring) Reset() {
	r.head = 0
	r.count = 0
	for i := range r.data {
		r.data[i] = 0
	}
}
