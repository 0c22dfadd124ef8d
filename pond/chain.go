package pond

// ChainState describes the fill level of the chain cache.
type ChainState int

const (
	// ChainEmpty holds no pointer.
	ChainEmpty ChainState = iota
	// ChainOwnerOnly holds an owner pointer.
	ChainOwnerOnly
	// ChainFull holds an owner and an item pointer.
	ChainFull
)

func (s ChainState) String() string {
	switch s {
	case ChainEmpty:
		return "empty"
	case ChainOwnerOnly:
		return "owner-only"
	case ChainFull:
		return "full"
	default:
		return "unknown"
	}
}

// chain remembers the two most recently added pointers. The item slot is
// only set in ChainFull, so an item never exists without an owner.
type chain struct {
	state ChainState
	owner Pointer
	item  Pointer
}

// push records a freshly added pointer.
func (c *chain) push(p Pointer) {
	switch c.state {
	case ChainEmpty:
		c.owner = p
		c.state = ChainOwnerOnly
	case ChainOwnerOnly:
		c.item = p
		c.state = ChainFull
	case ChainFull:
		c.owner = c.item
		c.item = p
	}
}

// ownerSlot returns the cached owner, if any.
func (c *chain) ownerSlot() (Pointer, bool) {
	return c.owner, c.state != ChainEmpty
}

// itemSlot returns the cached item, if any.
func (c *chain) itemSlot() (Pointer, bool) {
	return c.item, c.state == ChainFull
}

func (c *chain) clear() {
	*c = chain{}
}
