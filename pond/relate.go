package pond

import "fmt"

// Connect relates owners to items and reports any error.
//
// Two call shapes are accepted. Positional arguments are (item, owner), item
// first; either may be omitted. A sole Link argument names the sides
// explicitly. Each side is a Pointer, a Pointers list, or nil to fall back to
// the matching chain slot:
//
//	p.Add("foo", foo).Add("bar", bar)
//	p.Connect()                                  // foo -> bar from the chain
//	p.Connect(pond.At("bar", id))                // cached owner -> bar#id
//	p.Connect(pond.Link{Owner: o, Item: items})  // explicit sides
//
// Every pair of the owner and item lists is related. If the chain held both
// an owner and an item when the call started, it is cleared afterwards, even
// when explicit sides were supplied. A rejected call writes nothing and leaves
// the chain as it was.
func (p *Pond) Connect(args ...Target) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connect(args)
}

// Relate is the chained form of Connect. Like Add, it is skipped while an
// earlier chained error is waiting to be read with [Pond.Err].
func (p *Pond) Relate(args ...Target) *Pond {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p
	}
	if err := p.connect(args); err != nil {
		p.fail("relate", err)
	}
	return p
}

func (p *Pond) connect(args []Target) error {
	itemArg, ownerArg, err := normalize(args)
	if err != nil {
		return err
	}

	cachedOwner, hasOwner := p.chain.ownerSlot()
	cachedItem, full := p.chain.itemSlot()

	owners := resolve(ownerArg, cachedOwner, hasOwner)
	items := resolve(itemArg, cachedItem, full)

	if err := p.checkPairs(owners, items); err != nil {
		return err
	}

	added := 0
	for _, owner := range owners {
		for _, item := range items {
			if p.relations.relate(owner, item) {
				added++
			}
		}
	}

	if full {
		p.chain.clear()
	}

	p.logger.Debug("relate",
		"pond", p.id,
		"owners", len(owners),
		"items", len(items),
		"added", added,
		"chain", p.chain.state.String(),
	)
	return nil
}

// checkPairs validates every pointer before anything is written.
func (p *Pond) checkPairs(owners, items []Pointer) error {
	for _, ptr := range owners {
		if err := p.checkKind(ptr.Kind); err != nil {
			return fmt.Errorf("owner %s: %w", ptr, err)
		}
	}
	for _, ptr := range items {
		if err := p.checkKind(ptr.Kind); err != nil {
			return fmt.Errorf("item %s: %w", ptr, err)
		}
	}
	for _, owner := range owners {
		for _, item := range items {
			if owner.Kind == item.Kind {
				return fmt.Errorf("%w: %s and %s", ErrSelfRelation, owner, item)
			}
		}
	}
	return nil
}

// normalize splits relate arguments into the item and owner sides.
func normalize(args []Target) (item, owner Target, err error) {
	switch len(args) {
	case 0:
		return nil, nil, nil
	case 1:
		if link, ok := args[0].(Link); ok {
			if isLink(link.Item) || isLink(link.Owner) {
				return nil, nil, fmt.Errorf("%w: nested link", ErrInvalidArgs)
			}
			return link.Item, link.Owner, nil
		}
		return args[0], nil, nil
	case 2:
		if isLink(args[0]) || isLink(args[1]) {
			return nil, nil, fmt.Errorf("%w: link must be the only argument", ErrInvalidArgs)
		}
		return args[0], args[1], nil
	default:
		return nil, nil, fmt.Errorf("%w: got %d arguments, want at most 2", ErrInvalidArgs, len(args))
	}
}

func isLink(t Target) bool {
	_, ok := t.(Link)
	return ok
}

// resolve turns one side of a relate call into a pointer list. An omitted
// side falls back to the cached pointer when present.
func resolve(t Target, cached Pointer, ok bool) []Pointer {
	switch v := t.(type) {
	case Pointer:
		return []Pointer{v}
	case Pointers:
		return []Pointer(v)
	case nil:
		if ok {
			return []Pointer{cached}
		}
	}
	return nil
}
