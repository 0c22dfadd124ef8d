package pond

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/jacentio/pond/internal/container"
)

// Pond stores entities of several kinds, the relations between them and the
// chain cache used by Add and Relate. All methods are safe for concurrent use;
// each call is atomic, but a chain spanning several calls is not.
type Pond struct {
	mu         sync.Mutex
	id         string
	config     Config
	logger     *slog.Logger
	extractors map[Kind]Extractor
	entities   *container.DefaultMap[Kind, map[ID]any]
	relations  *relationIndex
	chain      chain
	err        error
}

// New creates a Pond with one kind per extractor.
func New(extractors Extractors, config Config) (*Pond, error) {
	config.validate()

	kinds := make([]Kind, 0, len(extractors))
	for kind, extract := range extractors {
		if kind == "" {
			return nil, ErrInvalidKind
		}
		if extract == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingExtractor, kind)
		}
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)

	seed := make([]container.Entry[Kind, map[ID]any], 0, len(kinds))
	bound := make(map[Kind]Extractor, len(kinds))
	for _, kind := range kinds {
		seed = append(seed, container.Entry[Kind, map[ID]any]{Key: kind, Value: make(map[ID]any)})
		bound[kind] = extractors[kind]
	}

	return &Pond{
		id:         uuid.New().String(),
		config:     config,
		logger:     config.Logger,
		extractors: bound,
		entities:   container.NewDefaultMap(func() map[ID]any { return make(map[ID]any) }, seed...),
		relations:  newRelationIndex(),
	}, nil
}

// ID returns the instance id used in log records.
func (p *Pond) ID() string {
	return p.id
}

// Kinds returns the declared kinds in sorted order.
func (p *Pond) Kinds() []Kind {
	return p.entities.Keys()
}

// Put stores entity under kind, overwriting any entity with the same id, and
// pushes its pointer onto the chain.
func (p *Pond) Put(kind Kind, entity any) (Pointer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.put(kind, entity)
}

// Add is the chained form of Put.
//
//	p.Add("foo", foo).Add("bar", bar).Relate()
//
// A failed Add or Relate records its error on the pond, and every later Add
// and Relate is skipped until [Pond.Err] reads it, not only the rest of the
// failed chain. Callers that never check Err lose all subsequent chained
// writes; use Put and Connect to handle errors per call.
func (p *Pond) Add(kind Kind, entity any) *Pond {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p
	}
	if _, err := p.put(kind, entity); err != nil {
		p.fail("add", err)
	}
	return p
}

func (p *Pond) put(kind Kind, entity any) (Pointer, error) {
	ptr, err := p.pointerOf(kind, entity)
	if err != nil {
		return Pointer{}, err
	}

	p.entities.Get(kind)[ptr.ID] = entity
	p.chain.push(ptr)

	p.logger.Debug("add",
		"pond", p.id,
		"pointer", ptr.String(),
		"chain", p.chain.state.String(),
	)
	return ptr, nil
}

// Ingest stores entity under kind and relates each of owners to it in one
// step. Unlike Put it leaves the chain untouched, so writes fed from outside
// the chained API never leak into a later Relate. Owner kinds are validated
// before anything is written.
func (p *Pond) Ingest(kind Kind, entity any, owners ...Pointer) (Pointer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ptr, err := p.pointerOf(kind, entity)
	if err != nil {
		return Pointer{}, err
	}
	if err := p.checkPairs(owners, []Pointer{ptr}); err != nil {
		return Pointer{}, err
	}

	p.entities.Get(kind)[ptr.ID] = entity
	added := 0
	for _, owner := range owners {
		if p.relations.relate(owner, ptr) {
			added++
		}
	}

	p.logger.Debug("ingest",
		"pond", p.id,
		"pointer", ptr.String(),
		"owners", len(owners),
		"added", added,
	)
	return ptr, nil
}

// PointerOf returns the pointer entity would be stored at, without storing it.
func (p *Pond) PointerOf(kind Kind, entity any) (Pointer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pointerOf(kind, entity)
}

func (p *Pond) pointerOf(kind Kind, entity any) (Pointer, error) {
	extract, ok := p.extractors[kind]
	if !ok {
		return Pointer{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	id, err := extract(entity)
	if err != nil {
		return Pointer{}, fmt.Errorf("extract %s id: %w", kind, err)
	}
	return Pointer{Kind: kind, ID: id}, nil
}

// Get returns the entity stored at (kind, id). The boolean is false when no
// entity is stored there, including for undeclared kinds.
func (p *Pond) Get(kind Kind, id ID) (any, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.get(kind, id)
}

func (p *Pond) get(kind Kind, id ID) (any, bool) {
	byID, ok := p.entities.Lookup(kind)
	if !ok {
		return nil, false
	}
	entity, ok := byID[id]
	return entity, ok
}

// Len returns the number of entities stored under kind.
func (p *Pond) Len(kind Kind) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	byID, _ := p.entities.Lookup(kind)
	return len(byID)
}

// Membership returns the ids of itemKind entities related to ownerID, in the
// order they were first related. Unknown relations read as empty.
func (p *Pond) Membership(ownerKind, itemKind Kind, ownerID ID) []ID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.relations.membership(RelationKey{Owner: ownerKind, Item: itemKind}, ownerID)
}

// Relations returns every relation key that has been written to.
func (p *Pond) Relations() []RelationKey {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.relations.keys()
}

// Chain returns the current chain cache state.
func (p *Pond) Chain() ChainState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.chain.state
}

// Err returns the first error recorded by Add or Relate and clears it. While
// an error is recorded, chained calls are skipped so the chain never links
// the wrong entities.
func (p *Pond) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	err := p.err
	p.err = nil
	return err
}

func (p *Pond) fail(op string, err error) {
	p.err = err
	p.logger.Warn("chained call failed",
		"pond", p.id,
		"op", op,
		"error", err,
	)
}

func (p *Pond) checkKind(kind Kind) error {
	if _, ok := p.extractors[kind]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return nil
}
