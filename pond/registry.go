package pond

// Relationship says that an Item entity names its Owner through the
// OwnerAttr attribute, e.g. {Owner: "foo", Item: "bar", OwnerAttr: "foo_id"}.
type Relationship struct {
	Owner     Kind
	Item      Kind
	OwnerAttr string
}

// Key returns the relation key the relationship writes to.
func (r Relationship) Key() RelationKey {
	return RelationKey{Owner: r.Owner, Item: r.Item}
}

// Registry indexes relationships by item kind. Registering the same
// relation key twice replaces the owner attribute.
type Registry struct {
	byKey  map[RelationKey]int
	rels   []Relationship
	byItem map[Kind][]RelationKey
}

func NewRegistry(rels ...Relationship) *Registry {
	r := &Registry{
		byKey:  make(map[RelationKey]int),
		byItem: make(map[Kind][]RelationKey),
	}
	for _, rel := range rels {
		r.Register(rel)
	}
	return r
}

func (r *Registry) Register(rel Relationship) {
	key := rel.Key()
	if i, ok := r.byKey[key]; ok {
		r.rels[i] = rel
		return
	}
	r.byKey[key] = len(r.rels)
	r.rels = append(r.rels, rel)
	r.byItem[rel.Item] = append(r.byItem[rel.Item], key)
}

// OwnersOf returns the relationships whose item is kind, in registration
// order.
func (r *Registry) OwnersOf(item Kind) []Relationship {
	keys := r.byItem[item]
	out := make([]Relationship, 0, len(keys))
	for _, key := range keys {
		out = append(out, r.rels[r.byKey[key]])
	}
	return out
}

// All returns a copy of every relationship in registration order.
func (r *Registry) All() []Relationship {
	out := make([]Relationship, len(r.rels))
	copy(out, r.rels)
	return out
}

func (r *Registry) HasOwners(item Kind) bool {
	return len(r.byItem[item]) > 0
}
