package pond

import "github.com/jacentio/pond/internal/container"

// members maps an owner id to the ids of its items.
type members = container.DefaultMap[ID, *container.Set[ID]]

// relationIndex is the append-only store of relation memberships.
type relationIndex struct {
	relations *container.DefaultMap[RelationKey, *members]
}

func newRelationIndex() *relationIndex {
	return &relationIndex{
		relations: container.NewDefaultMap[RelationKey, *members](func() *members {
			return container.NewDefaultMap[ID, *container.Set[ID]](func() *container.Set[ID] {
				return container.NewSet[ID]()
			})
		}),
	}
}

// relate adds item.ID to the members of owner.ID under the relation between
// their kinds. Re-adding a member is a no-op.
func (x *relationIndex) relate(owner, item Pointer) bool {
	key := RelationKey{Owner: owner.Kind, Item: item.Kind}
	return x.relations.Get(key).Get(owner.ID).Add(item.ID)
}

// membership returns the item ids related to ownerID, in insertion order.
// Absent keys read as empty and are not materialized.
func (x *relationIndex) membership(key RelationKey, ownerID ID) []ID {
	byOwner, ok := x.relations.Lookup(key)
	if !ok {
		return nil
	}
	set, ok := byOwner.Lookup(ownerID)
	if !ok {
		return nil
	}
	return set.Values()
}

// keys returns the relation keys in first-write order.
func (x *relationIndex) keys() []RelationKey {
	return x.relations.Keys()
}
