package pond

import (
	"fmt"
	"maps"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Join holds the related entities of one relation kind.
type Join struct {
	// Kind is the item kind of the relation.
	Kind Kind

	// Field is the name the join is attached under (e.g., "_bar").
	Field string

	// Entities are the related entities that still exist, in membership order.
	Entities []any
}

// Record is a fetched entity with its requested joins.
type Record struct {
	Pointer Pointer
	Entity  any
	Joins   []Join
}

// Related returns the joined entities of kind, or nil if kind was not requested.
func (r *Record) Related(kind Kind) []any {
	for _, j := range r.Joins {
		if j.Kind == kind {
			return j.Entities
		}
	}
	return nil
}

// Item returns the record as a DynamoDB document: the entity's attributes plus
// one list attribute per join, named by Join.Field. A join field replaces an
// entity attribute of the same name. The stored entity is not modified.
func (r *Record) Item() (map[string]types.AttributeValue, error) {
	base, err := attributeMap(r.Entity)
	if err != nil {
		return nil, err
	}
	item := make(map[string]types.AttributeValue, len(base)+len(r.Joins))
	maps.Copy(item, base)
	for _, j := range r.Joins {
		list := make([]types.AttributeValue, 0, len(j.Entities))
		for _, e := range j.Entities {
			av, err := attributeOf(e)
			if err != nil {
				return nil, fmt.Errorf("marshal %s: %w", j.Field, err)
			}
			list = append(list, av)
		}
		item[j.Field] = &types.AttributeValueMemberL{Value: list}
	}
	return item, nil
}

// attributeOf encodes a single entity; attribute maps are wrapped as-is.
func attributeOf(entity any) (types.AttributeValue, error) {
	if item, ok := entity.(map[string]types.AttributeValue); ok {
		return &types.AttributeValueMemberM{Value: item}, nil
	}
	return attributevalue.Marshal(entity)
}

// Fetch returns the entity at (kind, id) with the entities related to it under
// each requested relation kind attached. Members whose entity is not stored
// are skipped. Fetch returns ErrNotFound when the entity is absent and
// ErrUnknownKind when any kind was not declared.
func (p *Pond) Fetch(kind Kind, id ID, relations ...Kind) (*Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.checkKind(kind); err != nil {
		return nil, err
	}
	for _, rel := range relations {
		if err := p.checkKind(rel); err != nil {
			return nil, fmt.Errorf("relation: %w", err)
		}
	}

	entity, ok := p.get(kind, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, At(kind, id))
	}

	rec := &Record{Pointer: At(kind, id), Entity: entity}
	seen := make(map[Kind]bool, len(relations))
	for _, rel := range relations {
		if seen[rel] {
			continue
		}
		seen[rel] = true
		rec.Joins = append(rec.Joins, p.join(kind, id, rel))
	}
	return rec, nil
}

func (p *Pond) join(kind Kind, id ID, rel Kind) Join {
	byID, _ := p.entities.Lookup(rel)
	ids := p.relations.membership(RelationKey{Owner: kind, Item: rel}, id)

	entities := make([]any, 0, len(ids))
	for _, memberID := range ids {
		if e, ok := byID[memberID]; ok {
			entities = append(entities, e)
		}
	}
	return Join{
		Kind:     rel,
		Field:    p.config.FieldPrefix + string(rel),
		Entities: entities,
	}
}
