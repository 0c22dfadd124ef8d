package pond

import (
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Kind labels a partition of the pond (e.g., "foo").
type Kind string

// ID identifies an entity within its kind. It holds either a string or an
// integer; StringID("1") and IntID(1) are different ids.
type ID struct {
	str   string
	num   int64
	isInt bool
}

// StringID returns a string id.
func StringID(s string) ID {
	return ID{str: s}
}

// IntID returns an integer id.
func IntID(n int64) ID {
	return ID{num: n, isInt: true}
}

// IsInt reports whether the id is an integer.
func (id ID) IsInt() bool {
	return id.isInt
}

// Int returns the integer value and whether the id is an integer.
func (id ID) Int() (int64, bool) {
	return id.num, id.isInt
}

// String renders the id; integers use base 10.
func (id ID) String() string {
	if id.isInt {
		return strconv.FormatInt(id.num, 10)
	}
	return id.str
}

// AttributeValue returns the id as a DynamoDB attribute (N or S).
func (id ID) AttributeValue() types.AttributeValue {
	if id.isInt {
		return &types.AttributeValueMemberN{Value: id.String()}
	}
	return &types.AttributeValueMemberS{Value: id.str}
}

// Target is an argument accepted by Relate: a Pointer, a Pointers list or,
// as the sole argument, a Link.
type Target interface {
	isTarget()
}

// Pointer addresses one entity.
type Pointer struct {
	Kind Kind
	ID   ID
}

// At returns the pointer to id within kind.
func At(kind Kind, id ID) Pointer {
	return Pointer{Kind: kind, ID: id}
}

// String returns the type-qualified reference (e.g., "bar#1").
func (p Pointer) String() string {
	return string(p.Kind) + "#" + p.ID.String()
}

func (Pointer) isTarget() {}

// Pointers is an explicit list of pointers. An empty, non-nil list relates
// nothing and suppresses the chain fallback for its side.
type Pointers []Pointer

func (Pointers) isTarget() {}

// Link is the named form of a relate call. A nil side falls back to the
// matching chain slot.
type Link struct {
	Owner Target
	Item  Target
}

func (Link) isTarget() {}

// RelationKey identifies a directed owner-kind to item-kind relation.
type RelationKey struct {
	Owner Kind
	Item  Kind
}

// String renders the key as "owner->item".
func (k RelationKey) String() string {
	return string(k.Owner) + "->" + string(k.Item)
}
