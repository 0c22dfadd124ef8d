package pond

import "errors"

var (
	// ErrNotFound is returned by Fetch when no entity is stored at the pointer.
	ErrNotFound = errors.New("pond: entity not found")

	// ErrUnknownKind is returned when a kind was not declared at construction.
	ErrUnknownKind = errors.New("pond: unknown kind")

	// ErrInvalidKind is returned when a kind label is empty.
	ErrInvalidKind = errors.New("pond: invalid kind")

	// ErrMissingExtractor is returned when a declared kind has a nil extractor.
	ErrMissingExtractor = errors.New("pond: missing id extractor")

	// ErrEntityType is returned when an extractor receives an entity of the wrong type.
	ErrEntityType = errors.New("pond: unexpected entity type")

	// ErrInvalidID is returned when an id cannot be derived from an entity.
	ErrInvalidID = errors.New("pond: invalid entity id")

	// ErrSelfRelation is returned when owner and item share a kind.
	ErrSelfRelation = errors.New("pond: owner and item kinds must differ")

	// ErrInvalidArgs is returned for relate call shapes that cannot be normalized.
	ErrInvalidArgs = errors.New("pond: invalid relate arguments")
)
