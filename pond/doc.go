// Package pond provides an in-memory store for entities of several kinds and
// the directed relations between them.
//
// Each kind is declared at construction with an [Extractor] that reduces an
// entity to its [ID]. Entities are addressed by [Pointer] (kind + id); storing
// an entity at an existing pointer replaces it.
//
// # Chaining
//
// The pond remembers the two most recently added entities. A Relate call with
// no arguments links them, owner first:
//
//	p.Add("foo", Foo{ID: 22}).Add("bar", Bar{Name: 6}).Relate()
//
// A Relate that finds both slots filled clears the chain afterwards. While
// only the owner slot is filled it stays in place, so one owner can collect
// items named by pointer:
//
//	p.Add("foo", foo).Relate(pond.At("bar", b1)).Relate(pond.At("bar", b2))
//
// Relate also accepts explicit sides, either positionally (item, owner) or
// as a [Link]; see [Pond.Connect].
//
// # Fetching
//
// [Pond.Fetch] returns an entity together with its related entities per
// requested kind. Relations are append-only and outlive their entities;
// members whose entity is not stored are skipped at fetch time.
//
// # Errors
//
//   - [ErrNotFound] - no entity at the pointer
//   - [ErrUnknownKind] - kind not declared at construction
//   - [ErrSelfRelation] - owner and item share a kind
//   - [ErrInvalidArgs] - relate arguments cannot be normalized
//
// Chained calls record their first error; read it with [Pond.Err].
package pond
