package pond

import (
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Extractor reduces an entity to its id. It must be pure and deterministic.
type Extractor func(entity any) (ID, error)

// Extractors declares the kinds of a pond, one extractor per kind.
type Extractors map[Kind]Extractor

// Typed adapts a function over a concrete entity type. Entities of any other
// type yield ErrEntityType.
func Typed[T any](fn func(T) ID) Extractor {
	return func(entity any) (ID, error) {
		v, ok := entity.(T)
		if !ok {
			var zero T
			return ID{}, fmt.Errorf("%w: got %T, want %T", ErrEntityType, entity, zero)
		}
		return fn(v), nil
	}
}

// Field extracts the id from attribute name of the entity's DynamoDB
// attribute encoding. Struct entities honour dynamodbav tags; entities that
// already are attribute maps are read directly. S attributes become string
// ids and integral N attributes become int ids.
func Field(name string) Extractor {
	return func(entity any) (ID, error) {
		item, err := attributeMap(entity)
		if err != nil {
			return ID{}, err
		}
		attr, ok := item[name]
		if !ok {
			return ID{}, fmt.Errorf("%w: attribute %q missing", ErrInvalidID, name)
		}
		return idFromAttribute(name, attr)
	}
}

// attributeMap encodes entity as a DynamoDB item.
func attributeMap(entity any) (map[string]types.AttributeValue, error) {
	if item, ok := entity.(map[string]types.AttributeValue); ok {
		return item, nil
	}
	av, err := attributevalue.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal %T: %v", ErrEntityType, entity, err)
	}
	m, ok := av.(*types.AttributeValueMemberM)
	if !ok {
		return nil, fmt.Errorf("%w: %T does not encode to a document", ErrEntityType, entity)
	}
	return m.Value, nil
}

func idFromAttribute(name string, attr types.AttributeValue) (ID, error) {
	switch v := attr.(type) {
	case *types.AttributeValueMemberS:
		return StringID(v.Value), nil
	case *types.AttributeValueMemberN:
		n, err := strconv.ParseInt(v.Value, 10, 64)
		if err != nil {
			return ID{}, fmt.Errorf("%w: attribute %q is not an integer: %s", ErrInvalidID, name, v.Value)
		}
		return IntID(n), nil
	default:
		return ID{}, fmt.Errorf("%w: attribute %q has type %T", ErrInvalidID, name, attr)
	}
}
