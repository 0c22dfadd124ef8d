// Package stream feeds DynamoDB Streams records into a pond.
package stream

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/pond/pond"
)

// Handler applies DynamoDB stream events to a pond.
type Handler struct {
	pond     *pond.Pond
	tables   map[string]pond.Kind
	registry *pond.Registry
	logger   *slog.Logger
}

// NewHandler creates a new stream handler. tables maps a DynamoDB table name
// to the kind its items are stored under. registry may be nil. Relationships
// whose item kind no table maps to are logged, since no record can feed them.
func NewHandler(p *pond.Pond, tables map[string]pond.Kind, registry *pond.Registry, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if registry == nil {
		registry = pond.NewRegistry()
	}

	mapped := make(map[pond.Kind]bool, len(tables))
	for _, kind := range tables {
		mapped[kind] = true
	}
	for _, rel := range registry.All() {
		if !mapped[rel.Item] {
			logger.Warn("relationship item kind has no table",
				"relation", rel.Key().String(),
				"ownerAttr", rel.OwnerAttr,
			)
		}
	}

	return &Handler{
		pond:     p,
		tables:   tables,
		registry: registry,
		logger:   logger,
	}
}

// HandleIngest stores the new image of every INSERT and MODIFY record and
// relates it to the owners declared in the registry.
//
// Records are written with [pond.Pond.Ingest], so the pond's chain cache is
// left exactly as it was: a chained Add(...).Relate() running after a batch
// never picks up an ingested entity.
// This function is designed to be used as an AWS Lambda handler.
func (h *Handler) HandleIngest(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := h.processRecord(record); err != nil {
			h.logger.Error("failed to process record",
				"eventID", record.EventID,
				"error", err,
			)
			return err // Will retry, eventually DLQ
		}
	}
	return nil
}

// processRecord processes a single DynamoDB stream record.
func (h *Handler) processRecord(record events.DynamoDBEventRecord) error {
	table, err := TableName(record.EventSourceArn)
	if err != nil {
		return err
	}
	kind, ok := h.tables[table]
	if !ok {
		h.logger.Debug("skipping unmapped table",
			"eventID", record.EventID,
			"table", table,
		)
		return nil
	}

	switch record.EventName {
	case "INSERT", "MODIFY":
	case "REMOVE":
		// Relations are append-only; removed entities only stop resolving.
		h.logger.Debug("skipping remove",
			"eventID", record.EventID,
			"kind", kind,
		)
		return nil
	default:
		return nil
	}

	item := ConvertImage(record.Change.NewImage)

	var owners []pond.Pointer
	if h.registry.HasOwners(kind) {
		for _, rel := range h.registry.OwnersOf(kind) {
			if _, ok := item[rel.OwnerAttr]; !ok {
				continue
			}
			ownerID, err := pond.Field(rel.OwnerAttr)(item)
			if err != nil {
				return fmt.Errorf("owner %s of %s: %w", rel.Owner, kind, err)
			}
			owners = append(owners, pond.At(rel.Owner, ownerID))
		}
	}

	ptr, err := h.pond.Ingest(kind, item, owners...)
	if err != nil {
		return fmt.Errorf("ingest %s: %w", kind, err)
	}

	h.logger.Info("ingested record",
		"eventID", record.EventID,
		"pointer", ptr.String(),
		"owners", len(owners),
	)
	return nil
}

// TableName extracts the table name from a table or stream ARN
// (e.g., "arn:aws:dynamodb:us-east-1:123456789012:table/foos/stream/2024-01-01T00:00:00.000").
func TableName(sourceARN string) (string, error) {
	parsed, err := arn.Parse(sourceARN)
	if err != nil {
		return "", fmt.Errorf("parse event source: %w", err)
	}
	parts := strings.Split(parsed.Resource, "/")
	if parsed.Service != "dynamodb" || len(parts) < 2 || parts[0] != "table" || parts[1] == "" {
		return "", fmt.Errorf("event source %q is not a dynamodb table", sourceARN)
	}
	return parts[1], nil
}

// ConvertImage converts a DynamoDB stream image to an attribute map.
func ConvertImage(image map[string]events.DynamoDBAttributeValue) map[string]types.AttributeValue {
	result := make(map[string]types.AttributeValue, len(image))
	for k, v := range image {
		if av := ConvertAttribute(v); av != nil {
			result[k] = av
		}
	}
	return result
}

// ConvertAttribute converts a single stream attribute value. It returns nil
// for values of unknown type.
func ConvertAttribute(v events.DynamoDBAttributeValue) types.AttributeValue {
	switch v.DataType() {
	case events.DataTypeString:
		return &types.AttributeValueMemberS{Value: v.String()}
	case events.DataTypeNumber:
		return &types.AttributeValueMemberN{Value: v.Number()}
	case events.DataTypeBinary:
		return &types.AttributeValueMemberB{Value: v.Binary()}
	case events.DataTypeBoolean:
		return &types.AttributeValueMemberBOOL{Value: v.Boolean()}
	case events.DataTypeNull:
		return &types.AttributeValueMemberNULL{Value: true}
	case events.DataTypeStringSet:
		return &types.AttributeValueMemberSS{Value: v.StringSet()}
	case events.DataTypeNumberSet:
		return &types.AttributeValueMemberNS{Value: v.NumberSet()}
	case events.DataTypeBinarySet:
		return &types.AttributeValueMemberBS{Value: v.BinarySet()}
	case events.DataTypeList:
		list := make([]types.AttributeValue, 0, len(v.List()))
		for _, elem := range v.List() {
			if av := ConvertAttribute(elem); av != nil {
				list = append(list, av)
			}
		}
		return &types.AttributeValueMemberL{Value: list}
	case events.DataTypeMap:
		return &types.AttributeValueMemberM{Value: ConvertImage(v.Map())}
	}
	return nil
}
