package executors

import (
	"fmt"

	"github.com/medakadb/medakadb/storage/table/column"
	"github.com/medakadb/medakadb/storage/table/schema"
	"github.com/medakadb/medakadb/storage/tuple"
	"github.com/medakadb/medakadb/types"
)

// AggregationType enumerates the aggregation functions in our system.
type AggregationType int32

const (
	COUNT_AGGREGATE AggregationType = iota
	SUM_AGGREGATE
	MIN_AGGREGATE
	MAX_AGGREGATE
	AVG_AGGREGATE
)

func (t AggregationType) String() string {
	switch t {
	case COUNT_AGGREGATE:
		return "count"
	case SUM_AGGREGATE:
		return "sum"
	case MIN_AGGREGATE:
		return "min"
	case MAX_AGGREGATE:
		return "max"
	case AVG_AGGREGATE:
		return "avg"
	default:
		return "unknown"
	}
}

// NoGrouping is the group-by column sentinel for a single global bucket.
const NoGrouping = int32(-1)

// Aggregator folds a tuple stream into per-group accumulators.
// MergeTupleIntoGroup is streaming; Iterator is a blocking, one-shot
// conversion that materializes the whole result set as a snapshot. Merging
// after Iterator has been called is not supported.
type Aggregator interface {
	MergeTupleIntoGroup(t *tuple.Tuple) error
	Iterator() *TupleIterator
}

// aggregateOutSchema synthesizes the output schema of an aggregation:
// (aggregate) without grouping, (group key, aggregate) with grouping.
// The column names are human-readable labels, nothing contractual.
func aggregateOutSchema(childSchema *schema.Schema, aggCol uint32, groupByCol int32, aggType AggregationType) *schema.Schema {
	aggName := fmt.Sprintf("%s(%s)", aggType, childSchema.GetColumn(aggCol).GetColumnName())
	aggSchema := schema.NewSchema([]*column.Column{
		column.NewColumn(aggName, types.Integer),
	})
	if groupByCol == NoGrouping {
		return aggSchema
	}

	groupColumn := childSchema.GetColumn(uint32(groupByCol))
	groupName := fmt.Sprintf("group(%s)", groupColumn.GetColumnName())
	groupSchema := schema.NewSchema([]*column.Column{
		column.NewColumn(groupName, groupColumn.GetType()),
	})
	return schema.Merge(groupSchema, aggSchema)
}
