package executors

import (
	"github.com/medakadb/medakadb/errors"
	"github.com/medakadb/medakadb/storage/table/schema"
	"github.com/medakadb/medakadb/storage/tuple"
	"github.com/medakadb/medakadb/types"
)

// AggregationExecutor is the pipeline-facing aggregation operator. It is
// blocking: Open fully drains the child into an aggregator picked by the
// aggregate column's declared type and caches the materialized result.
// Rewind resets the cursor into the same cached sequence without
// re-draining the child.
type AggregationExecutor struct {
	Operator
	child      OpIterator
	aggCol     uint32
	groupByCol int32
	aggType    AggregationType
	result     *TupleIterator
}

func NewAggregationExecutor(child OpIterator, aggCol uint32, groupByCol int32, aggType AggregationType) *AggregationExecutor {
	e := &AggregationExecutor{
		child:      child,
		aggCol:     aggCol,
		groupByCol: groupByCol,
		aggType:    aggType,
	}
	e.Operator = NewOperator(e)
	return e
}

func (e *AggregationExecutor) fetchNext() (*tuple.Tuple, error) {
	hasNext, err := e.result.HasNext()
	if err != nil {
		return nil, err
	}
	if !hasNext {
		return nil, nil
	}
	return e.result.Next()
}

func (e *AggregationExecutor) open() error {
	if err := e.child.Open(); err != nil {
		return err
	}

	aggregator, err := e.buildAggregator()
	if err != nil {
		e.child.Close()
		return err
	}

	for {
		hasNext, err := e.child.HasNext()
		if err != nil {
			e.child.Close()
			return err
		}
		if !hasNext {
			break
		}
		t, err := e.child.Next()
		if err != nil {
			e.child.Close()
			return err
		}
		if err := aggregator.MergeTupleIntoGroup(t); err != nil {
			e.child.Close()
			return err
		}
	}

	e.result = aggregator.Iterator()
	return e.result.Open()
}

func (e *AggregationExecutor) rewind() error {
	return e.result.Rewind()
}

func (e *AggregationExecutor) close() {
	if e.result != nil {
		e.result.Close()
		e.result = nil
	}
	e.child.Close()
}

// GetTupleDesc synthesizes the output schema from the child's schema; it
// needs no runtime data and works while the operator is closed.
func (e *AggregationExecutor) GetTupleDesc() *schema.Schema {
	return aggregateOutSchema(e.child.GetTupleDesc(), e.aggCol, e.groupByCol, e.aggType)
}

func (e *AggregationExecutor) buildAggregator() (Aggregator, error) {
	childSchema := e.child.GetTupleDesc()
	switch childSchema.GetColumn(e.aggCol).GetType() {
	case types.Integer:
		return NewIntegerAggregator(childSchema, e.groupByCol, e.aggCol, e.aggType), nil
	case types.Varchar:
		return NewStringAggregator(childSchema, e.groupByCol, e.aggCol, e.aggType)
	default:
		return nil, errors.ErrUnsupportedType
	}
}
