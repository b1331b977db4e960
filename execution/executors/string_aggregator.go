package executors

import (
	"github.com/medakadb/medakadb/container/hash"
	"github.com/medakadb/medakadb/errors"
	"github.com/medakadb/medakadb/storage/table/schema"
	"github.com/medakadb/medakadb/storage/tuple"
	"github.com/medakadb/medakadb/types"
	pair "github.com/notEpsilon/go-pair"
)

// StringAggregator counts occurrences per group over a varchar column.
// COUNT is the only aggregation defined for strings; any other operator is
// rejected at construction, before a single tuple is merged.
type StringAggregator struct {
	childSchema *schema.Schema
	groupByCol  int32
	aggCol      uint32
	counts      map[uint32]int32
	keys        map[uint32]types.Value
}

func NewStringAggregator(childSchema *schema.Schema, groupByCol int32, aggCol uint32, aggType AggregationType) (*StringAggregator, error) {
	if aggType != COUNT_AGGREGATE {
		return nil, errors.ErrInvalidArgument
	}
	return &StringAggregator{
		childSchema: childSchema,
		groupByCol:  groupByCol,
		aggCol:      aggCol,
		counts:      make(map[uint32]int32),
		keys:        make(map[uint32]types.Value),
	}, nil
}

func (a *StringAggregator) MergeTupleIntoGroup(t *tuple.Tuple) error {
	value := t.GetValue(a.childSchema, a.aggCol)
	if value.ValueType() != types.Varchar {
		return errors.ErrInvalidArgument
	}

	key := a.groupKey(t)
	keyHash := hash.HashValue(&key)
	if _, ok := a.counts[keyHash]; !ok {
		a.keys[keyHash] = key
	}
	a.counts[keyHash]++
	return nil
}

func (a *StringAggregator) Iterator() *TupleIterator {
	outSchema := aggregateOutSchema(a.childSchema, a.aggCol, a.groupByCol, COUNT_AGGREGATE)

	groups := make([]pair.Pair[types.Value, int32], 0, len(a.counts))
	for keyHash, count := range a.counts {
		groups = append(groups, pair.Pair[types.Value, int32]{
			First:  a.keys[keyHash],
			Second: count,
		})
	}

	results := make([]*tuple.Tuple, 0, len(groups))
	for _, group := range groups {
		countValue := types.NewInteger(group.Second)
		if a.groupByCol == NoGrouping {
			results = append(results, tuple.NewTupleFromSchema([]types.Value{countValue}, outSchema))
		} else {
			results = append(results, tuple.NewTupleFromSchema([]types.Value{group.First, countValue}, outSchema))
		}
	}
	return NewTupleIterator(outSchema, results)
}

func (a *StringAggregator) groupKey(t *tuple.Tuple) types.Value {
	if a.groupByCol == NoGrouping {
		return types.NewInteger(1)
	}
	return t.GetValue(a.childSchema, uint32(a.groupByCol))
}
