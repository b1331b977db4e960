package executors

import (
	"math"

	"github.com/medakadb/medakadb/container/hash"
	"github.com/medakadb/medakadb/errors"
	"github.com/medakadb/medakadb/storage/table/schema"
	"github.com/medakadb/medakadb/storage/tuple"
	"github.com/medakadb/medakadb/types"
	pair "github.com/notEpsilon/go-pair"
)

// integerAggregateState is the running reduction of one group. Only the
// reduction is retained, never the raw per-group values.
type integerAggregateState struct {
	count int32
	sum   int32 // wraps on overflow, no checking
	min   int32
	max   int32
}

func newIntegerAggregateState() *integerAggregateState {
	return &integerAggregateState{
		min: math.MaxInt32,
		max: math.MinInt32,
	}
}

// IntegerAggregator computes one of {COUNT, SUM, MIN, MAX, AVG} over an
// integer column, grouped by an optional key column. The group table maps
// the hash of the group-key value to its accumulator, with the key values
// kept alongside for output.
type IntegerAggregator struct {
	childSchema *schema.Schema
	groupByCol  int32
	aggCol      uint32
	aggType     AggregationType
	states      map[uint32]*integerAggregateState
	keys        map[uint32]types.Value
}

func NewIntegerAggregator(childSchema *schema.Schema, groupByCol int32, aggCol uint32, aggType AggregationType) *IntegerAggregator {
	return &IntegerAggregator{
		childSchema: childSchema,
		groupByCol:  groupByCol,
		aggCol:      aggCol,
		aggType:     aggType,
		states:      make(map[uint32]*integerAggregateState),
		keys:        make(map[uint32]types.Value),
	}
}

func (a *IntegerAggregator) MergeTupleIntoGroup(t *tuple.Tuple) error {
	key := a.groupKey(t)
	value := t.GetValue(a.childSchema, a.aggCol)
	if value.ValueType() != types.Integer {
		return errors.ErrInvalidArgument
	}

	keyHash := hash.HashValue(&key)
	state, ok := a.states[keyHash]
	if !ok {
		state = newIntegerAggregateState()
		a.states[keyHash] = state
		a.keys[keyHash] = key
	}

	v := value.ToInteger()
	state.count++
	state.sum += v
	if v < state.min {
		state.min = v
	}
	if v > state.max {
		state.max = v
	}
	return nil
}

// Iterator materializes the result set: (group key, aggregate) per group,
// or a single (aggregate) tuple when there is no grouping.
func (a *IntegerAggregator) Iterator() *TupleIterator {
	outSchema := aggregateOutSchema(a.childSchema, a.aggCol, a.groupByCol, a.aggType)

	groups := make([]pair.Pair[types.Value, *integerAggregateState], 0, len(a.states))
	for keyHash, state := range a.states {
		groups = append(groups, pair.Pair[types.Value, *integerAggregateState]{
			First:  a.keys[keyHash],
			Second: state,
		})
	}

	results := make([]*tuple.Tuple, 0, len(groups))
	for _, group := range groups {
		aggValue := types.NewInteger(a.reduce(group.Second))
		if a.groupByCol == NoGrouping {
			results = append(results, tuple.NewTupleFromSchema([]types.Value{aggValue}, outSchema))
		} else {
			results = append(results, tuple.NewTupleFromSchema([]types.Value{group.First, aggValue}, outSchema))
		}
	}
	return NewTupleIterator(outSchema, results)
}

func (a *IntegerAggregator) reduce(state *integerAggregateState) int32 {
	switch a.aggType {
	case COUNT_AGGREGATE:
		return state.count
	case SUM_AGGREGATE:
		return state.sum
	case MIN_AGGREGATE:
		return state.min
	case MAX_AGGREGATE:
		return state.max
	case AVG_AGGREGATE:
		// truncating integer division; a group always has at least one
		// merged tuple, so count is never zero here
		return state.sum / state.count
	}
	panic("unknown aggregation type")
}

func (a *IntegerAggregator) groupKey(t *tuple.Tuple) types.Value {
	if a.groupByCol == NoGrouping {
		// single global bucket
		return types.NewInteger(1)
	}
	return t.GetValue(a.childSchema, uint32(a.groupByCol))
}
