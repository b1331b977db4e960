package executors

import (
	"github.com/medakadb/medakadb/storage/table/schema"
	"github.com/medakadb/medakadb/storage/tuple"
)

// TupleIterator serves a materialized tuple slice through the operator
// lifecycle. Aggregation uses it to expose its cached result set.
type TupleIterator struct {
	Operator
	schema_ *schema.Schema
	tuples  []*tuple.Tuple
	cursor  int
}

func NewTupleIterator(schema_ *schema.Schema, tuples []*tuple.Tuple) *TupleIterator {
	it := &TupleIterator{schema_: schema_, tuples: tuples}
	it.Operator = NewOperator(it)
	return it
}

func (it *TupleIterator) fetchNext() (*tuple.Tuple, error) {
	if it.cursor >= len(it.tuples) {
		return nil, nil
	}
	t := it.tuples[it.cursor]
	it.cursor++
	return t, nil
}

func (it *TupleIterator) open() error {
	it.cursor = 0
	return nil
}

func (it *TupleIterator) rewind() error {
	it.cursor = 0
	return nil
}

func (it *TupleIterator) close() {
}

func (it *TupleIterator) GetTupleDesc() *schema.Schema {
	return it.schema_
}
