package executors

import (
	"testing"

	"github.com/medakadb/medakadb/errors"
	"github.com/medakadb/medakadb/storage/table/column"
	"github.com/medakadb/medakadb/storage/table/schema"
	"github.com/medakadb/medakadb/storage/tuple"
	"github.com/medakadb/medakadb/test_util"
	testingpkg "github.com/medakadb/medakadb/testing/testing_assert"
	"github.com/medakadb/medakadb/types"
)

func intSchema(name string) *schema.Schema {
	return schema.NewSchema([]*column.Column{column.NewColumn(name, types.Integer)})
}

func intTuples(schema_ *schema.Schema, values ...int32) []*tuple.Tuple {
	tuples := make([]*tuple.Tuple, 0, len(values))
	for _, v := range values {
		tuples = append(tuples, tuple.NewTupleFromSchema([]types.Value{types.NewInteger(v)}, schema_))
	}
	return tuples
}

func drainInts(t *testing.T, op OpIterator, colIndex uint32) []int32 {
	t.Helper()
	var out []int32
	for {
		hasNext, err := op.HasNext()
		testingpkg.Ok(t, err)
		if !hasNext {
			return out
		}
		tuple_, err := op.Next()
		testingpkg.Ok(t, err)
		out = append(out, tuple_.GetValue(op.GetTupleDesc(), colIndex).ToInteger())
	}
}

func TestFilterGreaterThan(t *testing.T) {
	schema_ := intSchema("v")
	child := NewTupleIterator(schema_, intTuples(schema_, 1, 2, 3, 4, 5))
	filter := NewFilterExecutor(child, NewPredicate(0, GreaterThan, types.NewInteger(3)))

	testingpkg.Assert(t, filter.GetTupleDesc().Equals(schema_), "filter passes the child schema through")

	testingpkg.Ok(t, filter.Open())
	defer filter.Close()
	testingpkg.Equals(t, []int32{4, 5}, drainInts(t, filter, 0))

	// rewind replays the qualifying tuples
	testingpkg.Ok(t, filter.Rewind())
	testingpkg.Equals(t, []int32{4, 5}, drainInts(t, filter, 0))
}

func TestFilterComparisons(t *testing.T) {
	schema_ := intSchema("v")
	cases := []struct {
		compareType ComparisonType
		operand     int32
		expected    []int32
	}{
		{Equal, 3, []int32{3}},
		{NotEqual, 3, []int32{1, 2, 4, 5}},
		{GreaterThanOrEqual, 4, []int32{4, 5}},
		{LessThan, 3, []int32{1, 2}},
		{LessThanOrEqual, 2, []int32{1, 2}},
	}

	for _, c := range cases {
		child := NewTupleIterator(schema_, intTuples(schema_, 1, 2, 3, 4, 5))
		filter := NewFilterExecutor(child, NewPredicate(0, c.compareType, types.NewInteger(c.operand)))
		testingpkg.Ok(t, filter.Open())
		testingpkg.Equals(t, c.expected, drainInts(t, filter, 0))
		filter.Close()
	}
}

func TestFilterNothingQualifies(t *testing.T) {
	schema_ := intSchema("v")
	child := NewTupleIterator(schema_, intTuples(schema_, 1, 2, 3))
	filter := NewFilterExecutor(child, NewPredicate(0, GreaterThan, types.NewInteger(10)))

	testingpkg.Ok(t, filter.Open())
	defer filter.Close()

	hasNext, err := filter.HasNext()
	testingpkg.Ok(t, err)
	testingpkg.Assert(t, !hasNext, "no tuple qualifies")
	_, err = filter.Next()
	testingpkg.Equals(t, errors.ErrNotFound, err)
}

func TestOperatorLifecycle(t *testing.T) {
	schema_ := intSchema("v")
	it := NewTupleIterator(schema_, intTuples(schema_, 7))

	// closed operators yield nothing and cannot rewind
	hasNext, err := it.HasNext()
	testingpkg.Ok(t, err)
	testingpkg.Assert(t, !hasNext, "closed operator yields nothing")
	testingpkg.Equals(t, ErrNotOpen, it.Rewind())
	_, err = it.Next()
	testingpkg.Equals(t, errors.ErrNotFound, err)

	testingpkg.Ok(t, it.Open())
	testingpkg.Equals(t, ErrAlreadyOpen, it.Open())

	testingpkg.Equals(t, []int32{7}, drainInts(t, it, 0))
	_, err = it.Next()
	testingpkg.Equals(t, errors.ErrNotFound, err)

	// closing twice is harmless, reopening starts over
	it.Close()
	it.Close()
	testingpkg.Ok(t, it.Open())
	testingpkg.Equals(t, []int32{7}, drainInts(t, it, 0))
	it.Close()
}

func TestDeleteExecutor(t *testing.T) {
	mi := test_util.NewMedakaInstance("delete_executor")
	defer mi.Shutdown()

	schema_ := intSchema("v")
	file := mi.CreateHeapFile(schema_)
	txn := mi.TxnMgr.Begin()
	for i := int32(0); i < 5; i++ {
		_, err := file.InsertTuple(txn, tuple.NewTupleFromSchema([]types.Value{types.NewInteger(i)}, schema_))
		testingpkg.Ok(t, err)
	}

	delete_ := NewDeleteExecutor(file.Iterator(txn), txn, mi.BPM)
	testingpkg.Equals(t, uint32(1), delete_.GetTupleDesc().GetColumnCount())

	testingpkg.Ok(t, delete_.Open())

	// one result tuple carrying the number of deletes, then exhaustion
	counts := drainInts(t, delete_, 0)
	testingpkg.Equals(t, []int32{5}, counts)
	_, err := delete_.Next()
	testingpkg.Equals(t, errors.ErrNotFound, err)
	delete_.Close()

	// the file is empty afterwards
	it := file.Iterator(txn)
	testingpkg.Ok(t, it.Open())
	defer it.Close()
	hasNext, err := it.HasNext()
	testingpkg.Ok(t, err)
	testingpkg.Assert(t, !hasNext, "every tuple was deleted")
}

func TestDeleteExecutorEmptyChild(t *testing.T) {
	mi := test_util.NewMedakaInstance("delete_executor_empty")
	defer mi.Shutdown()

	schema_ := intSchema("v")
	file := mi.CreateHeapFile(schema_)
	txn := mi.TxnMgr.Begin()

	delete_ := NewDeleteExecutor(file.Iterator(txn), txn, mi.BPM)
	testingpkg.Ok(t, delete_.Open())
	defer delete_.Close()

	// an empty child still produces the count tuple
	testingpkg.Equals(t, []int32{0}, drainInts(t, delete_, 0))
}

func TestDeleteBelowFilter(t *testing.T) {
	mi := test_util.NewMedakaInstance("delete_below_filter")
	defer mi.Shutdown()

	schema_ := intSchema("v")
	file := mi.CreateHeapFile(schema_)
	txn := mi.TxnMgr.Begin()
	for i := int32(1); i <= 5; i++ {
		_, err := file.InsertTuple(txn, tuple.NewTupleFromSchema([]types.Value{types.NewInteger(i)}, schema_))
		testingpkg.Ok(t, err)
	}

	// delete only the tuples a filter lets through
	filter := NewFilterExecutor(file.Iterator(txn), NewPredicate(0, GreaterThan, types.NewInteger(3)))
	delete_ := NewDeleteExecutor(filter, txn, mi.BPM)
	testingpkg.Ok(t, delete_.Open())
	testingpkg.Equals(t, []int32{2}, drainInts(t, delete_, 0))
	delete_.Close()

	it := file.Iterator(txn)
	testingpkg.Ok(t, it.Open())
	defer it.Close()
	var survivors []int32
	for {
		hasNext, err := it.HasNext()
		testingpkg.Ok(t, err)
		if !hasNext {
			break
		}
		tuple_, err := it.Next()
		testingpkg.Ok(t, err)
		survivors = append(survivors, tuple_.GetValue(schema_, 0).ToInteger())
	}
	testingpkg.Equals(t, []int32{1, 2, 3}, survivors)
}
