package access_test

import (
	"testing"

	"github.com/medakadb/medakadb/errors"
	"github.com/medakadb/medakadb/storage/access"
	"github.com/medakadb/medakadb/storage/page"
	"github.com/medakadb/medakadb/storage/table/column"
	"github.com/medakadb/medakadb/storage/table/schema"
	"github.com/medakadb/medakadb/storage/tuple"
	"github.com/medakadb/medakadb/test_util"
	testingpkg "github.com/medakadb/medakadb/testing/testing_assert"
	"github.com/medakadb/medakadb/types"
)

func rowSchema() *schema.Schema {
	return schema.NewSchema([]*column.Column{
		column.NewColumn("id", types.Integer),
		column.NewColumn("name", types.Varchar),
	})
}

func makeRow(schema_ *schema.Schema, id int32, name string) *tuple.Tuple {
	return tuple.NewTupleFromSchema([]types.Value{
		types.NewInteger(id),
		types.NewVarchar(name),
	}, schema_)
}

func scanAll(t *testing.T, it *access.HeapFileIterator) []*tuple.Tuple {
	t.Helper()
	var tuples []*tuple.Tuple
	for {
		hasNext, err := it.HasNext()
		testingpkg.Ok(t, err)
		if !hasNext {
			return tuples
		}
		tuple_, err := it.Next()
		testingpkg.Ok(t, err)
		tuples = append(tuples, tuple_)
	}
}

func TestInsertSpansPages(t *testing.T) {
	mi := test_util.NewMedakaInstance("insert_spans_pages")
	defer mi.Shutdown()

	schema_ := rowSchema()
	file := mi.CreateHeapFile(schema_)
	txn := mi.TxnMgr.Begin()

	capacity := page.SlotCapacity(schema_.Length())
	total := 2*capacity + 1
	for i := uint32(0); i < total; i++ {
		_, err := file.InsertTuple(txn, makeRow(schema_, int32(i), "row"))
		testingpkg.Ok(t, err)
	}

	// a page holds `capacity` tuples, so 2*capacity+1 tuples need 3 pages
	testingpkg.Equals(t, int32(3), file.NumPages())

	it := file.Iterator(txn)
	testingpkg.Ok(t, it.Open())
	defer it.Close()

	tuples := scanAll(t, it)
	testingpkg.Equals(t, int(total), len(tuples))

	// every tuple carries a distinct RID and values come back intact
	seen := make(map[types.RID]bool)
	for i, tuple_ := range tuples {
		testingpkg.Equals(t, int32(i), tuple_.GetValue(schema_, 0).ToInteger())
		rid := *tuple_.GetRID()
		testingpkg.Assert(t, !seen[rid], "RID %v appears once", rid)
		seen[rid] = true
	}
	mi.TxnMgr.Commit(txn)
}

func TestScanEmptyFile(t *testing.T) {
	mi := test_util.NewMedakaInstance("scan_empty")
	defer mi.Shutdown()

	file := mi.CreateHeapFile(rowSchema())
	txn := mi.TxnMgr.Begin()

	it := file.Iterator(txn)
	testingpkg.Ok(t, it.Open())
	defer it.Close()

	hasNext, err := it.HasNext()
	testingpkg.Ok(t, err)
	testingpkg.Assert(t, !hasNext, "empty file yields nothing")

	_, err = it.Next()
	testingpkg.Equals(t, errors.ErrNotFound, err)
}

func TestIteratorLifecycle(t *testing.T) {
	mi := test_util.NewMedakaInstance("iterator_lifecycle")
	defer mi.Shutdown()

	schema_ := rowSchema()
	file := mi.CreateHeapFile(schema_)
	txn := mi.TxnMgr.Begin()
	_, err := file.InsertTuple(txn, makeRow(schema_, 1, "a"))
	testingpkg.Ok(t, err)

	it := file.Iterator(txn)

	// before Open the iterator yields nothing and cannot rewind
	hasNext, err := it.HasNext()
	testingpkg.Ok(t, err)
	testingpkg.Assert(t, !hasNext, "unopened iterator yields nothing")
	testingpkg.Equals(t, access.ErrNotOpen, it.Rewind())

	testingpkg.Ok(t, it.Open())
	testingpkg.Equals(t, access.ErrAlreadyOpen, it.Open())

	it.Close()
	hasNext, err = it.HasNext()
	testingpkg.Ok(t, err)
	testingpkg.Assert(t, !hasNext, "closed iterator yields nothing")

	// reopening after close starts a fresh scan
	testingpkg.Ok(t, it.Open())
	defer it.Close()
	testingpkg.Equals(t, 1, len(scanAll(t, it)))
}

func TestRewindRestartsScan(t *testing.T) {
	mi := test_util.NewMedakaInstance("rewind_restarts")
	defer mi.Shutdown()

	schema_ := rowSchema()
	file := mi.CreateHeapFile(schema_)
	txn := mi.TxnMgr.Begin()
	for i := int32(0); i < 5; i++ {
		_, err := file.InsertTuple(txn, makeRow(schema_, i, "r"))
		testingpkg.Ok(t, err)
	}

	it := file.Iterator(txn)
	testingpkg.Ok(t, it.Open())
	defer it.Close()

	// consume part of the scan, then rewind
	for i := 0; i < 3; i++ {
		_, err := it.Next()
		testingpkg.Ok(t, err)
	}
	testingpkg.Ok(t, it.Rewind())

	tuples := scanAll(t, it)
	testingpkg.Equals(t, 5, len(tuples))
	testingpkg.Equals(t, int32(0), tuples[0].GetValue(schema_, 0).ToInteger())
}

func TestDeleteTuple(t *testing.T) {
	mi := test_util.NewMedakaInstance("delete_tuple")
	defer mi.Shutdown()

	schema_ := rowSchema()
	file := mi.CreateHeapFile(schema_)
	txn := mi.TxnMgr.Begin()
	for i := int32(0); i < 3; i++ {
		_, err := file.InsertTuple(txn, makeRow(schema_, i, "r"))
		testingpkg.Ok(t, err)
	}

	it := file.Iterator(txn)
	testingpkg.Ok(t, it.Open())
	tuples := scanAll(t, it)
	testingpkg.Equals(t, 3, len(tuples))

	victim := tuples[1]
	dirtied, err := file.DeleteTuple(txn, victim)
	testingpkg.Ok(t, err)
	testingpkg.Assert(t, dirtied.Contains(victim.GetRID().GetPageId()), "the victim's page was dirtied")

	// deleting the same tuple again fails
	_, err = file.DeleteTuple(txn, victim)
	testingpkg.Equals(t, errors.ErrNotFound, err)

	// a tuple with no RID cannot be deleted
	_, err = file.DeleteTuple(txn, makeRow(schema_, 9, "x"))
	testingpkg.Equals(t, errors.ErrNotFound, err)

	testingpkg.Ok(t, it.Rewind())
	remaining := scanAll(t, it)
	it.Close()
	testingpkg.Equals(t, 2, len(remaining))
	for _, tuple_ := range remaining {
		testingpkg.Assert(t, !tuple_.GetRID().Equals(victim.GetRID()), "the victim is gone")
	}
}

func TestReinsertGetsNewRID(t *testing.T) {
	mi := test_util.NewMedakaInstance("reinsert_new_rid")
	defer mi.Shutdown()

	schema_ := rowSchema()
	file := mi.CreateHeapFile(schema_)
	txn := mi.TxnMgr.Begin()

	// fill page 0 and spill one tuple onto page 1
	capacity := page.SlotCapacity(schema_.Length())
	for i := uint32(0); i <= capacity; i++ {
		_, err := file.InsertTuple(txn, makeRow(schema_, int32(i), "r"))
		testingpkg.Ok(t, err)
	}

	it := file.Iterator(txn)
	testingpkg.Ok(t, it.Open())
	tuples := scanAll(t, it)
	it.Close()

	victim := tuples[5]
	oldRID := *victim.GetRID()
	testingpkg.Equals(t, int32(0), oldRID.GetPageId().GetPageNum())

	_, err := file.DeleteTuple(txn, victim)
	testingpkg.Ok(t, err)

	// inserts only ever target the last page, so the freed interior
	// slot stays free and the same values land under a fresh RID
	reinserted := makeRow(schema_, 5, "r")
	_, err = file.InsertTuple(txn, reinserted)
	testingpkg.Ok(t, err)
	newRID := reinserted.GetRID()
	testingpkg.Assert(t, !newRID.Equals(&oldRID), "re-insert produces a new RID")
	testingpkg.Equals(t, int32(1), newRID.GetPageId().GetPageNum())
}
