package access

import (
	"github.com/medakadb/medakadb/common"
	"github.com/medakadb/medakadb/concurrency"
	"github.com/medakadb/medakadb/errors"
	"github.com/medakadb/medakadb/storage/buffer"
	"github.com/medakadb/medakadb/storage/table/schema"
	"github.com/medakadb/medakadb/storage/tuple"
	"github.com/medakadb/medakadb/types"
)

const ErrAlreadyOpen = errors.Error("iterator is already open")
const ErrNotOpen = errors.Error("iterator is not open")

// HeapFileIterator is the access method for heap files. It walks every live
// tuple, page 0 first, slots in ascending order within a page, and follows
// the same open/hasNext/next/rewind/close lifecycle the executors use.
//
// Pages are fetched through the buffer pool with read-only intent each time
// they are needed; nothing is held across Rewind, since pool contents can
// change between scans.
type HeapFileIterator struct {
	file       *HeapFile
	txn        *concurrency.Transaction
	opened     bool
	nextTuple  *tuple.Tuple
	pageNum    int32
	pageTuples []*tuple.Tuple
	tupleIdx   int
}

func NewHeapFileIterator(file *HeapFile, txn *concurrency.Transaction) *HeapFileIterator {
	return &HeapFileIterator{file: file, txn: txn}
}

func (it *HeapFileIterator) Open() error {
	if it.opened {
		return ErrAlreadyOpen
	}
	it.opened = true
	it.pageNum = -1
	it.pageTuples = nil
	it.tupleIdx = 0
	it.nextTuple = nil
	return nil
}

// HasNext buffers the next live tuple if one exists.
func (it *HeapFileIterator) HasNext() (bool, error) {
	if !it.opened {
		return false, nil
	}
	if it.nextTuple != nil {
		return true, nil
	}

	t, err := it.fetchNext()
	if err != nil {
		return false, err
	}
	it.nextTuple = t
	return t != nil, nil
}

func (it *HeapFileIterator) Next() (*tuple.Tuple, error) {
	hasNext, err := it.HasNext()
	if err != nil {
		return nil, err
	}
	if !hasNext {
		return nil, errors.ErrNotFound
	}
	t := it.nextTuple
	it.nextTuple = nil
	return t, nil
}

// Rewind resets the scan to page 0 without a close/open cycle.
func (it *HeapFileIterator) Rewind() error {
	if !it.opened {
		return ErrNotOpen
	}
	it.pageNum = -1
	it.pageTuples = nil
	it.tupleIdx = 0
	it.nextTuple = nil
	return nil
}

func (it *HeapFileIterator) Close() {
	it.opened = false
	it.pageTuples = nil
	it.nextTuple = nil
}

func (it *HeapFileIterator) GetTupleDesc() *schema.Schema {
	return it.file.GetSchema()
}

// fetchNext returns the next live tuple, or nil at end of file. A page that
// fails to read is logged and skipped; the scan keeps going. An aborted
// transaction is surfaced, not swallowed.
func (it *HeapFileIterator) fetchNext() (*tuple.Tuple, error) {
	for {
		if it.tupleIdx < len(it.pageTuples) {
			t := it.pageTuples[it.tupleIdx]
			it.tupleIdx++
			return t, nil
		}

		it.pageNum++
		if it.pageNum >= it.file.NumPages() {
			return nil, nil
		}

		pageID := types.NewPageID(it.file.GetID(), it.pageNum)
		pg, err := it.file.bpm.GetPage(it.txn, pageID, buffer.READ_ONLY)
		if err == errors.ErrTxnAborted {
			return nil, err
		}
		if err != nil {
			common.MdPrintf(common.WARN, "page %d of heap file %d is corrupted and skipped: %v\n",
				it.pageNum, it.file.GetID(), err)
			continue
		}

		pg.RLatch()
		it.pageTuples = pg.GetLiveTuples()
		pg.RUnlatch()
		it.tupleIdx = 0
		it.file.bpm.UnpinPage(pageID, false)
	}
}
