package access

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/medakadb/medakadb/concurrency"
	"github.com/medakadb/medakadb/container/hash"
	"github.com/medakadb/medakadb/errors"
	"github.com/medakadb/medakadb/storage/buffer"
	"github.com/medakadb/medakadb/storage/disk"
	"github.com/medakadb/medakadb/storage/page"
	"github.com/medakadb/medakadb/storage/table/schema"
	"github.com/medakadb/medakadb/storage/tuple"
	"github.com/medakadb/medakadb/types"
)

// HeapFile presents a fixed-schema backing store as a collection of
// fixed-size pages and as an unordered scan of tuples. Pages are addressed
// as pageNum * PageSize within the backing store; cached access goes
// through the buffer pool.
type HeapFile struct {
	dm       disk.DiskManager
	bpm      *buffer.BufferPoolManager
	schema_  *schema.Schema
	id       uint32
	numPages int32 // pages logically allocated so far, never shrinks
}

// NewHeapFile opens a heap file over the disk manager's backing store and
// registers it with the buffer pool. The file id is a hash of the absolute
// backing path; collisions are accepted, not resolved.
func NewHeapFile(dm disk.DiskManager, schema_ *schema.Schema, bpm *buffer.BufferPoolManager) *HeapFile {
	f := &HeapFile{
		dm:       dm,
		bpm:      bpm,
		schema_:  schema_,
		id:       hash.HashFilePath(dm.FilePath()),
		numPages: dm.NumPages(),
	}
	bpm.RegisterFile(f)
	return f
}

func (f *HeapFile) GetID() uint32 {
	return f.id
}

func (f *HeapFile) GetSchema() *schema.Schema {
	return f.schema_
}

// NumPages is max(bytes-on-disk / PageSize, pages allocated this session).
func (f *HeapFile) NumPages() int32 {
	if n := f.dm.NumPages(); n > f.numPages {
		f.numPages = n
	}
	return f.numPages
}

// ReadPage decodes the page-sized byte window at the page's offset. A page
// number beyond the current extent grows the file with a zeroed page; only
// negative page numbers are invalid.
func (f *HeapFile) ReadPage(pageID types.PageID) (*page.HeapPage, error) {
	pageNum := pageID.GetPageNum()
	if pageNum < 0 {
		return nil, errors.ErrInvalidPage
	}

	data := make([]byte, f.bpm.GetPageSize())
	if err := f.dm.ReadPage(pageNum, data); err != nil {
		return nil, err
	}
	if pageNum+1 > f.numPages {
		f.numPages = pageNum + 1
	}
	return page.NewHeapPageFromBytes(pageID, data, f.schema_), nil
}

// WritePage writes the page back at its offset, exactly PageSize bytes.
func (f *HeapFile) WritePage(p *page.HeapPage) error {
	return f.dm.WritePage(p.ID().GetPageNum(), p.Serialize())
}

// InsertTuple places the tuple on the last page of the file, allocating a
// fresh page when the last one has no free slot. Only the last page is
// considered; slots freed on interior pages are not reclaimed. Returns the
// set of pages mutated, for the buffer pool to eventually persist.
func (f *HeapFile) InsertTuple(txn *concurrency.Transaction, t *tuple.Tuple) (mapset.Set[types.PageID], error) {
	lastPageNum := f.NumPages() - 1
	if lastPageNum < 0 {
		lastPageNum = 0
	}

	pageID := types.NewPageID(f.id, lastPageNum)
	pg, err := f.bpm.GetPage(txn, pageID, buffer.READ_WRITE)
	if err != nil {
		return nil, err
	}

	pg.WLatch()
	_, err = pg.InsertTuple(t)
	pg.WUnlatch()
	if err == page.ErrNoFreeSlot {
		// the last page is full, extend the file by one page
		f.bpm.UnpinPage(pageID, false)
		pageID = types.NewPageID(f.id, f.NumPages())
		pg, err = f.bpm.GetPage(txn, pageID, buffer.READ_WRITE)
		if err != nil {
			return nil, err
		}
		pg.WLatch()
		_, err = pg.InsertTuple(t)
		pg.WUnlatch()
	}
	if err != nil {
		f.bpm.UnpinPage(pageID, false)
		return nil, err
	}

	pg.SetIsDirty(true)
	f.bpm.UnpinPage(pageID, true)

	dirtied := mapset.NewSet[types.PageID]()
	dirtied.Add(pageID)
	return dirtied, nil
}

// DeleteTuple resolves the tuple's RID and clears its slot. The RID must
// name a live tuple of this file's schema.
func (f *HeapFile) DeleteTuple(txn *concurrency.Transaction, t *tuple.Tuple) (mapset.Set[types.PageID], error) {
	rid := t.GetRID()
	if rid == nil || rid.GetPageId().GetFileID() != f.id {
		return nil, errors.ErrNotFound
	}
	if t.Size() != f.schema_.Length() {
		return nil, errors.ErrNotFound
	}

	pageID := rid.GetPageId()
	pg, err := f.bpm.GetPage(txn, pageID, buffer.READ_WRITE)
	if err != nil {
		return nil, err
	}

	pg.WLatch()
	err = pg.DeleteTuple(rid)
	pg.WUnlatch()
	if err != nil {
		f.bpm.UnpinPage(pageID, false)
		return nil, err
	}

	pg.SetIsDirty(true)
	f.bpm.UnpinPage(pageID, true)

	dirtied := mapset.NewSet[types.PageID]()
	dirtied.Add(pageID)
	return dirtied, nil
}

// Iterator produces a restartable scan of all live tuples, page 0 first,
// slots in ascending order within a page.
func (f *HeapFile) Iterator(txn *concurrency.Transaction) *HeapFileIterator {
	return NewHeapFileIterator(f, txn)
}
