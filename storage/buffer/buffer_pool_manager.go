package buffer

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/golang-collections/collections/queue"
	"github.com/medakadb/medakadb/common"
	"github.com/medakadb/medakadb/concurrency"
	"github.com/medakadb/medakadb/errors"
	"github.com/medakadb/medakadb/storage/page"
	"github.com/medakadb/medakadb/storage/tuple"
	"github.com/medakadb/medakadb/types"
	"github.com/sasha-s/go-deadlock"
)

// AccessIntent tells the pool whether the caller will mutate the page.
type AccessIntent int32

const (
	READ_ONLY AccessIntent = iota
	READ_WRITE
)

const ErrPoolExhausted = errors.Error("buffer pool is full and every frame is pinned")

// DbFile is a page-organized backing store registered with the pool. The
// pool routes page reads, write-backs and tuple deletes through it.
type DbFile interface {
	GetID() uint32
	ReadPage(pageID types.PageID) (*page.HeapPage, error)
	WritePage(p *page.HeapPage) error
	DeleteTuple(txn *concurrency.Transaction, t *tuple.Tuple) (mapset.Set[types.PageID], error)
}

type FrameID uint32

// BufferPoolManager owns in-memory page residency: a fixed number of frames,
// a page table, pin counts and dirty write-back through the owning file.
type BufferPoolManager struct {
	poolSize  uint32
	frames    []*page.HeapPage
	pageTable map[types.PageID]FrameID
	freeList  *queue.Queue
	files     map[uint32]DbFile
	mutex     deadlock.Mutex
}

func NewBufferPoolManager(poolSize uint32) *BufferPoolManager {
	freeList := queue.New()
	for i := uint32(0); i < poolSize; i++ {
		freeList.Enqueue(FrameID(i))
	}
	return &BufferPoolManager{
		poolSize:  poolSize,
		frames:    make([]*page.HeapPage, poolSize),
		pageTable: make(map[types.PageID]FrameID),
		freeList:  freeList,
		files:     make(map[uint32]DbFile),
	}
}

// RegisterFile makes the pool able to route I/O for the file's pages.
func (b *BufferPoolManager) RegisterFile(file DbFile) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.files[file.GetID()] = file
}

// GetPageSize returns the fixed page size in bytes, a process-wide constant.
func (b *BufferPoolManager) GetPageSize() int {
	return common.PageSize
}

// GetPage returns the requested page, fetching and caching it as needed.
// The returned page is pinned; callers unpin it when done, dirty or not.
func (b *BufferPoolManager) GetPage(txn *concurrency.Transaction, pageID types.PageID, intent AccessIntent) (*page.HeapPage, error) {
	if txn != nil && txn.IsAborted() {
		return nil, errors.ErrTxnAborted
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()

	if frameID, ok := b.pageTable[pageID]; ok {
		pg := b.frames[frameID]
		pg.IncPinCount()
		return pg, nil
	}

	file, ok := b.files[pageID.GetFileID()]
	if !ok {
		return nil, errors.ErrNotFound
	}

	frameID, err := b.getFrameID()
	if err != nil {
		return nil, err
	}

	pg, err := file.ReadPage(pageID)
	if err != nil {
		b.freeList.Enqueue(frameID)
		return nil, err
	}
	pg.IncPinCount()
	b.pageTable[pageID] = frameID
	b.frames[frameID] = pg
	return pg, nil
}

// UnpinPage unpins the target page, recording whether the caller dirtied it.
func (b *BufferPoolManager) UnpinPage(pageID types.PageID, isDirty bool) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	frameID, ok := b.pageTable[pageID]
	if !ok {
		return errors.ErrNotFound
	}
	pg := b.frames[frameID]
	pg.DecPinCount()
	if isDirty {
		pg.SetIsDirty(true)
	}
	return nil
}

// DeleteTuple routes a tuple delete to the heap file owning the tuple's page.
func (b *BufferPoolManager) DeleteTuple(txn *concurrency.Transaction, t *tuple.Tuple) error {
	if txn != nil && txn.IsAborted() {
		return errors.ErrTxnAborted
	}
	rid := t.GetRID()
	if rid == nil {
		return errors.ErrNotFound
	}

	b.mutex.Lock()
	file, ok := b.files[rid.GetPageId().GetFileID()]
	b.mutex.Unlock()
	if !ok {
		return errors.ErrNotFound
	}

	_, err := file.DeleteTuple(txn, t)
	return err
}

// FlushPage writes the target page back through its owning file.
func (b *BufferPoolManager) FlushPage(pageID types.PageID) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.flushPageLocked(pageID)
}

func (b *BufferPoolManager) flushPageLocked(pageID types.PageID) error {
	frameID, ok := b.pageTable[pageID]
	if !ok {
		return errors.ErrNotFound
	}
	pg := b.frames[frameID]
	file, ok := b.files[pageID.GetFileID()]
	if !ok {
		return errors.ErrNotFound
	}
	if err := file.WritePage(pg); err != nil {
		return err
	}
	pg.SetIsDirty(false)
	return nil
}

// FlushAllPages writes back every dirty resident page.
func (b *BufferPoolManager) FlushAllPages() {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	for pageID, frameID := range b.pageTable {
		if b.frames[frameID].IsDirty() {
			if err := b.flushPageLocked(pageID); err != nil {
				common.MdPrintf(common.WARN, "flush of page %v failed: %v\n", pageID, err)
			}
		}
	}
}

// getFrameID takes a frame from the free list, evicting an unpinned page
// when every frame is occupied. Dirty victims are written back first.
func (b *BufferPoolManager) getFrameID() (FrameID, error) {
	if b.freeList.Len() > 0 {
		return b.freeList.Dequeue().(FrameID), nil
	}

	for pageID, frameID := range b.pageTable {
		victim := b.frames[frameID]
		if victim.PinCount() > 0 {
			continue
		}
		if victim.IsDirty() {
			if err := b.flushPageLocked(pageID); err != nil {
				return 0, err
			}
		}
		delete(b.pageTable, pageID)
		b.frames[frameID] = nil
		return frameID, nil
	}
	return 0, ErrPoolExhausted
}
