package page

import (
	"github.com/medakadb/medakadb/common"
	"github.com/medakadb/medakadb/errors"
	"github.com/medakadb/medakadb/storage/table/schema"
	"github.com/medakadb/medakadb/storage/tuple"
	"github.com/medakadb/medakadb/types"
)

const ErrNoFreeSlot = errors.Error("could not find a free slot")
const ErrEmptyTuple = errors.Error("tuple cannot be empty")

/**
 * Heap page format:
 * -----------------------------------------------------------
 * | OCCUPANCY BITMAP | SLOT 0 | SLOT 1 | ... | SLOT N-1 | 0 |
 * -----------------------------------------------------------
 * The bitmap holds one bit per slot, LSB first within each byte; bit i set
 * means slot i holds a live tuple. Every slot is schema.Length() bytes.
 * N = floor(PageSize*8 / (tupleSize*8 + 1)), bitmap size = ceil(N/8) bytes.
 */
type HeapPage struct {
	id       types.PageID
	schema   *schema.Schema
	numSlots uint32
	header   []byte
	slots    []*tuple.Tuple
	pinCount int32
	isDirty  bool
	latch    common.ReaderWriterLatch
}

// SlotCapacity returns the number of tuple slots a page holds for the given
// tuple size, accounting for the one bitmap bit each slot costs.
func SlotCapacity(tupleSize uint32) uint32 {
	return (common.PageSize * 8) / (tupleSize*8 + 1)
}

func headerBytes(numSlots uint32) uint32 {
	return (numSlots + 7) / 8
}

// NewEmptyHeapPage creates a zeroed page with every slot free.
func NewEmptyHeapPage(id types.PageID, schema_ *schema.Schema) *HeapPage {
	numSlots := SlotCapacity(schema_.Length())
	return &HeapPage{
		id:       id,
		schema:   schema_,
		numSlots: numSlots,
		header:   make([]byte, headerBytes(numSlots)),
		slots:    make([]*tuple.Tuple, numSlots),
		latch:    common.NewRWLatch(),
	}
}

// NewHeapPageFromBytes decodes a page-sized byte window.
func NewHeapPageFromBytes(id types.PageID, data []byte, schema_ *schema.Schema) *HeapPage {
	common.MD_Assert(len(data) == common.PageSize, "page data must be PageSize bytes")

	p := NewEmptyHeapPage(id, schema_)
	copy(p.header, data[:len(p.header)])

	tupleSize := schema_.Length()
	base := uint32(len(p.header))
	for i := uint32(0); i < p.numSlots; i++ {
		if !p.IsSlotUsed(i) {
			continue
		}
		slotData := make([]byte, tupleSize)
		copy(slotData, data[base+i*tupleSize:base+(i+1)*tupleSize])
		t := tuple.NewTupleFromBytes(slotData)
		rid := new(types.RID)
		rid.Set(id, i)
		t.SetRID(rid)
		p.slots[i] = t
	}
	return p
}

// Serialize encodes the page into exactly PageSize bytes: bitmap first,
// then the slots in order, free slots zeroed.
func (p *HeapPage) Serialize() []byte {
	data := make([]byte, common.PageSize)
	copy(data, p.header)

	tupleSize := p.schema.Length()
	base := uint32(len(p.header))
	for i := uint32(0); i < p.numSlots; i++ {
		if p.slots[i] != nil {
			copy(data[base+i*tupleSize:], p.slots[i].Data())
		}
	}
	return data
}

// InsertTuple places the tuple into the first free slot and assigns its RID.
func (p *HeapPage) InsertTuple(t *tuple.Tuple) (*types.RID, error) {
	if t == nil || t.Size() == 0 {
		return nil, ErrEmptyTuple
	}
	if t.Size() != p.schema.Length() {
		return nil, errors.ErrInvalidArgument
	}
	for i := uint32(0); i < p.numSlots; i++ {
		if p.IsSlotUsed(i) {
			continue
		}
		p.setSlotUsed(i, true)
		p.slots[i] = t
		rid := new(types.RID)
		rid.Set(p.id, i)
		t.SetRID(rid)
		return rid, nil
	}
	return nil, ErrNoFreeSlot
}

// DeleteTuple clears the slot the RID names. The slot must currently hold a
// live tuple of this page's schema.
func (p *HeapPage) DeleteTuple(rid *types.RID) error {
	if rid == nil || rid.GetPageId() != p.id {
		return errors.ErrNotFound
	}
	slot := rid.GetSlotNum()
	if slot >= p.numSlots || !p.IsSlotUsed(slot) {
		return errors.ErrNotFound
	}
	p.setSlotUsed(slot, false)
	p.slots[slot] = nil
	return nil
}

func (p *HeapPage) GetTuple(slot uint32) *tuple.Tuple {
	common.MD_Assert(slot < p.numSlots, "slot number out of range")
	return p.slots[slot]
}

func (p *HeapPage) IsSlotUsed(slot uint32) bool {
	return p.header[slot/8]&(1<<(slot%8)) != 0
}

func (p *HeapPage) setSlotUsed(slot uint32, used bool) {
	if used {
		p.header[slot/8] |= 1 << (slot % 8)
	} else {
		p.header[slot/8] &^= 1 << (slot % 8)
	}
}

func (p *HeapPage) GetNumSlots() uint32 {
	return p.numSlots
}

func (p *HeapPage) GetNumFreeSlots() uint32 {
	free := uint32(0)
	for i := uint32(0); i < p.numSlots; i++ {
		if !p.IsSlotUsed(i) {
			free++
		}
	}
	return free
}

// GetLiveTuples returns the live tuples in ascending slot order.
func (p *HeapPage) GetLiveTuples() []*tuple.Tuple {
	live := make([]*tuple.Tuple, 0, p.numSlots)
	for i := uint32(0); i < p.numSlots; i++ {
		if p.IsSlotUsed(i) {
			live = append(live, p.slots[i])
		}
	}
	return live
}

func (p *HeapPage) ID() types.PageID {
	return p.id
}

func (p *HeapPage) GetSchema() *schema.Schema {
	return p.schema
}

func (p *HeapPage) IncPinCount() {
	p.pinCount++
}

func (p *HeapPage) DecPinCount() {
	if p.pinCount > 0 {
		p.pinCount--
	}
}

func (p *HeapPage) PinCount() int32 {
	return p.pinCount
}

func (p *HeapPage) SetIsDirty(isDirty bool) {
	p.isDirty = isDirty
}

func (p *HeapPage) IsDirty() bool {
	return p.isDirty
}

func (p *HeapPage) WLatch() {
	p.latch.WLock()
}

func (p *HeapPage) WUnlatch() {
	p.latch.WUnlock()
}

func (p *HeapPage) RLatch() {
	p.latch.RLock()
}

func (p *HeapPage) RUnlatch() {
	p.latch.RUnlock()
}
