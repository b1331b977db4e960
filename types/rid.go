package types

import "fmt"

// RID is the record identifier for the given page identifier and slot number.
// It is a non-owning back-reference: resolving it to a live tuple always goes
// through the buffer pool.
type RID struct {
	pageID  PageID
	slotNum uint32
}

// Set sets the record identifier
func (r *RID) Set(pageID PageID, slot uint32) {
	r.pageID = pageID
	r.slotNum = slot
}

// GetPageId gets the page id
func (r *RID) GetPageId() PageID {
	return r.pageID
}

// GetSlotNum gets the slot number
func (r *RID) GetSlotNum() uint32 {
	return r.slotNum
}

func (r *RID) Equals(other *RID) bool {
	if other == nil {
		return false
	}
	return r.pageID == other.pageID && r.slotNum == other.slotNum
}

func (r *RID) String() string {
	return fmt.Sprintf("(%d:%d)", r.pageID.GetPageNum(), r.slotNum)
}
