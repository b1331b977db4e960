package types

import (
	"github.com/medakadb/medakadb/common"
)

// PageID identifies a page as (heap file id, page number within the file).
// The file id is stable for the lifetime of the process and is derived from
// a hash of the absolute path of the backing file.
type PageID struct {
	fileID  uint32
	pageNum int32
}

func NewPageID(fileID uint32, pageNum int32) PageID {
	return PageID{fileID, pageNum}
}

func InvalidPageID() PageID {
	return PageID{0, common.InvalidPageNum}
}

func (id PageID) GetFileID() uint32 {
	return id.fileID
}

func (id PageID) GetPageNum() int32 {
	return id.pageNum
}

// IsValid checks the page number is non-negative.
func (id PageID) IsValid() bool {
	return id.pageNum >= 0
}
