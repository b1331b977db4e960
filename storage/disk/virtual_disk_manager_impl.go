package disk

import (
	"fmt"
	"sync"

	"github.com/dsnet/golib/memfile"
	"github.com/medakadb/medakadb/common"
	"github.com/medakadb/medakadb/errors"
)

// VirtualDiskManagerImpl keeps page data on an in-memory file. Tests and
// throwaway instances use it so nothing touches the real filesystem.
type VirtualDiskManagerImpl struct {
	db        *memfile.File
	filePath  string
	size      int64
	numPages  int32
	fileMutex *sync.Mutex
}

func NewVirtualDiskManagerImpl(dbFilename string) DiskManager {
	file := memfile.New(make([]byte, 0))
	return &VirtualDiskManagerImpl{file, dbFilename, 0, 0, new(sync.Mutex)}
}

// ShutDown does nothing, the data only ever lived in memory
func (d *VirtualDiskManagerImpl) ShutDown() {
}

func (d *VirtualDiskManagerImpl) WritePage(pageNum int32, data []byte) error {
	if pageNum < 0 {
		return errors.ErrInvalidPage
	}
	if len(data) != common.PageSize {
		return errors.ErrInvalidArgument
	}

	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	offset := int64(pageNum) * common.PageSize
	bytesWritten, err := d.db.WriteAt(data, offset)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrIO, err)
	}
	if bytesWritten != common.PageSize {
		return fmt.Errorf("%w: bytes written not equals page size", errors.ErrIO)
	}

	if offset+common.PageSize > d.size {
		d.size = offset + common.PageSize
	}
	if pageNum+1 > d.numPages {
		d.numPages = pageNum + 1
	}
	return nil
}

func (d *VirtualDiskManagerImpl) ReadPage(pageNum int32, data []byte) error {
	if pageNum < 0 {
		return errors.ErrInvalidPage
	}
	if len(data) != common.PageSize {
		return errors.ErrInvalidArgument
	}

	if pageNum >= d.numPages {
		for i := range data {
			data[i] = 0
		}
		return d.WritePage(pageNum, data)
	}

	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	offset := int64(pageNum) * common.PageSize
	bytesRead, err := d.db.ReadAt(data, offset)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrIO, err)
	}
	if bytesRead != common.PageSize {
		return fmt.Errorf("%w: bytes read not equals page size", errors.ErrIO)
	}
	return nil
}

func (d *VirtualDiskManagerImpl) NumPages() int32 {
	return d.numPages
}

func (d *VirtualDiskManagerImpl) FilePath() string {
	return d.filePath
}

func (d *VirtualDiskManagerImpl) Size() int64 {
	return d.size
}
