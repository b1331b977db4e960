package disk

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/medakadb/medakadb/common"
	"github.com/medakadb/medakadb/errors"
)

// DiskManagerImpl is the os.File implementation of DiskManager
type DiskManagerImpl struct {
	db        *os.File
	filePath  string
	size      int64
	numPages  int32
	numWrites uint64
}

// NewDiskManagerImpl returns a DiskManager instance backed by the given file
func NewDiskManagerImpl(dbFilename string) (DiskManager, error) {
	file, err := os.OpenFile(dbFilename, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return nil, fmt.Errorf("can't open db file %s: %w", dbFilename, err)
	}

	absPath, err := filepath.Abs(dbFilename)
	if err != nil {
		file.Close()
		return nil, err
	}

	fileInfo, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	fileSize := fileInfo.Size()
	return &DiskManagerImpl{file, absPath, fileSize, int32(fileSize / common.PageSize), 0}, nil
}

// ShutDown closes the database file
func (d *DiskManagerImpl) ShutDown() {
	d.db.Close()
}

// WritePage writes a page to the database file
func (d *DiskManagerImpl) WritePage(pageNum int32, data []byte) error {
	if pageNum < 0 {
		return errors.ErrInvalidPage
	}
	if len(data) != common.PageSize {
		return errors.ErrInvalidArgument
	}

	offset := int64(pageNum) * common.PageSize
	if _, err := d.db.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrIO, err)
	}
	bytesWritten, err := d.db.Write(data)
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
	d.numWrites++

	d.db.Sync()
	return nil
}

// ReadPage reads a page from the database file. A page number past the
// current extent grows the file with zeroed pages instead of failing.
func (d *DiskManagerImpl) ReadPage(pageNum int32, data []byte) error {
	if pageNum < 0 {
		return errors.ErrInvalidPage
	}
	if len(data) != common.PageSize {
		return errors.ErrInvalidArgument
	}

	if pageNum >= d.numPages {
		// auto-grow: materialize the page as zeroes
		for i := range data {
			data[i] = 0
		}
		return d.WritePage(pageNum, data)
	}

	offset := int64(pageNum) * common.PageSize
	if _, err := d.db.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrIO, err)
	}
	bytesRead, err := d.db.Read(data)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrIO, err)
	}
	if bytesRead != common.PageSize {
		return fmt.Errorf("%w: bytes read not equals page size", errors.ErrIO)
	}
	return nil
}

// NumPages returns the number of pages the file holds
func (d *DiskManagerImpl) NumPages() int32 {
	return d.numPages
}

func (d *DiskManagerImpl) FilePath() string {
	return d.filePath
}

// Size returns the size of the file in bytes
func (d *DiskManagerImpl) Size() int64 {
	return d.size
}
