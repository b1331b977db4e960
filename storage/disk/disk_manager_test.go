package disk

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/medakadb/medakadb/common"
	testingpkg "github.com/medakadb/medakadb/testing/testing_assert"
)

func fillPage(b byte) []byte {
	data := make([]byte, common.PageSize)
	for i := range data {
		data[i] = b
	}
	return data
}

func TestVirtualDiskReadWritePage(t *testing.T) {
	dm := NewVirtualDiskManagerImpl("test.db")
	defer dm.ShutDown()

	testingpkg.Equals(t, int32(0), dm.NumPages())

	testingpkg.Ok(t, dm.WritePage(0, fillPage(0xAA)))
	testingpkg.Ok(t, dm.WritePage(1, fillPage(0xBB)))
	testingpkg.Equals(t, int32(2), dm.NumPages())

	buf := make([]byte, common.PageSize)
	testingpkg.Ok(t, dm.ReadPage(1, buf))
	testingpkg.Assert(t, bytes.Equal(fillPage(0xBB), buf), "page 1 reads back what was written")

	// overwrite in place
	testingpkg.Ok(t, dm.WritePage(1, fillPage(0xCC)))
	testingpkg.Ok(t, dm.ReadPage(1, buf))
	testingpkg.Assert(t, bytes.Equal(fillPage(0xCC), buf), "page 1 reflects the overwrite")
	testingpkg.Equals(t, int32(2), dm.NumPages())
}

func TestVirtualDiskReadGrowsFile(t *testing.T) {
	dm := NewVirtualDiskManagerImpl("grow.db")
	defer dm.ShutDown()

	buf := fillPage(0xFF)
	testingpkg.Ok(t, dm.ReadPage(3, buf))
	testingpkg.Assert(t, bytes.Equal(make([]byte, common.PageSize), buf),
		"a page past the end reads back zeroed")
	testingpkg.Equals(t, int32(4), dm.NumPages())
}

func TestVirtualDiskNegativePage(t *testing.T) {
	dm := NewVirtualDiskManagerImpl("neg.db")
	defer dm.ShutDown()

	buf := make([]byte, common.PageSize)
	testingpkg.NotOk(t, dm.ReadPage(-1, buf))
	testingpkg.NotOk(t, dm.WritePage(-1, buf))
}

func TestDiskManagerImplPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "medaka.db")

	dm, err := NewDiskManagerImpl(path)
	testingpkg.Ok(t, err)
	testingpkg.Ok(t, dm.WritePage(0, fillPage(0x11)))
	testingpkg.Ok(t, dm.WritePage(2, fillPage(0x33)))
	testingpkg.Equals(t, int32(3), dm.NumPages())
	testingpkg.Equals(t, int64(3*common.PageSize), dm.Size())
	dm.ShutDown()

	// reopen and read back
	dm, err = NewDiskManagerImpl(path)
	testingpkg.Ok(t, err)
	defer dm.ShutDown()
	testingpkg.Equals(t, int32(3), dm.NumPages())

	buf := make([]byte, common.PageSize)
	testingpkg.Ok(t, dm.ReadPage(0, buf))
	testingpkg.Assert(t, bytes.Equal(fillPage(0x11), buf), "page 0 survives reopen")
	testingpkg.Ok(t, dm.ReadPage(1, buf))
	testingpkg.Assert(t, bytes.Equal(make([]byte, common.PageSize), buf),
		"the gap page reads back zeroed")

	info, err := os.Stat(path)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, int64(3*common.PageSize), info.Size())
}
