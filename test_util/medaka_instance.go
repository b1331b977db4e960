package test_util

import (
	"github.com/medakadb/medakadb/common"
	"github.com/medakadb/medakadb/concurrency"
	"github.com/medakadb/medakadb/storage/access"
	"github.com/medakadb/medakadb/storage/buffer"
	"github.com/medakadb/medakadb/storage/disk"
	"github.com/medakadb/medakadb/storage/table/schema"
)

// MedakaInstance bundles the pieces a test needs: a disk manager, a buffer
// pool and a transaction manager. The backing store is in-memory unless a
// real file is requested.
type MedakaInstance struct {
	DiskManager disk.DiskManager
	BPM         *buffer.BufferPoolManager
	TxnMgr      *concurrency.TransactionManager
}

func NewMedakaInstance(dbName string) *MedakaInstance {
	dm := disk.NewVirtualDiskManagerImpl(dbName)
	return &MedakaInstance{
		DiskManager: dm,
		BPM:         buffer.NewBufferPoolManager(common.BufferPoolSize),
		TxnMgr:      concurrency.NewTransactionManager(),
	}
}

func NewMedakaInstanceOnDisk(dbFilename string) (*MedakaInstance, error) {
	dm, err := disk.NewDiskManagerImpl(dbFilename)
	if err != nil {
		return nil, err
	}
	return &MedakaInstance{
		DiskManager: dm,
		BPM:         buffer.NewBufferPoolManager(common.BufferPoolSize),
		TxnMgr:      concurrency.NewTransactionManager(),
	}, nil
}

// CreateHeapFile opens a heap file over the instance's disk manager and
// registers it with the buffer pool.
func (mi *MedakaInstance) CreateHeapFile(schema_ *schema.Schema) *access.HeapFile {
	return access.NewHeapFile(mi.DiskManager, schema_, mi.BPM)
}

func (mi *MedakaInstance) Shutdown() {
	mi.BPM.FlushAllPages()
	mi.DiskManager.ShutDown()
}
