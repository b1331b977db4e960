package disk

// DiskManager is responsible for page-granular I/O against one backing store.
type DiskManager interface {
	// ReadPage reads the page into data (len(data) == PageSize). Reading a
	// page beyond the current extent grows the store with zeroed pages.
	ReadPage(pageNum int32, data []byte) error
	// WritePage writes exactly PageSize bytes at the page's offset. A short
	// write is reported as an error, never treated as success.
	WritePage(pageNum int32, data []byte) error
	// NumPages never shrinks across calls within a session.
	NumPages() int32
	// FilePath is the canonical path of the backing store.
	FilePath() string
	ShutDown()
	Size() int64
}
