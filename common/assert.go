package common

import (
	"runtime"

	"github.com/devlights/gomy/output"
	"github.com/sasha-s/go-deadlock"
)

func MD_Assert(condition bool, msg string) {
	if !condition {
		RuntimeStack()
		panic(msg)
	}
}

// ReaderWriterLatch guards page contents. The deadlock-checking mutex
// reports lock cycles when EnableDebug builds run concurrent scans.
type ReaderWriterLatch interface {
	WLock()
	WUnlock()
	RLock()
	RUnlock()
}

type readerWriterLatch struct {
	mutex *deadlock.RWMutex
}

func NewRWLatch() ReaderWriterLatch {
	return &readerWriterLatch{new(deadlock.RWMutex)}
}

func (l *readerWriterLatch) WLock() {
	l.mutex.Lock()
}

func (l *readerWriterLatch) WUnlock() {
	l.mutex.Unlock()
}

func (l *readerWriterLatch) RLock() {
	l.mutex.RLock()
}

func (l *readerWriterLatch) RUnlock() {
	l.mutex.RUnlock()
}

// RuntimeStack dumps stacks of all goroutines to stdout.
func RuntimeStack() {
	buf := make([]byte, 1024)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			buf = buf[:n]
			break
		}
		buf = make([]byte, 2*len(buf))
	}
	output.Stdoutl("=== stack-all   ", string(buf))
}
