package ioutil

import (
	"bufio"
	"bytes"

	"github.com/sasha-s/go-deadlock"
)

// AtomicWriter is a buffer safe for concurrent writes.
// It captures the stdout and stderr of commands in tests.
type AtomicWriter struct {
	mutex  *deadlock.Mutex
	writer *bufio.Writer
	buffer *bytes.Buffer
}

func NewAtomicWriter() *AtomicWriter {
	var buffer bytes.Buffer
	return &AtomicWriter{mutex: &deadlock.Mutex{}, writer: bufio.NewWriter(&buffer), buffer: &buffer}
}

func (w *AtomicWriter) Write(p []byte) (n int, err error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.writer.Write(p)
}

func (w *AtomicWriter) Sync() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.writer.Flush()
}

func (w *AtomicWriter) String() string {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if err := w.writer.Flush(); err != nil {
		return err.Error()
	}
	return w.buffer.String()
}
