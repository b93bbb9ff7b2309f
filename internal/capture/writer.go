package capture

import (
	"bufio"
	"io"
	"os"
	"sync"

	"github.com/vango-dev/netsync/internal/errors"
	"github.com/vango-dev/netsync/pkg/protocol"
)

// Writer appends records to a capture. It is safe for concurrent use; the
// session's reliable and unreliable receive loops share one Writer.
type Writer struct {
	mu      sync.Mutex
	w       *bufio.Writer
	closer  io.Closer
	enc     *protocol.Encoder
	records uint64
	bytes   int64
	err     error
}

// Create creates or truncates the capture file at path.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.New(errors.CodeCaptureOpen).WithField("path", path).Wrap(err)
	}
	w, err := NewWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// NewWriter writes the capture header to w and returns a Writer for the
// records that follow.
func NewWriter(w io.Writer) (*Writer, error) {
	cw := &Writer{
		w:   bufio.NewWriter(w),
		enc: protocol.NewEncoder(headerSize),
	}
	encodeHeader(cw.enc)
	if err := cw.flushEncoder(); err != nil {
		return nil, errors.New(errors.CodeCaptureOpen).Wrap(err)
	}
	return cw, nil
}

// WriteFrame records one inbound frame. After the first write error every
// later call returns that error.
func (w *Writer) WriteFrame(reliable bool, receivedAtMs float64, frame []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	encodeRecord(w.enc, Record{Reliable: reliable, ReceivedAtMs: receivedAtMs, Frame: frame})
	if err := w.flushEncoder(); err != nil {
		w.err = err
		return err
	}
	w.records++
	return nil
}

func (w *Writer) flushEncoder() error {
	n, err := w.w.Write(w.enc.Bytes())
	w.bytes += int64(n)
	w.enc.Reset()
	return err
}

// Flush writes buffered records to the underlying writer.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}

// Records returns the number of records written.
func (w *Writer) Records() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.records
}

// Size returns the number of bytes written, header included.
func (w *Writer) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bytes
}

// Close flushes the capture and closes the file opened by Create.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	err := w.w.Flush()
	if w.err == nil {
		w.err = os.ErrClosed
	}
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
		w.closer = nil
	}
	return err
}
