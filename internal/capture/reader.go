package capture

import (
	"io"
	"os"

	"github.com/vango-dev/netsync/internal/errors"
	"github.com/vango-dev/netsync/pkg/protocol"
)

// Reader iterates the records of a capture held in memory.
type Reader struct {
	dec *protocol.Decoder
}

// NewReader validates the capture header in data.
func NewReader(data []byte) (*Reader, error) {
	dec := protocol.NewDecoder(data)
	if err := decodeHeader(dec); err != nil {
		return nil, err
	}
	return &Reader{dec: dec}, nil
}

// Open reads the capture file at path.
func Open(path string) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.CodeCaptureOpen).WithField("path", path).Wrap(err)
	}
	r, err := NewReader(data)
	if err != nil {
		return nil, errors.FromError(err, errors.CodeCaptureCorrupt).WithField("path", path)
	}
	return r, nil
}

// Next returns the next record, or io.EOF after the last one.
func (r *Reader) Next() (Record, error) {
	return decodeRecord(r.dec)
}

// All reads every remaining record. A corrupt tail is reported with the
// records read before it.
func (r *Reader) All() ([]Record, error) {
	var out []Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

// ReadFile reads every record of the capture file at path.
func ReadFile(path string) ([]Record, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	return r.All()
}
