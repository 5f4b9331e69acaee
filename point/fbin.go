package point

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/nnglabs/mng/internal/conv"
)

// ErrTruncatedFile is returned when an .fbin file ends before its declared
// point count and dimension have been fully read.
var ErrTruncatedFile = fmt.Errorf("point: truncated .fbin file")

// LoadFbin loads a PointSet from the .fbin binary layout: a 4-byte
// little-endian u32 point count n, a 4-byte little-endian u32 dimension d,
// followed by n*d IEEE-754 little-endian float32 values.
//
// This is a minimal, real implementation of the external input contract
// described in the interface section; dataset-selection CLI conventions and
// ground-truth loading remain outside the core engine.
func LoadFbin(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("point: open %s: %w", path, err)
	}
	defer f.Close()

	return ReadFbin(bufio.NewReader(f))
}

// ReadFbin reads the .fbin layout from an arbitrary io.Reader, for callers
// that already hold an open file, a memory-mapped section, or a network
// stream.
func ReadFbin(r io.Reader) (*Set, error) {
	var header [2]uint32
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrTruncatedFile
		}
		return nil, fmt.Errorf("point: read header: %w", err)
	}

	n, err := conv.Uint32ToInt(header[0])
	if err != nil {
		return nil, fmt.Errorf("point: point count: %w", err)
	}
	d, err := conv.Uint32ToInt(header[1])
	if err != nil {
		return nil, fmt.Errorf("point: dimension: %w", err)
	}
	if n == 0 {
		return &Set{dim: 0, data: nil}, nil
	}
	if d <= 0 {
		return nil, &ErrInvalidDimension{Dimension: d}
	}

	data := make([]float32, n*d)
	if err := binary.Read(r, binary.LittleEndian, data); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrTruncatedFile
		}
		return nil, fmt.Errorf("point: read vectors: %w", err)
	}

	return &Set{dim: d, data: data}, nil
}
