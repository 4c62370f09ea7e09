package pagefile

import (
	"bytes"
	"fmt"
	"strconv"
)

// HeaderCodec encodes the header page stored at the start of every page file.
// The header holds the number of data pages as a decimal string followed by a newline,
// the rest of the page is zero filled.
type HeaderCodec struct {
}

func DefaultHeaderCodec() HeaderCodec {
	return HeaderCodec{}
}

// EncodeHeaderPage encodes the total number of data pages into a PAGE_SIZE byte slice.
func (codec HeaderCodec) EncodeHeaderPage(totalPages int) []byte {

	data := NewPageBuffer()
	copy(data, strconv.Itoa(totalPages)+"\n")
	return data
}

// DecodeHeaderPage decodes the total number of data pages from the header page.
func (codec HeaderCodec) DecodeHeaderPage(data []byte) (int, error) {

	end := bytes.IndexAny(data, "\n\x00")
	if end == -1 {
		end = len(data)
	}

	totalPages, err := strconv.Atoi(string(bytes.TrimSpace(data[:end])))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCorruptHeader, err)
	}

	if totalPages < 0 {
		return 0, fmt.Errorf("%w: negative page count %d", ErrCorruptHeader, totalPages)
	}
	return totalPages, nil
}
