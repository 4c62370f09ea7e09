package pagefile

import "errors"

var (
	ErrFileNotFound        = errors.New("page file not found")
	ErrWriteFailed         = errors.New("write failed")
	ErrReadNonExistingPage = errors.New("read non existing page")
	ErrInvalidBufferSize   = errors.New("buffer size must equal PAGE_SIZE")
	ErrCorruptHeader       = errors.New("corrupt page file header")
	ErrFileClosed          = errors.New("page file is closed")
)
