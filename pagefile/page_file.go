package pagefile

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ncw/directio"
)

const (
	PAGE_SIZE = 4096

	// the header page occupies the first PAGE_SIZE bytes of the file,
	// data page p is stored at offset (p + HEADER_PAGES) * PAGE_SIZE.
	HEADER_PAGES = 1
)

// PageNumber identifies a data page inside a page file, starting from 0.
type PageNumber int

// NO_PAGE marks a frame or a slot that does not hold a page.
const NO_PAGE PageNumber = -1

type Options struct {

	// DirectIO opens the file with O_DIRECT (F_NOCACHE on darwin),
	// bypassing the kernel page cache so the buffer pool is the only cache.
	DirectIO bool

	Logger *slog.Logger
}

// PageFile is a block addressable file of fixed size pages.
// The first page of the file is a header that stores the number of data pages.
type PageFile struct {
	name       string
	file       *os.File
	totalPages int
	curPagePos PageNumber
	directIO   bool

	codec   HeaderCodec
	scratch []byte
	logger  *slog.Logger
}

func openFile(name string, flags int, directIO bool) (*os.File, error) {

	if directIO {
		return directio.OpenFile(name, flags, 0644)
	}
	return os.OpenFile(name, flags, 0644)
}

// Create creates a new page file holding a single zero filled data page.
// An existing file with the same name is truncated.
func Create(name string, opts Options) error {

	logger := loggerOrDefault(opts.Logger)

	file, err := openFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, opts.DirectIO)
	if err != nil {
		logger.Error("Failed to create page file", "name", name, "error", err.Error(), "function", "Create", "at", "PageFile")
		return err
	}

	codec := DefaultHeaderCodec()

	if _, err := file.WriteAt(codec.EncodeHeaderPage(1), 0); err != nil {
		file.Close()
		return fmt.Errorf("%w: header page of %s: %v", ErrWriteFailed, name, err)
	}

	if _, err := file.WriteAt(NewPageBuffer(), HEADER_PAGES*PAGE_SIZE); err != nil {
		file.Close()
		return fmt.Errorf("%w: first page of %s: %v", ErrWriteFailed, name, err)
	}

	if err := syncFile(file); err != nil {
		file.Close()
		return err
	}

	logger.Info("Created page file", "name", name, "function", "Create", "at", "PageFile")

	return file.Close()
}

// Open opens an existing page file and reads the number of data pages from its header.
func Open(name string, opts Options) (*PageFile, error) {

	logger := loggerOrDefault(opts.Logger)

	file, err := openFile(name, os.O_RDWR, opts.DirectIO)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
		}
		return nil, err
	}

	pageFile := &PageFile{
		name:       name,
		file:       file,
		curPagePos: 0,
		directIO:   opts.DirectIO,
		codec:      DefaultHeaderCodec(),
		scratch:    NewPageBuffer(),
		logger:     logger,
	}

	if _, err := file.ReadAt(pageFile.scratch, 0); err != nil {
		file.Close()
		logger.Error("Failed to read header page", "name", name, "error", err.Error(), "function", "Open", "at", "PageFile")
		return nil, fmt.Errorf("%w: header page of %s: %v", ErrCorruptHeader, name, err)
	}

	totalPages, err := pageFile.codec.DecodeHeaderPage(pageFile.scratch)
	if err != nil {
		file.Close()
		return nil, err
	}
	pageFile.totalPages = totalPages

	logger.Debug("Opened page file", "name", name, "totalPages", totalPages, "directIO", opts.DirectIO, "function", "Open", "at", "PageFile")

	return pageFile, nil
}

// Destroy removes a page file from disk.
func Destroy(name string) error {

	if err := os.Remove(name); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, name)
		}
		return err
	}
	return nil
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {

	if logger == nil {
		return slog.Default()
	}
	return logger
}

func (pageFile *PageFile) Name() string {
	return pageFile.name
}

// TotalPages returns the number of data pages, the header page is not counted.
func (pageFile *PageFile) TotalPages() int {
	return pageFile.totalPages
}

// BlockPos returns the page read or written last.
func (pageFile *PageFile) BlockPos() PageNumber {
	return pageFile.curPagePos
}

func offsetOf(pageNum PageNumber) int64 {
	return (int64(pageNum) + HEADER_PAGES) * PAGE_SIZE
}

// ReadBlock reads data page pageNum into buffer, which must be exactly PAGE_SIZE bytes long.
func (pageFile *PageFile) ReadBlock(pageNum PageNumber, buffer []byte) error {

	if pageFile.file == nil {
		return ErrFileClosed
	}

	if len(buffer) != PAGE_SIZE {
		return ErrInvalidBufferSize
	}

	if pageNum < 0 || int(pageNum) >= pageFile.totalPages {
		return fmt.Errorf("%w: page %d, file %s has %d pages", ErrReadNonExistingPage, pageNum, pageFile.name, pageFile.totalPages)
	}

	target := buffer
	if pageFile.directIO && !isAligned(buffer) {
		target = pageFile.scratch
	}

	// ReadAt uses pread, the file offset shared with other calls is never moved.
	n, err := pageFile.file.ReadAt(target, offsetOf(pageNum))

	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("incomplete read of page %d: %d bytes", pageNum, n)
		}
		pageFile.logger.Error("Failed to read page", "pageId", pageNum, "error", err.Error(), "function", "ReadBlock", "at", "PageFile")
		return fmt.Errorf("read page %d of %s: %w", pageNum, pageFile.name, err)
	}

	if &target[0] != &buffer[0] {
		copy(buffer, target)
	}

	pageFile.curPagePos = pageNum
	return nil
}

// WriteBlock writes buffer to data page pageNum. The page must already exist, see EnsureCapacity.
func (pageFile *PageFile) WriteBlock(pageNum PageNumber, buffer []byte) error {

	if pageFile.file == nil {
		return ErrFileClosed
	}

	if len(buffer) != PAGE_SIZE {
		return ErrInvalidBufferSize
	}

	if pageNum < 0 || int(pageNum) >= pageFile.totalPages {
		return fmt.Errorf("%w: page %d, file %s has %d pages", ErrWriteFailed, pageNum, pageFile.name, pageFile.totalPages)
	}

	source := buffer
	if pageFile.directIO && !isAligned(buffer) {
		copy(pageFile.scratch, buffer)
		source = pageFile.scratch
	}

	if err := pageFile.write(offsetOf(pageNum), source); err != nil {
		pageFile.logger.Error("Failed to write page", "pageId", pageNum, "error", err.Error(), "function", "WriteBlock", "at", "PageFile")
		return fmt.Errorf("%w: page %d of %s: %v", ErrWriteFailed, pageNum, pageFile.name, err)
	}

	pageFile.curPagePos = pageNum
	return nil
}

// write function writes data to a particular offset in the file.
func (pageFile *PageFile) write(offset int64, data []byte) error {

	n, err := pageFile.file.WriteAt(data, offset)

	if err != nil {
		return err
	}

	if n != len(data) {
		return fmt.Errorf("incomplete write")
	}
	return nil
}

func (pageFile *PageFile) ReadFirstBlock(buffer []byte) error {
	return pageFile.ReadBlock(0, buffer)
}

func (pageFile *PageFile) ReadPreviousBlock(buffer []byte) error {
	return pageFile.ReadBlock(pageFile.curPagePos-1, buffer)
}

func (pageFile *PageFile) ReadCurrentBlock(buffer []byte) error {
	return pageFile.ReadBlock(pageFile.curPagePos, buffer)
}

func (pageFile *PageFile) ReadNextBlock(buffer []byte) error {
	return pageFile.ReadBlock(pageFile.curPagePos+1, buffer)
}

func (pageFile *PageFile) ReadLastBlock(buffer []byte) error {
	return pageFile.ReadBlock(PageNumber(pageFile.totalPages-1), buffer)
}

func (pageFile *PageFile) WriteCurrentBlock(buffer []byte) error {
	return pageFile.WriteBlock(pageFile.curPagePos, buffer)
}

// AppendEmptyBlock adds one zero filled data page at the end of the file.
func (pageFile *PageFile) AppendEmptyBlock() error {
	return pageFile.EnsureCapacity(pageFile.totalPages + 1)
}

// EnsureCapacity grows the file with zero filled pages until it holds at least numPages data pages.
// The header page is rewritten once all new pages are on disk.
func (pageFile *PageFile) EnsureCapacity(numPages int) error {

	if pageFile.file == nil {
		return ErrFileClosed
	}

	if numPages <= pageFile.totalPages {
		return nil
	}

	emptyPage := NewPageBuffer()

	for pageNum := pageFile.totalPages; pageNum < numPages; pageNum++ {

		if err := pageFile.write(offsetOf(PageNumber(pageNum)), emptyPage); err != nil {
			pageFile.logger.Error("Failed to append page", "pageId", pageNum, "error", err.Error(), "function", "EnsureCapacity", "at", "PageFile")
			return fmt.Errorf("%w: append page %d of %s: %v", ErrWriteFailed, pageNum, pageFile.name, err)
		}
	}

	if err := pageFile.write(0, pageFile.codec.EncodeHeaderPage(numPages)); err != nil {
		return fmt.Errorf("%w: header page of %s: %v", ErrWriteFailed, pageFile.name, err)
	}

	pageFile.logger.Debug("Grew page file", "from", pageFile.totalPages, "to", numPages, "function", "EnsureCapacity", "at", "PageFile")

	pageFile.totalPages = numPages
	pageFile.curPagePos = PageNumber(numPages - 1)
	return nil
}

// Sync flushes written pages to stable storage.
func (pageFile *PageFile) Sync() error {

	if pageFile.file == nil {
		return ErrFileClosed
	}
	return syncFile(pageFile.file)
}

// Close syncs and closes the file. Closing a closed page file is a no-op.
func (pageFile *PageFile) Close() error {

	if pageFile == nil || pageFile.file == nil {
		return nil
	}

	var err error

	if e := syncFile(pageFile.file); e != nil {
		err = errors.Join(err, fmt.Errorf("sync file: %w", e))
	}

	if e := pageFile.file.Close(); e != nil {
		pageFile.logger.Error("Failed to close file", "name", pageFile.name, "error", e.Error(), "function", "Close", "at", "PageFile")
		err = errors.Join(err, fmt.Errorf("close file: %w", e))
	}

	pageFile.file = nil
	return err
}
