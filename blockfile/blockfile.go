// Package blockfile implements the fixed-length random-access block file
// that underlies the B-tree: a sequence of equal-sized blocks indexed from
// zero, read and written one block at a time.
package blockfile

import (
	"fmt"
	"os"
)

// File is a sequence of fixed-size blocks on disk, addressed by a
// zero-based block number. The block size and path are immutable for the
// lifetime of the file.
type File struct {
	f         *os.File
	blockSize int
}

// Open opens (creating if necessary) the block file at path with the given
// block size.
func Open(path string, blockSize int) (*File, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("blockfile: invalid block size %d", blockSize)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return nil, err
	}
	return &File{f: f, blockSize: blockSize}, nil
}

// BlockSize returns the configured block size in bytes.
func (bf *File) BlockSize() int {
	return bf.blockSize
}

// Len returns the current length of the file in bytes.
func (bf *File) Len() (int64, error) {
	info, err := bf.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Read reads the block at blockNumber into a freshly allocated buffer of
// BlockSize() bytes. A block beyond the current end of file yields a
// buffer of fewer than BlockSize() bytes filled with what was actually
// read; callers must never rely on the contents of unwritten bytes, and in
// practice the cache zero-extends such reads before handing them to the
// codec.
func (bf *File) Read(blockNumber int64) ([]byte, error) {
	if blockNumber < 0 {
		return nil, fmt.Errorf("blockfile: negative block number %d", blockNumber)
	}
	buf := make([]byte, bf.blockSize)
	offset := blockNumber * int64(bf.blockSize)
	n, err := bf.f.ReadAt(buf, offset)
	if err != nil && n == 0 {
		// A read entirely past EOF: nothing was read for this block yet.
		return buf[:0], nil
	}
	return buf[:n], nil
}

// Write writes buffer to the block at blockNumber. len(buffer) must equal
// BlockSize(). Writing past the current end of file extends it; the
// intervening region (if any) has undefined contents.
func (bf *File) Write(blockNumber int64, buffer []byte) error {
	if blockNumber < 0 {
		return fmt.Errorf("blockfile: negative block number %d", blockNumber)
	}
	if len(buffer) != bf.blockSize {
		return fmt.Errorf("blockfile: buffer length %d does not match block size %d", len(buffer), bf.blockSize)
	}
	offset := blockNumber * int64(bf.blockSize)
	n, err := bf.f.WriteAt(buffer, offset)
	if err != nil {
		return err
	}
	if n != len(buffer) {
		return fmt.Errorf("blockfile: short write at block %d: wrote %d of %d bytes", blockNumber, n, len(buffer))
	}
	return nil
}

// Sync flushes the file's in-kernel buffers to stable storage.
func (bf *File) Sync() error {
	return bf.f.Sync()
}

// Close closes the underlying file.
func (bf *File) Close() error {
	return bf.f.Close()
}
