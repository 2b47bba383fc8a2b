package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeBlockFile is an in-memory stand-in for blockfile.File, sized to
// reproduce the admission-policy scenarios precisely.
type fakeBlockFile struct {
	blockSize int
	blocks    map[int64][]byte
	writes    []int64 // block numbers written, in order, for assertions
}

func newFakeBlockFile(blockSize int) *fakeBlockFile {
	return &fakeBlockFile{blockSize: blockSize, blocks: map[int64][]byte{}}
}

func (f *fakeBlockFile) Read(block int64) ([]byte, error) {
	if b, ok := f.blocks[block]; ok {
		return b, nil
	}
	return nil, nil
}

func (f *fakeBlockFile) Write(block int64, buf []byte) error {
	cp := make([]byte, len(buf))
	copy(cp, buf)
	f.blocks[block] = cp
	f.writes = append(f.writes, block)
	return nil
}

func (f *fakeBlockFile) Len() (int64, error) { return 0, nil }
func (f *fakeBlockFile) BlockSize() int      { return f.blockSize }
func (f *fakeBlockFile) Close() error        { return nil }

func bytesOf(n byte) []byte {
	return []byte{n, n, n, n}
}

func TestAllocateLIFOFreeList(t *testing.T) {
	bf := newFakeBlockFile(4)
	c, err := Open(2, bf, nil)
	require.NoError(t, err)

	require.EqualValues(t, 0, c.Allocate())
	require.EqualValues(t, 1, c.Allocate())
	require.EqualValues(t, 2, c.Allocate())

	c.Deallocate(1)
	c.Deallocate(0)

	// LIFO: last deallocated (0) comes back first.
	require.EqualValues(t, 0, c.Allocate())
	require.EqualValues(t, 1, c.Allocate())
	require.EqualValues(t, 3, c.Allocate())
}

func TestReadWriteRoundTrip(t *testing.T) {
	bf := newFakeBlockFile(4)
	c, err := Open(4, bf, nil)
	require.NoError(t, err)

	require.NoError(t, c.Write(0, bytesOf(7)))
	got, err := c.Read(0)
	require.NoError(t, err)
	require.Equal(t, bytesOf(7), got)
	// Not flushed yet: the block file shouldn't have it.
	require.Empty(t, bf.writes)
}

func TestAdmissionEvictsCleanBeforeDirty(t *testing.T) {
	bf := newFakeBlockFile(4)
	c, err := Open(2, bf, nil)
	require.NoError(t, err)

	// Fill the cache: block 0 dirty, block 1 clean (simulate a promoted read).
	require.NoError(t, bf.Write(1, bytesOf(1)))
	bf.writes = nil // only writes made by the cache count from here on
	require.NoError(t, c.Write(0, bytesOf(0)))
	_, err = c.Read(1)
	require.NoError(t, err)

	// Insert a third block; the clean entry (1) should be evicted, not the dirty one (0).
	require.NoError(t, c.Write(2, bytesOf(2)))

	got, err := c.Read(0)
	require.NoError(t, err)
	require.Equal(t, bytesOf(0), got, "dirty entry for block 0 must survive eviction")

	// Block 1 was evicted without being written back (it was clean).
	require.NotContains(t, bf.writes, int64(1))
}

func TestAdmissionFlushesWhenAllDirty(t *testing.T) {
	bf := newFakeBlockFile(4)
	c, err := Open(2, bf, nil)
	require.NoError(t, err)

	require.NoError(t, c.Write(0, bytesOf(0)))
	require.NoError(t, c.Write(1, bytesOf(1)))

	// Both entries are dirty; admitting a third must flush everything.
	require.NoError(t, c.Write(2, bytesOf(2)))

	require.Contains(t, bf.writes, int64(0))
	require.Contains(t, bf.writes, int64(1))

	// Block 0 (the tail, LRU-ish) was dropped from the cache after the flush;
	// reading it again comes from the block file, not a stale dirty copy.
	got, err := c.Read(0)
	require.NoError(t, err)
	require.Equal(t, bytesOf(0), got)
}

func TestDeallocateResidentClearsDirty(t *testing.T) {
	bf := newFakeBlockFile(4)
	c, err := Open(2, bf, nil)
	require.NoError(t, err)

	require.NoError(t, c.Write(5, bytesOf(5)))
	c.Deallocate(5)
	require.NoError(t, c.Flush())

	require.NotContains(t, bf.writes, int64(5), "deallocated block must not be persisted")
}

func TestFlushAndClose(t *testing.T) {
	bf := newFakeBlockFile(4)
	c, err := Open(2, bf, nil)
	require.NoError(t, err)

	require.NoError(t, c.Write(0, bytesOf(9)))
	require.NoError(t, c.Close())
	require.Contains(t, bf.writes, int64(0))
}

func TestOpenSeedsHighWaterFromFileLength(t *testing.T) {
	bf := newFakeBlockFile(4)
	bf.blocks[0] = bytesOf(0)
	bf.blocks[1] = bytesOf(0)
	bf.blocks[2] = bytesOf(0)
	bf2 := &lenOverride{fakeBlockFile: bf, length: 3 * 4}

	c, err := Open(2, bf2, []int64{7})
	require.NoError(t, err)

	// Free list has priority over the high-water mark.
	require.EqualValues(t, 7, c.Allocate())
	require.EqualValues(t, 3, c.Allocate())
}

type lenOverride struct {
	*fakeBlockFile
	length int64
}

func (l *lenOverride) Len() (int64, error) { return l.length, nil }
