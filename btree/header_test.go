package btree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderPathDerivation(t *testing.T) {
	require.Equal(t, "store.hdr", headerPath("store.flraf"))
	require.Equal(t, "/data/words.hdr", headerPath("/data/words.flraf"))
	// Unconventional suffixes fall back to a plain extension swap.
	require.Equal(t, "store.hdr", headerPath("store.dat"))
}

func TestHeaderRoundTrip(t *testing.T) {
	dir := t.TempDir()
	h := header{
		FileName:          filepath.Join(dir, "words.flraf"),
		Order:             8,
		NodeSize:          256,
		NodeCount:         42,
		TreeSize:          42 * 256,
		RootBlockNumber:   17,
		UnallocatedBlocks: []int64{3, 9, 5},
	}
	require.NoError(t, writeHeader(h))

	got, err := readHeader(filepath.Join(dir, "words.hdr"))
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestHeaderWriteLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	h := header{
		FileName:        filepath.Join(dir, "words.flraf"),
		Order:           8,
		NodeSize:        256,
		RootBlockNumber: NullLink,
	}
	require.NoError(t, writeHeader(h))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "words.hdr", entries[0].Name())
}

func TestHeaderRewrittenAfterEveryMutation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.flraf")
	tr, err := OpenFresh(8, 256, path, 4, nil)
	require.NoError(t, err)
	defer tr.Close()

	hdrPath := filepath.Join(dir, "test.hdr")

	_, err = tr.Add("a")
	require.NoError(t, err)
	h, err := readHeader(hdrPath)
	require.NoError(t, err)
	require.EqualValues(t, 1, h.NodeCount)
	require.Equal(t, tr.rootBlock, h.RootBlockNumber)
	require.EqualValues(t, 256, h.TreeSize)

	_, err = tr.Remove("a")
	require.NoError(t, err)
	h, err = readHeader(hdrPath)
	require.NoError(t, err)
	require.EqualValues(t, 0, h.NodeCount)
	require.Equal(t, NullLink, h.RootBlockNumber)
	require.Equal(t, []int64{0}, h.UnallocatedBlocks)
}
