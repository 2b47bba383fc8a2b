package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// m=8, N=256: keySize = (256 - 8*4)/7 = 32.
func testCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := New(Config{Order: 8, NodeSize: 256, BytesPerChar: 1})
	require.NoError(t, err)
	require.Equal(t, 32, c.KeySize())
	require.Equal(t, 32, c.KeyLength())
	return c
}

func TestNewRejectsNonIntegralConfig(t *testing.T) {
	// (300 - 8*4)/7 = 268/7 is not whole.
	_, err := New(Config{Order: 8, NodeSize: 300, BytesPerChar: 1})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestEncodeDecodeLeafRoundTrip(t *testing.T) {
	c := testCodec(t)
	n := Node{Keys: []string{"a", "b", "c", "d", "e", "f", "g"}}

	buf, err := c.Encode(n)
	require.NoError(t, err)
	require.Len(t, buf, 256)

	got, err := c.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, n.Keys, got.Keys)
	require.Empty(t, got.Links)
}

func TestEncodeDecodeInternalRoundTrip(t *testing.T) {
	c := testCodec(t)
	n := Node{Keys: []string{"d"}, Links: []int64{1, 2}}

	buf, err := c.Encode(n)
	require.NoError(t, err)

	got, err := c.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, n.Keys, got.Keys)
	require.Equal(t, n.Links, got.Links)
}

func TestEncodeUnusedSlotsArePaddedOrNull(t *testing.T) {
	c := testCodec(t)
	n := Node{Keys: []string{"only"}, Links: []int64{5, 9}}

	buf, err := c.Encode(n)
	require.NoError(t, err)

	// Second key slot should be all spaces.
	secondKeySlot := buf[c.KeySize() : 2*c.KeySize()]
	require.True(t, strings.TrimSpace(string(secondKeySlot)) == "")

	got, err := c.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, []string{"only"}, got.Keys)
	require.Equal(t, []int64{5, 9}, got.Links)
}

func TestEncodeKeyTooLong(t *testing.T) {
	c := testCodec(t)
	longKey := strings.Repeat("x", c.KeySize()+1)
	_, err := c.Encode(Node{Keys: []string{longKey}})
	require.ErrorIs(t, err, ErrKeyTooLong)
}

func TestDecodeRejectsShapeMismatch(t *testing.T) {
	c := testCodec(t)
	// Hand-build a buffer with 2 keys but 2 links (should be 3 for internal, or 0 for leaf).
	buf := make([]byte, 256)
	copy(buf, strings.Repeat(" ", 32*7)) // unused key slots are all-space
	copy(buf[0:], "a"+strings.Repeat(" ", 31))
	copy(buf[32:], "b"+strings.Repeat(" ", 31))
	linkOff := 32 * 7
	putBigEndianInt32(buf[linkOff:], 1)
	putBigEndianInt32(buf[linkOff+4:], 2)
	putBigEndianInt32(buf[linkOff+8:], int32(NullLink))

	_, err := c.Decode(buf)
	require.ErrorIs(t, err, ErrCorruptNode)
}

func putBigEndianInt32(b []byte, v int32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

func TestDecodeRejectsWrongBufferSize(t *testing.T) {
	c := testCodec(t)
	_, err := c.Decode(make([]byte, 10))
	require.ErrorIs(t, err, ErrCorruptNode)
}
