// Package codec serializes and deserializes a B-tree node to and from one
// block-sized byte buffer, using a fixed key-slot / link-slot layout.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// linkSize is the byte width of one child-link slot: a 4-byte big-endian
// signed integer.
const linkSize = 4

// NullLink is the sentinel stored in an unused link slot, and the value
// used to mark an empty tree's root.
const NullLink int32 = -1

// ErrInvalidConfig is returned by New when order/nodeSize/charset do not
// yield whole keySize/keyLength values.
var ErrInvalidConfig = errors.New("codec: order and node size do not yield a whole key slot size")

// ErrKeyTooLong is returned by Encode when a key's encoded length exceeds
// the configured key slot.
var ErrKeyTooLong = errors.New("codec: key exceeds configured key length")

// ErrNodeTooLarge is returned by Encode if the encoded node would not fit
// in one block (should not happen given a valid Config, but guarded
// defensively).
var ErrNodeTooLarge = errors.New("codec: encoded node exceeds node size")

// ErrCorruptNode is returned by Decode when a buffer's key/link counts
// violate the node shape invariant (not a valid leaf or internal node).
var ErrCorruptNode = errors.New("codec: corrupt node encoding")

// Node is the decoded, in-memory shape of one node's worth of keys and
// child links. It makes no claim about leaf vs. internal; that's for the
// caller (btree.Node) to interpret from len(Links).
type Node struct {
	Keys  []string
	Links []int64 // empty for a leaf
}

// Config derives the two integers that must come out whole for a codec to
// exist: the byte width of a key slot, and its character-length
// equivalent under the configured charset.
type Config struct {
	Order        int // m: max children per node, max keys is m-1
	NodeSize     int // N: size in bytes of one node block
	BytesPerChar int // average bytes per character for the configured charset; 1 for UTF-8 single-byte keys
}

// Codec encodes/decodes nodes according to a fixed Config.
type Codec struct {
	cfg       Config
	keySize   int // bytes per key slot
	keyLength int // characters per key slot
}

// New constructs a Codec, failing with ErrInvalidConfig if keySize or
// keyLength would be non-integral.
func New(cfg Config) (*Codec, error) {
	if cfg.Order < 2 {
		return nil, fmt.Errorf("%w: order must be >= 2", ErrInvalidConfig)
	}
	if cfg.BytesPerChar <= 0 {
		cfg.BytesPerChar = 1
	}

	num := cfg.NodeSize - cfg.Order*linkSize
	den := cfg.Order - 1
	if den <= 0 || num <= 0 || num%den != 0 {
		return nil, ErrInvalidConfig
	}
	keySize := num / den
	if keySize%cfg.BytesPerChar != 0 {
		return nil, ErrInvalidConfig
	}

	return &Codec{
		cfg:       cfg,
		keySize:   keySize,
		keyLength: keySize / cfg.BytesPerChar,
	}, nil
}

// KeySize returns the byte width of one key slot.
func (c *Codec) KeySize() int { return c.keySize }

// KeyLength returns the character capacity of one key slot (a diagnostic
// check, not a substitute for the byte-level padding Encode/Decode do).
func (c *Codec) KeyLength() int { return c.keyLength }

// NodeSize returns the configured block size a node must encode to.
func (c *Codec) NodeSize() int { return c.cfg.NodeSize }

// Order returns the configured tree order m.
func (c *Codec) Order() int { return c.cfg.Order }

// Encode serializes n into a freshly allocated buffer of exactly NodeSize
// bytes, per the layout:
//
//	[ key0 | key1 | ... | key_{m-2} ][ link0 | link1 | ... | link_{m-1} ]
//
// Unused key slots are all-space; unused link slots encode NullLink.
func (c *Codec) Encode(n Node) ([]byte, error) {
	if len(n.Keys) > c.cfg.Order-1 {
		return nil, fmt.Errorf("%w: %d keys exceeds order-1 (%d)", ErrNodeTooLarge, len(n.Keys), c.cfg.Order-1)
	}
	if len(n.Links) > c.cfg.Order {
		return nil, fmt.Errorf("%w: %d links exceeds order (%d)", ErrNodeTooLarge, len(n.Links), c.cfg.Order)
	}

	buf := make([]byte, c.cfg.NodeSize)
	off := 0

	for i := 0; i < c.cfg.Order-1; i++ {
		slot := buf[off : off+c.keySize]
		if i < len(n.Keys) {
			key := n.Keys[i]
			if len(key) > c.keySize {
				return nil, fmt.Errorf("%w: %q is %d bytes, slot is %d", ErrKeyTooLong, key, len(key), c.keySize)
			}
			copy(slot, key)
			for j := len(key); j < c.keySize; j++ {
				slot[j] = ' '
			}
		} else {
			for j := range slot {
				slot[j] = ' '
			}
		}
		off += c.keySize
	}

	for i := 0; i < c.cfg.Order; i++ {
		slot := buf[off : off+linkSize]
		if i < len(n.Links) {
			binary.BigEndian.PutUint32(slot, uint32(int32(n.Links[i])))
		} else {
			nullLink := NullLink
			binary.BigEndian.PutUint32(slot, uint32(nullLink))
		}
		off += linkSize
	}

	if off != len(buf) {
		return nil, fmt.Errorf("%w: encoded %d bytes, expected %d", ErrNodeTooLarge, off, len(buf))
	}
	return buf, nil
}

// Decode parses a NodeSize-byte buffer back into a Node. Key slots are
// walked in order and trimmed of trailing spaces; the first slot that
// decodes to an empty string terminates the key sequence. Link slots are
// then walked in order; the first slot holding NullLink terminates the
// link sequence.
func (c *Codec) Decode(buf []byte) (Node, error) {
	if len(buf) != c.cfg.NodeSize {
		return Node{}, fmt.Errorf("%w: buffer is %d bytes, expected %d", ErrCorruptNode, len(buf), c.cfg.NodeSize)
	}

	off := 0
	keys := make([]string, 0, c.cfg.Order-1)
	for i := 0; i < c.cfg.Order-1; i++ {
		slot := buf[off : off+c.keySize]
		key := strings.TrimRight(string(slot), " ")
		if key == "" {
			break
		}
		keys = append(keys, key)
		off += c.keySize
	}

	linkOff := c.keySize * (c.cfg.Order - 1)
	links := make([]int64, 0, c.cfg.Order)
	for i := 0; i < c.cfg.Order; i++ {
		slot := buf[linkOff : linkOff+linkSize]
		v := int32(binary.BigEndian.Uint32(slot))
		if v == NullLink {
			break
		}
		links = append(links, int64(v))
		linkOff += linkSize
	}

	if len(links) != 0 && len(links) != len(keys)+1 {
		return Node{}, fmt.Errorf("%w: %d keys but %d links", ErrCorruptNode, len(keys), len(links))
	}

	return Node{Keys: keys, Links: links}, nil
}
