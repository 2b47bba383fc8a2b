// Package cache implements the bounded in-memory block cache that
// mediates all access between the B-tree and the underlying block file:
// a small ordered set of (blockNumber, bytes, dirty) entries, plus the
// free-list allocator.
package cache

import "sync"

// BlockFile is the subset of blockfile.File the cache needs. Declared
// here (rather than imported) so the cache has no compile-time dependency
// on the concrete block file implementation.
type BlockFile interface {
	Read(blockNumber int64) ([]byte, error)
	Write(blockNumber int64, buffer []byte) error
	Len() (int64, error)
	BlockSize() int
	Close() error
}

type entry struct {
	block int64
	data  []byte
	dirty bool
}

// Cache is a bounded, ordered set of cached blocks with write-back and a
// LIFO free-list allocator. The store as a whole is single-threaded
// cooperative; the mutex only guards against accidental concurrent
// misuse, not for correctness under contention.
type Cache struct {
	mu sync.Mutex

	capacity int
	file     BlockFile
	entries  []*entry // index 0 = most recently written/inserted

	freeList  []int64 // LIFO stack of deallocated block numbers
	highWater int64   // largest block index ever allocated; -1 if none
}

// Open creates a cache of the given capacity over file, seeded with
// initialFreeList (bottom-to-top, i.e. initialFreeList[len-1] is the next
// block Allocate() would hand out if non-empty).
func Open(capacity int, file BlockFile, initialFreeList []int64) (*Cache, error) {
	length, err := file.Len()
	if err != nil {
		return nil, err
	}
	blockSize := int64(file.BlockSize())
	highWater := length/blockSize - 1

	freeList := make([]int64, len(initialFreeList))
	copy(freeList, initialFreeList)

	return &Cache{
		capacity:  capacity,
		file:      file,
		entries:   make([]*entry, 0, capacity),
		freeList:  freeList,
		highWater: highWater,
	}, nil
}

// find returns the index of the resident entry for block, or -1.
func (c *Cache) find(block int64) int {
	for i, e := range c.entries {
		if e.block == block {
			return i
		}
	}
	return -1
}

// Read returns the bytes for block, promoting it from the block file into
// the cache on a miss.
func (c *Cache) Read(block int64) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.find(block); i >= 0 {
		return c.entries[i].data, nil
	}

	data, err := c.file.Read(block)
	if err != nil {
		return nil, err
	}
	if len(data) < c.file.BlockSize() {
		// Past end-of-file: the caller must never rely on this content,
		// but it still needs a full-size buffer to decode against.
		full := make([]byte, c.file.BlockSize())
		copy(full, data)
		data = full
	}

	e := &entry{block: block, data: data, dirty: false}
	c.admit(e)
	return e.data, nil
}

// Write stores data for block, marking the entry dirty. It is admitted
// into the cache if not already resident.
func (c *Cache) Write(block int64, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)

	if i := c.find(block); i >= 0 {
		c.entries[i].data = buf
		c.entries[i].dirty = true
		return nil
	}

	c.admit(&entry{block: block, data: buf, dirty: true})
	return nil
}

// admit installs e at position 0, evicting per the admission policy if
// the cache is already at capacity. Caller holds c.mu.
func (c *Cache) admit(e *entry) {
	if len(c.entries) < c.capacity {
		c.entries = append(c.entries, nil)
		copy(c.entries[1:], c.entries[:len(c.entries)-1])
		c.entries[0] = e
		return
	}

	// Scan from the tail toward the head for the last clean entry.
	t := -1
	for i := len(c.entries) - 1; i >= 0; i-- {
		if !c.entries[i].dirty {
			t = i
			break
		}
	}

	if t >= 0 {
		// Shift entries 0..t-1 down by one, overwriting position t;
		// install the new entry at position 0.
		for i := t; i > 0; i-- {
			c.entries[i] = c.entries[i-1]
		}
		c.entries[0] = e
		return
	}

	// Every entry is dirty: flush the whole cache, drop the tail, shift
	// the remainder down by one, install the new entry at position 0.
	c.flushLocked()
	last := len(c.entries) - 1
	for i := last; i > 0; i-- {
		c.entries[i] = c.entries[i-1]
	}
	c.entries[0] = e
}

// Allocate returns a fresh block number: a popped free-list entry if one
// exists, else the next block past the high-water mark. It does not touch
// the cache; the caller is expected to Write the new block promptly.
func (c *Cache) Allocate() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n := len(c.freeList); n > 0 {
		b := c.freeList[n-1]
		c.freeList = c.freeList[:n-1]
		return b
	}

	c.highWater++
	return c.highWater
}

// Deallocate pushes block onto the free-list and, if it is resident,
// clears its dirty bit so its (now irrelevant) contents need not be
// persisted.
func (c *Cache) Deallocate(block int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.freeList = append(c.freeList, block)
	if i := c.find(block); i >= 0 {
		c.entries[i].dirty = false
	}
}

// FreeList returns a bottom-to-top copy of the current free-list stack,
// for header persistence.
func (c *Cache) FreeList() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]int64, len(c.freeList))
	copy(out, c.freeList)
	return out
}

// HighWater returns the largest block index ever allocated, or -1 if none.
func (c *Cache) HighWater() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.highWater
}

// Flush writes every dirty entry to the block file and clears its dirty
// bit.
func (c *Cache) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flushLocked()
}

func (c *Cache) flushLocked() error {
	for _, e := range c.entries {
		if !e.dirty {
			continue
		}
		if err := c.file.Write(e.block, e.data); err != nil {
			return err
		}
		e.dirty = false
	}
	return nil
}

// Close flushes the cache and closes the underlying block file.
func (c *Cache) Close() error {
	if err := c.Flush(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.file.Close()
}
