package db

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/gophertree/flrafbtree/btree"
)

// Options configures a Store. Order, NodeSize, and CacheSize are used
// only when the store is created fresh; a reopen takes them from the
// header sidecar.
type Options struct {
	DataDir   string
	Name      string // block file stem; "<Name>.flraf" and "<Name>.hdr" under DataDir
	Order     int
	NodeSize  int
	CacheSize int
}

// Store wraps a btree.Tree with an open/close/reopen lifecycle: Close
// flushes and releases the tree, and the next operation transparently
// reopens it from the header sidecar. The front-end's "close" command is
// built on exactly this.
type Store struct {
	mu   sync.Mutex
	opts Options
	tree *btree.Tree // nil while closed
}

// BlockFilePath returns the path of the store's block file.
func (s *Store) BlockFilePath() string {
	return filepath.Join(s.opts.DataDir, s.opts.Name+".flraf")
}

// HeaderPath returns the path of the store's header sidecar.
func (s *Store) HeaderPath() string {
	return filepath.Join(s.opts.DataDir, s.opts.Name+".hdr")
}

// Open opens the store, creating a fresh tree if no header sidecar
// exists yet.
func Open(opts Options) (*Store, error) {
	s := &Store{opts: opts}
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}
	return s, nil
}

// ensureOpen opens the underlying tree if it is currently closed.
// Caller holds s.mu (or is Open, before the store escapes).
func (s *Store) ensureOpen() error {
	if s.tree != nil {
		return nil
	}
	if _, err := os.Stat(s.HeaderPath()); err == nil {
		t, err := btree.OpenHeader(s.HeaderPath(), s.opts.CacheSize, nil)
		if err != nil {
			return err
		}
		s.tree = t
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	t, err := btree.OpenFresh(s.opts.Order, s.opts.NodeSize, s.BlockFilePath(), s.opts.CacheSize, nil)
	if err != nil {
		return err
	}
	s.tree = t
	return nil
}

// Add inserts key, reporting whether it was newly inserted.
func (s *Store) Add(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureOpen(); err != nil {
		return false, err
	}
	return s.tree.Add(key)
}

// Remove deletes key, reporting whether it was present.
func (s *Store) Remove(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureOpen(); err != nil {
		return false, err
	}
	return s.tree.Remove(key)
}

// Contains reports whether key is present.
func (s *Store) Contains(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureOpen(); err != nil {
		return false, err
	}
	return s.tree.Contains(key)
}

// IsEmpty reports whether the store holds no keys.
func (s *Store) IsEmpty() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureOpen(); err != nil {
		return false, err
	}
	return s.tree.IsEmpty(), nil
}

// SizeInBytes returns the tree's on-disk footprint.
func (s *Store) SizeInBytes() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureOpen(); err != nil {
		return 0, err
	}
	return s.tree.SizeInBytes(), nil
}

// Close flushes and closes the underlying tree. The store itself stays
// usable: the next operation reopens the tree from the header sidecar.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tree == nil {
		return errors.New("db: store already closed")
	}
	err := s.tree.Close()
	s.tree = nil
	return err
}
