package storage

import (
	"bytes"
	"slices"
	"strings"
	"sync"
)

// MemoryStore is an in-memory implementation of a Store, mainly
// used for testing. Do not use MemoryStore in production.
type MemoryStore struct {
	mut sync.RWMutex
	mem map[string][]byte
}

// NewMemoryStore creates a new MemoryStore object.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mem: make(map[string][]byte),
	}
}

// Get implements the Store interface.
func (s *MemoryStore) Get(key []byte) ([]byte, error) {
	s.mut.RLock()
	defer s.mut.RUnlock()
	if val, ok := s.mem[string(key)]; ok && val != nil {
		return val, nil
	}
	return nil, ErrKeyNotFound
}

// PutChangeSet implements the Store interface. Never returns an error.
func (s *MemoryStore) PutChangeSet(puts map[string][]byte) error {
	s.mut.Lock()
	s.putChangeSet(puts)
	s.mut.Unlock()
	return nil
}

// putChangeSet is an unlocked version of PutChangeSet.
func (s *MemoryStore) putChangeSet(puts map[string][]byte) {
	for k, v := range puts {
		if v != nil {
			s.mem[k] = v
		} else {
			delete(s.mem, k)
		}
	}
}

// Seek implements the Store interface.
func (s *MemoryStore) Seek(rng SeekRange, f func(k, v []byte) bool) {
	s.mut.RLock()
	s.seek(rng, f)
	s.mut.RUnlock()
}

// seek is an internal unlocked implementation of Seek. Backwards seeking
// from some point is supported with corresponding SeekRange field set.
func (s *MemoryStore) seek(rng SeekRange, f func(k, v []byte) bool) {
	memList := s.collect(rng, false)
	for _, kv := range memList {
		if !f(kv.Key, kv.Value) {
			break
		}
	}
}

// collect returns sorted items matching rng, nil values are included only
// if withDeleted is set.
func (s *MemoryStore) collect(rng SeekRange, withDeleted bool) []KeyValue {
	sPrefix := string(rng.Prefix)
	lPrefix := len(sPrefix)
	sStart := string(rng.Start)
	lStart := len(sStart)
	var memList []KeyValue

	isKeyOK := func(key string) bool {
		return strings.HasPrefix(key, sPrefix) && (lStart == 0 || strings.Compare(key[lPrefix:], sStart) >= 0)
	}
	if rng.Backwards {
		isKeyOK = func(key string) bool {
			return strings.HasPrefix(key, sPrefix) && (lStart == 0 || strings.Compare(key[lPrefix:], sStart) <= 0)
		}
	}
	for k, v := range s.mem {
		if (v != nil || withDeleted) && isKeyOK(k) {
			memList = append(memList, KeyValue{
				Key:   []byte(k),
				Value: v,
			})
		}
	}
	cmp := getCmpFunc(rng.Backwards)
	slices.SortFunc(memList, func(a, b KeyValue) int {
		return cmp(a.Key, b.Key)
	})
	return memList
}

func getCmpFunc(backwards bool) func(a, b []byte) int {
	if !backwards {
		return bytes.Compare
	}
	return func(a, b []byte) int {
		return -bytes.Compare(a, b)
	}
}

// Close implements Store interface and clears up memory. Never returns an
// error.
func (s *MemoryStore) Close() error {
	s.mut.Lock()
	s.mem = nil
	s.mut.Unlock()
	return nil
}
