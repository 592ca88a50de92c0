package storage

import (
	"bytes"
)

// MemCachedStore is a wrapper around persistent store that caches all changes
// being made for them to be later flushed in one batch. Deleted keys are
// kept as nil values until persisted.
type MemCachedStore struct {
	MemoryStore

	// Persistent Store.
	ps Store
}

type (
	// KeyValue represents key-value pair.
	KeyValue struct {
		Key   []byte
		Value []byte
	}

	// KeyValueExists represents key-value pair with indicator whether the item
	// exists in the persistent storage.
	KeyValueExists struct {
		KeyValue

		Exists bool
	}

	// MemBatch represents a changeset to be persisted.
	MemBatch struct {
		Put     []KeyValueExists
		Deleted []KeyValueExists
	}
)

// NewMemCachedStore creates a new MemCachedStore object.
func NewMemCachedStore(lower Store) *MemCachedStore {
	return &MemCachedStore{
		MemoryStore: *NewMemoryStore(),
		ps:          lower,
	}
}

// Get implements the Store interface.
func (s *MemCachedStore) Get(key []byte) ([]byte, error) {
	s.mut.RLock()
	defer s.mut.RUnlock()
	if val, ok := s.mem[string(key)]; ok {
		if val == nil {
			return nil, ErrKeyNotFound
		}
		return val, nil
	}
	return s.ps.Get(key)
}

// Put puts new KV pair into the store.
func (s *MemCachedStore) Put(key []byte, value []byte) {
	newKey := string(key)
	vcopy := bytes.Clone(value)
	if vcopy == nil {
		vcopy = []byte{}
	}
	s.mut.Lock()
	s.mem[newKey] = vcopy
	s.mut.Unlock()
}

// Delete drops KV pair from the store. Never returns an error.
func (s *MemCachedStore) Delete(key []byte) {
	newKey := string(key)
	s.mut.Lock()
	s.mem[newKey] = nil
	s.mut.Unlock()
}

// PutChangeSet implements the Store interface. Deletions are cached as nil
// values as well. Never returns an error.
func (s *MemCachedStore) PutChangeSet(puts map[string][]byte) error {
	s.mut.Lock()
	for k, v := range puts {
		s.mem[k] = v
	}
	s.mut.Unlock()
	return nil
}

// GetBatch returns currently accumulated changeset.
func (s *MemCachedStore) GetBatch() *MemBatch {
	s.mut.RLock()
	defer s.mut.RUnlock()

	var b MemBatch

	for k, v := range s.mem {
		key := []byte(k)
		_, err := s.ps.Get(key)
		if v == nil {
			b.Deleted = append(b.Deleted, KeyValueExists{KeyValue: KeyValue{Key: key}, Exists: err == nil})
		} else {
			b.Put = append(b.Put, KeyValueExists{KeyValue: KeyValue{Key: key, Value: v}, Exists: err == nil})
		}
	}
	return &b
}

// Seek implements the Store interface. Cached changes shadow the items of the
// persistent store.
func (s *MemCachedStore) Seek(rng SeekRange, f func(k, v []byte) bool) {
	s.mut.RLock()
	memRes := s.MemoryStore.collect(rng, true)
	s.mut.RUnlock()

	var (
		cmp  = getCmpFunc(rng.Backwards)
		i    int
		done bool
		emit = func(kv KeyValue) bool {
			if kv.Value == nil {
				return true
			}
			return f(kv.Key, kv.Value)
		}
	)
	s.ps.Seek(rng, func(k, v []byte) bool {
		for ; i < len(memRes); i++ {
			c := cmp(memRes[i].Key, k)
			if c > 0 {
				break
			}
			if !emit(memRes[i]) {
				done = true
				return false
			}
			if c == 0 {
				i++
				return true
			}
		}
		if !f(k, v) {
			done = true
			return false
		}
		return true
	})
	if done {
		return
	}
	for ; i < len(memRes); i++ {
		if !emit(memRes[i]) {
			return
		}
	}
}

// Persist flushes all the changes made into the (supposedly) persistent
// underlying store. It returns the number of keys flushed.
func (s *MemCachedStore) Persist() (int, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	keys := len(s.mem)
	if keys == 0 {
		return 0, nil
	}
	err := s.ps.PutChangeSet(s.mem)
	if err != nil {
		return 0, err
	}
	s.mem = make(map[string][]byte)
	return keys, nil
}

// Close implements Store interface, clears up memory and closes the lower layer
// Store.
func (s *MemCachedStore) Close() error {
	// It's always successful.
	_ = s.MemoryStore.Close()
	return s.ps.Close()
}
