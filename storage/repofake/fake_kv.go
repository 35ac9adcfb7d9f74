package fakekv

import (
	"context"
	"sync"
)

// FakeKVRepo is an in-memory storage.Repo. Set FailWrites to make every write fail, which lets
// tests prove that nothing is committed when persistence breaks.
type FakeKVRepo struct {
	entries    map[string]string
	lock       sync.RWMutex
	FailWrites error
}

func NewFakeKVRepo() *FakeKVRepo {
	return &FakeKVRepo{entries: make(map[string]string)}
}

func (r *FakeKVRepo) MultiGet(_ context.Context, keys ...string) (map[string]string, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := r.entries[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (r *FakeKVRepo) MultiSet(_ context.Context, pairs map[string]string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.FailWrites != nil {
		return r.FailWrites
	}
	for k, v := range pairs {
		r.entries[k] = v
	}
	return nil
}

func (r *FakeKVRepo) MultiRemove(_ context.Context, keys ...string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.FailWrites != nil {
		return r.FailWrites
	}
	for _, k := range keys {
		delete(r.entries, k)
	}
	return nil
}

func (r *FakeKVRepo) Close() error { return nil }

// Len reports how many entries are stored.
func (r *FakeKVRepo) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.entries)
}
