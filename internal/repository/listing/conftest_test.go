package listing

import (
	"context"

	"github.com/staylens/staylens/internal/db"
)

// fakeStore is an in-memory stand-in for the redis store.
type fakeStore struct {
	hashes  map[string]map[string]string
	sets    map[string]map[string]bool
	indexes map[string]bool

	knnResult  *db.SearchResult
	knnErr     error
	textResult *db.SearchResult
	textErr    error
	countErr   error

	lastKNN  *db.KNNQuery
	lastText *db.TextQuery
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		hashes:  map[string]map[string]string{},
		sets:    map[string]map[string]bool{},
		indexes: map[string]bool{},
	}
}

func (f *fakeStore) HSet(_ context.Context, key string, fields map[string]string) error {
	cp := make(map[string]string, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	f.hashes[key] = cp
	return nil
}

func (f *fakeStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	for _, item := range items {
		if err := f.HSet(ctx, item.Key, item.Fields); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	return f.hashes[key], nil
}

func (f *fakeStore) SearchKNN(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	f.lastKNN = q
	if f.knnErr != nil {
		return nil, f.knnErr
	}
	if f.knnResult == nil {
		return &db.SearchResult{}, nil
	}
	return f.knnResult, nil
}

func (f *fakeStore) SearchText(_ context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	f.lastText = q
	if f.textErr != nil {
		return nil, f.textErr
	}
	if f.textResult == nil {
		return &db.SearchResult{}, nil
	}
	return f.textResult, nil
}

func (f *fakeStore) SearchCount(_ context.Context, index, query string) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	n := 0
	for key := range f.hashes {
		if len(key) > len(keyPrefix) && key[:len(keyPrefix)] == keyPrefix {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) CreateIndex(_ context.Context, def *db.IndexDefinition) error {
	if f.indexes[def.Name] {
		return db.ErrIndexExists
	}
	f.indexes[def.Name] = true
	return nil
}

func (f *fakeStore) IndexExists(_ context.Context, name string) (bool, error) {
	return f.indexes[name], nil
}

func (f *fakeStore) SAdd(_ context.Context, key string, members ...string) error {
	if f.sets[key] == nil {
		f.sets[key] = map[string]bool{}
	}
	for _, m := range members {
		f.sets[key][m] = true
	}
	return nil
}

func (f *fakeStore) SRem(_ context.Context, key string, members ...string) error {
	for _, m := range members {
		delete(f.sets[key], m)
	}
	return nil
}

func (f *fakeStore) SMembers(_ context.Context, key string) ([]string, error) {
	members := make([]string, 0, len(f.sets[key]))
	for m := range f.sets[key] {
		members = append(members, m)
	}
	return members, nil
}
