package docstore

import (
	"bytes"
	"context"
	"sync"
)

// Memory is an in-process Store and Watcher.
type Memory struct {
	mu       sync.Mutex
	docs     map[string][]byte
	watchers map[string]map[int]func([]byte)
	nextID   int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		docs:     make(map[string][]byte),
		watchers: make(map[string]map[int]func([]byte)),
	}
}

// Get returns a copy of the document under key.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(doc), nil
}

// Put stores value and notifies the watchers of key.
func (m *Memory) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	m.docs[key] = bytes.Clone(value)
	fns := make([]func([]byte), 0, len(m.watchers[key]))
	for _, fn := range m.watchers[key] {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		go fn(bytes.Clone(value))
	}
	return nil
}

// Watch registers fn for key until ctx is done.
func (m *Memory) Watch(ctx context.Context, key string, fn func([]byte)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	if m.watchers[key] == nil {
		m.watchers[key] = make(map[int]func([]byte))
	}
	m.watchers[key][id] = fn
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.watchers[key], id)
		m.mu.Unlock()
	}()
	return nil
}

// Len returns how many documents are stored.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}
