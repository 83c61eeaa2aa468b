package store

import (
	"context"
	"sync"
)

type Memory struct {
	mu       sync.RWMutex
	docs     map[string][]byte
	putErrs  map[string]error
	putCount map[string]int
}

func NewMemory() *Memory {
	return &Memory{
		docs:     make(map[string][]byte),
		putErrs:  make(map[string]error),
		putCount: make(map[string]int),
	}
}

func (m *Memory) Get(ctx context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[name]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), doc...), nil
}

func (m *Memory) Put(ctx context.Context, name string, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.putErrs[name]; err != nil {
		return err
	}
	m.docs[name] = append([]byte(nil), doc...)
	m.putCount[name]++
	return nil
}

func (m *Memory) Close() error {
	return nil
}

// FailPuts makes every subsequent Put to name return err; nil clears it.
func (m *Memory) FailPuts(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putErrs[name] = err
}

func (m *Memory) Puts(name string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.putCount[name]
}
