package storage

import (
	"context"
	"sync"
)

// Object is an uploaded report held by Memory
type Object struct {
	ContentType string
	Data        []byte
}

// Memory keeps uploads in process. It backs tests and dry runs.
type Memory struct {
	mu      sync.Mutex
	objects map[string]Object
}

// NewMemory creates an empty in-process uploader
func NewMemory() *Memory {
	return &Memory{objects: make(map[string]Object)}
}

// Upload stores a copy of data under name
func (m *Memory) Upload(_ context.Context, name, contentType string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[name] = Object{
		ContentType: contentType,
		Data:        append([]byte(nil), data...),
	}
	return "memory://" + name, nil
}

// Get returns an uploaded object
func (m *Memory) Get(name string) (Object, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj, ok := m.objects[name]
	return obj, ok
}

// Len returns the number of stored objects
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

func (m *Memory) Close() error {
	return nil
}
