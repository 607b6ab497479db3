package memory

import (
	"fmt"
	"sync"

	coordinator "lifeweeks/internal/coordinator/iface"
)

// memoryCoordinator is an in-process Coordinator for local runs and tests.
// Ephemeral nodes vanish on Close, mirroring a ZooKeeper session ending.
type memoryCoordinator struct {
	mu        sync.Mutex
	nodes     map[string][]byte
	ephemeral map[string]bool
	closed    bool
}

// NewMemoryCoordinator creates an in-memory coordinator
func NewMemoryCoordinator() coordinator.Coordinator {
	return &memoryCoordinator{
		nodes:     make(map[string][]byte),
		ephemeral: make(map[string]bool),
	}
}

func (c *memoryCoordinator) CreateNode(path string, data []byte) error {
	return c.create(path, data, false)
}

func (c *memoryCoordinator) CreateEphemeralNode(path string, data []byte) error {
	return c.create(path, data, true)
}

func (c *memoryCoordinator) create(path string, data []byte, ephemeral bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("coordinator is closed")
	}
	if _, ok := c.nodes[path]; ok {
		return nil
	}
	c.nodes[path] = data
	c.ephemeral[path] = ephemeral
	return nil
}

func (c *memoryCoordinator) GetNode(path string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.nodes[path]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", path)
	}
	return data, nil
}

func (c *memoryCoordinator) NodeExists(path string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.nodes[path]
	return ok, nil
}

func (c *memoryCoordinator) DeleteNode(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.nodes, path)
	delete(c.ephemeral, path)
	return nil
}

func (c *memoryCoordinator) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for path, eph := range c.ephemeral {
		if eph {
			delete(c.nodes, path)
			delete(c.ephemeral, path)
		}
	}
	c.closed = true
	return nil
}
