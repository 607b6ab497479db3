package zk

import (
	"fmt"
	"strings"
	"time"

	coordinator "lifeweeks/internal/coordinator/iface"
	"lifeweeks/internal/logger"

	"github.com/go-zookeeper/zk"
)

type zkCoordinator struct {
	conn   *zk.Conn
	logger logger.Logger
}

// NewZKCoordinator creates a new ZooKeeper coordinator
func NewZKCoordinator(servers []string, sessionTimeout time.Duration, log logger.Logger) (coordinator.Coordinator, error) {
	conn, _, err := zk.Connect(servers, sessionTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to zookeeper: %w", err)
	}

	log.Info("connected to zookeeper",
		logger.Any("servers", servers),
	)

	return &zkCoordinator{
		conn:   conn,
		logger: log.With(logger.String("component", "zk_coordinator")),
	}, nil
}

func (c *zkCoordinator) CreateNode(path string, data []byte) error {
	return c.create(path, data, 0)
}

func (c *zkCoordinator) CreateEphemeralNode(path string, data []byte) error {
	return c.create(path, data, zk.FlagEphemeral)
}

func (c *zkCoordinator) create(path string, data []byte, flags int32) error {
	c.logger.Debug("creating zk node",
		logger.String("path", path),
	)

	// Create parent directories if they don't exist
	if err := c.ensureParentPath(path); err != nil {
		return err
	}

	_, err := c.conn.Create(path, data, flags, zk.WorldACL(zk.PermAll))
	if err != nil {
		if err == zk.ErrNodeExists {
			c.logger.Warn("node already exists",
				logger.String("path", path),
			)
			return nil
		}
		return fmt.Errorf("failed to create node: %w", err)
	}

	c.logger.Info("created zk node",
		logger.String("path", path),
	)

	return nil
}

func (c *zkCoordinator) GetNode(path string) ([]byte, error) {
	c.logger.Debug("getting zk node",
		logger.String("path", path),
	)

	data, _, err := c.conn.Get(path)
	if err != nil {
		if err == zk.ErrNoNode {
			return nil, fmt.Errorf("node not found: %s", path)
		}
		return nil, fmt.Errorf("failed to get node: %w", err)
	}

	return data, nil
}

func (c *zkCoordinator) NodeExists(path string) (bool, error) {
	exists, _, err := c.conn.Exists(path)
	if err != nil {
		return false, fmt.Errorf("failed to check node: %w", err)
	}
	return exists, nil
}

func (c *zkCoordinator) DeleteNode(path string) error {
	c.logger.Debug("deleting zk node",
		logger.String("path", path),
	)

	err := c.conn.Delete(path, -1)
	if err != nil {
		if err == zk.ErrNoNode {
			return nil
		}
		return fmt.Errorf("failed to delete node: %w", err)
	}

	c.logger.Info("deleted zk node",
		logger.String("path", path),
	)

	return nil
}

func (c *zkCoordinator) Close() error {
	c.conn.Close()
	return nil
}

// ensureParentPath creates each missing ancestor of path as a persistent node
func (c *zkCoordinator) ensureParentPath(path string) error {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) <= 1 {
		return nil
	}

	current := ""
	for _, part := range parts[:len(parts)-1] {
		current = current + "/" + part
		_, err := c.conn.Create(current, nil, 0, zk.WorldACL(zk.PermAll))
		if err != nil && err != zk.ErrNodeExists {
			return fmt.Errorf("failed to create parent node %s: %w", current, err)
		}
	}

	return nil
}
