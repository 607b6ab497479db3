package coordinator

// Coordinator defines ZooKeeper operations for cross-runtime coordination
type Coordinator interface {
	// CreateNode creates a persistent node, creating parents as needed.
	// Creating an existing node is not an error.
	CreateNode(path string, data []byte) error

	// CreateEphemeralNode creates a node tied to the current session; it
	// disappears if the session dies without a clean Withdraw.
	CreateEphemeralNode(path string, data []byte) error

	GetNode(path string) ([]byte, error)
	NodeExists(path string) (bool, error)

	// DeleteNode removes a node. Deleting an absent node is not an error.
	DeleteNode(path string) error

	Close() error
}
