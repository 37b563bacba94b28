package ports

// Settings is a key/value store with typed defaults.
type Settings interface {
	// Get returns the stored value for key, or def when the key is absent.
	Get(key string, def any) any

	// Set stores value under key.
	Set(key string, value any) error

	// Keys returns all stored keys in sorted order.
	Keys() []string
}

// Viewer opens a file with the platform's default application.
type Viewer interface {
	Open(path string) error
}

// RunLock guards against concurrent runs across processes.
type RunLock interface {
	TryLock() (bool, error)
	Unlock() error
}
