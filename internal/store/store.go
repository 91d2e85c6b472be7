package store

// Store is the capability both storage backends provide: append one
// encrypted token, read all of them back in insertion order.
type Store interface {
	// Append persists one encrypted token.
	Append(token string) error
	// ReadAll returns every stored token in insertion order. It is
	// repeatable.
	ReadAll() ([]string, error)
	// Close releases any underlying resources.
	Close() error
}
