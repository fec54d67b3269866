package interfaces

// CompressorInterface wraps the on-disk compression codec.
type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}

// StorageInterface is a keyed blob store. Load reports absence through the
// second return value rather than an error.
type StorageInterface interface {
	Load(key string) ([]byte, bool, error)
	Save(key string, data []byte) error
}
