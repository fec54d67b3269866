package persistence

import (
	"cft/internal/persistence/interfaces"
	"cft/internal/structures"
)

// NewStorage builds the file store on the configured data directory.
func NewStorage(conf *structures.Config, compressor interfaces.CompressorInterface) (interfaces.StorageInterface, error) {
	return NewFileStorage(conf.Persistence.Dir, compressor)
}
