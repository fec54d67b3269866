// Package persistence is the durability layer: compressed JSON snapshots
// written atomically to a keyed file store, with a primary/backup pair and a
// store manager that stamps and verifies snapshot envelopes.
package persistence

import (
	"os"
	"path/filepath"

	"cft/internal/persistence/interfaces"
)

// FileStorage keeps each key as a zstd-compressed file <dir>/<key>.dat.
// Writes go through a temp file with fsync then rename, so a crash mid-save
// leaves the previous contents intact.
type FileStorage struct {
	dir        string
	compressor interfaces.CompressorInterface
}

func NewFileStorage(dir string, compressor interfaces.CompressorInterface) (interfaces.StorageInterface, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStorage{dir: dir, compressor: compressor}, nil
}

func (fs *FileStorage) path(key string) string {
	return filepath.Join(fs.dir, key+".dat")
}

func (fs *FileStorage) Load(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(fs.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	decompressed, err := fs.compressor.Decompress(data)
	if err != nil {
		return nil, true, err
	}
	return decompressed, true, nil
}

func (fs *FileStorage) Save(key string, data []byte) error {
	compressed, err := fs.compressor.Compress(data)
	if err != nil {
		return err
	}

	fileName := fs.path(key)
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(compressed)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}
