package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cft/internal/testutil"
)

func TestZstdCompressor_Roundtrip(t *testing.T) {
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	defer comp.Close()

	payload := []byte(`{"donations":[{"id":"GP1700000000000ABC","amount":500}]}`)
	compressed, err := comp.Compress(payload)
	require.NoError(t, err)

	restored, err := comp.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, payload, restored)
}

func TestZstdCompressor_DecompressGarbage(t *testing.T) {
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	defer comp.Close()

	_, err = comp.Decompress([]byte("not zstd data"))
	assert.Error(t, err)
}

func TestFileStorage_SaveAndLoad(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir(), &testutil.MockCompressor{})
	require.NoError(t, err)

	require.NoError(t, fs.Save("snapshot", []byte("hello")))

	data, found, err := fs.Load("snapshot")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("hello"), data)
}

func TestFileStorage_AbsentKey(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir(), &testutil.MockCompressor{})
	require.NoError(t, err)

	_, found, err := fs.Load("missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStorage_AtomicWriteLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStorage(dir, &testutil.MockCompressor{})
	require.NoError(t, err)

	require.NoError(t, fs.Save("snapshot", []byte("state")))

	_, err = os.Stat(filepath.Join(dir, "snapshot.dat"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "snapshot.dat.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStorage_OverwriteReplacesContent(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir(), &testutil.MockCompressor{})
	require.NoError(t, err)

	require.NoError(t, fs.Save("snapshot", []byte("first")))
	require.NoError(t, fs.Save("snapshot", []byte("second")))

	data, _, err := fs.Load("snapshot")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}

func TestFileStorage_RealCompressorRoundtrip(t *testing.T) {
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	defer comp.Close()

	fs, err := NewFileStorage(t.TempDir(), comp)
	require.NoError(t, err)

	payload := []byte(`{"version":"1.0.0","donations":[],"expenses":[]}`)
	require.NoError(t, fs.Save("backup", payload))

	data, found, err := fs.Load("backup")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload, data)
}

func TestFileStorage_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := NewFileStorage(dir, &testutil.MockCompressor{})
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
