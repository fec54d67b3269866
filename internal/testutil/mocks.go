package testutil

import (
	"sync"

	"cft/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// HasLevel reports whether any recorded entry carries the given level.
func (m *MockLogger) HasLevel(level string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Logs {
		if e.Level == level {
			return true
		}
	}
	return false
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu         sync.Mutex
	Data       map[string][]byte
	PurgeCalls int
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Purge() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data = make(map[string][]byte)
	m.PurgeCalls++
}

// MockStorage implements interfaces.StorageInterface in memory, with
// per-key save-failure injection.
type MockStorage struct {
	mu        sync.Mutex
	Data      map[string][]byte
	FailSaves map[string]error
	SaveCalls int
}

func NewMockStorage() *MockStorage {
	return &MockStorage{
		Data:      make(map[string][]byte),
		FailSaves: make(map[string]error),
	}
}

func (m *MockStorage) Load(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok, nil
}

func (m *MockStorage) Save(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if err, ok := m.FailSaves[key]; ok {
		return err
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.Data[key] = stored
	return nil
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}
