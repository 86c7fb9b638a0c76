package logging

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_RecordsLevels(t *testing.T) {
	m := NewMockLogger()
	m.Debug("d")
	m.Info("i")
	m.Warn("w")
	m.Error("e")
	m.Fatalf("f %d", 1)

	entries := m.GetEntries()
	require.Len(t, entries, 5)
	assert.True(t, m.HasEntry("FATAL", "f 1"))
	assert.Len(t, m.GetEntriesByLevel("WARN"), 1)
}

func TestMockLogger_ChildSharesSink(t *testing.T) {
	m := NewMockLogger()
	child := m.WithField(FieldStrategy, "streams").WithError(errors.New("boom"))

	child.Warn("strategy failed", Field{Key: FieldReason, Value: "panic"})

	entries := m.GetEntriesByLevel("WARN")
	require.Len(t, entries, 1)
	assert.EqualError(t, entries[0].Error, "boom")

	v, ok := entries[0].FieldValue(FieldStrategy)
	require.True(t, ok)
	assert.Equal(t, "streams", v)
	v, ok = entries[0].FieldValue(FieldReason)
	require.True(t, ok)
	assert.Equal(t, "panic", v)
}

func TestMockLogger_ZeroValueUsable(t *testing.T) {
	var m MockLogger
	m.Info("hello")
	assert.True(t, m.HasEntry("INFO", "hello"))

	m.Clear()
	assert.Empty(t, m.GetEntries())
}

func TestMockLogger_Concurrent(t *testing.T) {
	m := NewMockLogger()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.WithField(FieldFile, "a.pdf").Info("done")
		}()
	}
	wg.Wait()
	assert.Len(t, m.GetEntries(), 16)
}
