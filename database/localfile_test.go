package database

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func TestJSONFile_CreatesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "records.json")
	f, err := NewJSONFile[record](path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))

	records, err := f.Read()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestJSONFile_UpdatePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	f, err := NewJSONFile[record](path)
	require.NoError(t, err)

	require.NoError(t, f.Update(func(rs []record) ([]record, error) {
		return append(rs, record{ID: "a", Count: 1}), nil
	}))

	reopened, err := NewJSONFile[record](path)
	require.NoError(t, err)
	records, err := reopened.Read()
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: "a", Count: 1}}, records)
}

func TestJSONFile_FailedUpdateWritesNothing(t *testing.T) {
	f, err := NewJSONFile[record](filepath.Join(t.TempDir(), "records.json"))
	require.NoError(t, err)

	boom := errors.New("boom")
	err = f.Update(func(rs []record) ([]record, error) {
		return append(rs, record{ID: "x"}), boom
	})
	assert.ErrorIs(t, err, boom)

	records, err := f.Read()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestJSONFile_ConcurrentUpdatesAreSerialised(t *testing.T) {
	f, err := NewJSONFile[record](filepath.Join(t.TempDir(), "records.json"))
	require.NoError(t, err)
	require.NoError(t, f.Update(func(rs []record) ([]record, error) {
		return []record{{ID: "counter"}}, nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = f.Update(func(rs []record) ([]record, error) {
				rs[0].Count++
				return rs, nil
			})
		}()
	}
	wg.Wait()

	records, err := f.Read()
	require.NoError(t, err)
	assert.Equal(t, 25, records[0].Count)
}
