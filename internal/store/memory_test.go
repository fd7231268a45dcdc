package store

import (
	"testing"

	"github.com/jmylchreest/linkhist/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_ReadReturnsCopy(t *testing.T) {
	m := NewMemory(model.UrlRecord{ShortenedURL: "a"})

	got, err := m.Read()
	require.NoError(t, err)
	got[0].ShortenedURL = "changed"

	again, err := m.Read()
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].ShortenedURL)
}

func TestMemory_WriteAndClear(t *testing.T) {
	m := NewMemory()

	require.NoError(t, m.Write([]model.UrlRecord{{ShortenedURL: "a"}, {ShortenedURL: "b"}}))
	got, err := m.Read()
	require.NoError(t, err)
	assert.Len(t, got, 2)

	require.NoError(t, m.Clear())
	got, err = m.Read()
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 2, m.Writes())
}

func TestMemory_ImplementsStorage(t *testing.T) {
	var _ Storage = NewMemory()
	var _ Storage = (*KVFile)(nil)
}
