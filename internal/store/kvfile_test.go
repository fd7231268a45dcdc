package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jmylchreest/linkhist/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKVFile(t *testing.T) *KVFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), "localstorage.json")
	s, err := NewKVFile(path, DefaultKey, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewKVFile_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "localstorage.json")

	s, err := NewKVFile(path, "", nil)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, DefaultKey, s.Key())
}

func TestKVFile_ReadMissingFile(t *testing.T) {
	s := newTestKVFile(t)

	records, err := s.Read()
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestKVFile_WriteAndRead(t *testing.T) {
	s := newTestKVFile(t)

	want := []model.UrlRecord{
		{ShortenedURL: "first", LongURL: "https://one.example"},
		{ShortenedURL: "second", LongURL: "https://two.example"},
	}
	require.NoError(t, s.Write(want))

	got, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// The history key holds the serialized array as a string value.
	raw, ok, err := s.Get(DefaultKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"shortenedUrl":"first","longUrl":"https://one.example"},{"shortenedUrl":"second","longUrl":"https://two.example"}]`, raw)
}

func TestKVFile_WriteNilStoresEmptyArray(t *testing.T) {
	s := newTestKVFile(t)

	require.NoError(t, s.Write(nil))

	raw, ok, err := s.Get(DefaultKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", raw)
}

func TestKVFile_WritePreservesOtherKeys(t *testing.T) {
	s := newTestKVFile(t)

	require.NoError(t, s.Set("theme", "dark"))
	require.NoError(t, s.Write([]model.UrlRecord{{ShortenedURL: "a"}}))

	v, ok, err := s.Get("theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
}

func TestKVFile_ClearWipesAllKeys(t *testing.T) {
	s := newTestKVFile(t)

	require.NoError(t, s.Set("theme", "dark"))
	require.NoError(t, s.Write([]model.UrlRecord{{ShortenedURL: "a"}}))

	require.NoError(t, s.Clear())

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)

	records, err := s.Read()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestKVFile_UnparseableValueIsEmpty(t *testing.T) {
	s := newTestKVFile(t)

	require.NoError(t, s.Set(DefaultKey, "{not json"))

	records, err := s.Read()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestKVFile_CorruptedFile(t *testing.T) {
	s := newTestKVFile(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("garbage"), 0600))

	records, err := s.Read()
	require.NoError(t, err)
	assert.Empty(t, records)

	// Writing moves the broken file aside and starts fresh.
	require.NoError(t, s.Write([]model.UrlRecord{{ShortenedURL: "a"}}))

	records, err = s.Read()
	require.NoError(t, err)
	assert.Len(t, records, 1)

	matches, _ := filepath.Glob(s.Path() + ".corrupted.*")
	require.Len(t, matches, 1)

	raw, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Equal(t, "garbage", string(raw))
}

func TestKVFile_ReadsBrowserStyleBlob(t *testing.T) {
	s := newTestKVFile(t)
	content := `{"urlList":"[{\"shortenedUrl\":\"abc\",\"longUrl\":\"https://example.com\"}]"}`
	require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0600))

	records, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, []model.UrlRecord{{ShortenedURL: "abc", LongURL: "https://example.com"}}, records)
}

func TestKVFile_Keys(t *testing.T) {
	s := newTestKVFile(t)

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, s.Set("b", "2"))
	require.NoError(t, s.Set("a", "1"))

	keys, err = s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestKVFile_UnreadableFileIsNotQuarantined(t *testing.T) {
	s := newTestKVFile(t)
	// A directory in place of the file fails to read but is not corrupt.
	require.NoError(t, os.Mkdir(s.Path(), 0755))

	_, err := s.Read()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCorruptStore)

	err = s.Write([]model.UrlRecord{{ShortenedURL: "a"}})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCorruptStore)

	info, statErr := os.Stat(s.Path())
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())

	matches, _ := filepath.Glob(s.Path() + ".corrupted.*")
	assert.Empty(t, matches)
}

func TestKVFile_FilePermissions(t *testing.T) {
	s := newTestKVFile(t)
	require.NoError(t, s.Write([]model.UrlRecord{{ShortenedURL: "a"}}))

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// No temp files are left behind.
	matches, _ := filepath.Glob(s.Path() + ".tmp-*")
	assert.Empty(t, matches)
}

func TestKVFile_Closed(t *testing.T) {
	s := newTestKVFile(t)
	require.NoError(t, s.Close())

	_, err := s.Read()
	assert.ErrorIs(t, err, ErrStoreClosed)
	assert.ErrorIs(t, s.Write(nil), ErrStoreClosed)
	assert.ErrorIs(t, s.Clear(), ErrStoreClosed)
}

func TestKVFile_ReopenSeesData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "localstorage.json")

	s1, err := NewKVFile(path, DefaultKey, nil)
	require.NoError(t, err)
	require.NoError(t, s1.Write([]model.UrlRecord{{ShortenedURL: "keep"}}))
	s1.Close()

	s2, err := NewKVFile(path, DefaultKey, nil)
	require.NoError(t, err)
	defer s2.Close()

	records, err := s2.Read()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "keep", records[0].ShortenedURL)
}
