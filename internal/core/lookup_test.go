package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/linkhist/internal/model"
)

func displayRecords() []model.UrlRecord {
	return []model.UrlRecord{
		{ShortenedURL: "c3", LongURL: "https://three.example"},
		{ShortenedURL: "b2", LongURL: "https://two.example"},
		{ShortenedURL: "a1", LongURL: "https://one.example"},
		{ShortenedURL: "42", LongURL: "https://numeric.example"},
	}
}

func TestLookupByToken(t *testing.T) {
	records := displayRecords()

	t.Run("found", func(t *testing.T) {
		result := LookupByToken(records, "b2")
		assert.NotNil(t, result)
		assert.Equal(t, "https://two.example", result.LongURL)
	})

	t.Run("not found", func(t *testing.T) {
		assert.Nil(t, LookupByToken(records, "notexist"))
	})

	t.Run("empty slice", func(t *testing.T) {
		assert.Nil(t, LookupByToken(nil, "b2"))
	})
}

func TestLookupByIndex(t *testing.T) {
	records := displayRecords()

	t.Run("valid index 1", func(t *testing.T) {
		result := LookupByIndex(records, 1)
		assert.NotNil(t, result)
		assert.Equal(t, "c3", result.ShortenedURL)
	})

	t.Run("index 0 out of bounds", func(t *testing.T) {
		assert.Nil(t, LookupByIndex(records, 0))
	})

	t.Run("negative index", func(t *testing.T) {
		assert.Nil(t, LookupByIndex(records, -1))
	})

	t.Run("past the end", func(t *testing.T) {
		assert.Nil(t, LookupByIndex(records, 5))
	})
}

func TestResolveToken(t *testing.T) {
	records := displayRecords()

	tests := []struct {
		arg  string
		want string
	}{
		{"b2", "b2"},
		{" a1 ", "a1"},
		{"1", "c3"},
		{"3", "a1"},
		{"42", "42"}, // known token wins over index
		{"99", "99"},
		{"missing", "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveToken(records, tt.arg))
		})
	}
}

func TestSearch(t *testing.T) {
	records := displayRecords()

	tests := []struct {
		name  string
		term  string
		limit int
		want  []string
	}{
		{"all", "", 0, []string{"c3", "b2", "a1", "42"}},
		{"limit keeps order", "", 2, []string{"c3", "b2"}},
		{"case insensitive url", "TWO", 0, []string{"b2"}},
		{"token", "a1", 0, []string{"a1"}},
		{"no match", "zzz", 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(records, tt.term, tt.limit)
			tokens := make([]string, 0, len(got))
			for _, r := range got {
				tokens = append(tokens, r.ShortenedURL)
			}
			assert.Equal(t, tt.want, tokens)
		})
	}
}
