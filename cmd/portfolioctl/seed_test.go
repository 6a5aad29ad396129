package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"portfolio_cms/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImporter struct {
	name      string
	imported  []json.RawMessage
	purged    int
	importErr error
}

func (f *fakeImporter) CollectionName() string { return f.name }
func (f *fakeImporter) Import(ctx context.Context, items []json.RawMessage) (int, error) {
	if f.importErr != nil {
		return 0, f.importErr
	}
	f.imported = append(f.imported, items...)
	return len(items), nil
}
func (f *fakeImporter) Purge(ctx context.Context) (int64, error) {
	f.purged++
	return 7, nil
}

func TestParseSeed(t *testing.T) {
	data, err := parseSeed([]byte(`
profile:
  header:
    name: Ada
skills:
  - category: LANGUAGES
    name: Go
    level: 4
  - category: TOOLS
    name: Docker
    level: 3
thoughts:
  - date: 2025-01-02
    text: hello
empty:
`))
	require.NoError(t, err)

	require.Len(t, data["profile"], 1)
	assert.JSONEq(t, `{"header":{"name":"Ada"}}`, string(data["profile"][0]))

	require.Len(t, data["skills"], 2)
	assert.JSONEq(t, `{"category":"LANGUAGES","name":"Go","level":4}`, string(data["skills"][0]))

	require.Len(t, data["thoughts"], 1)
	assert.JSONEq(t, `{"date":"2025-01-02","text":"hello"}`, string(data["thoughts"][0]))

	assert.NotContains(t, data, "empty")
}

func TestParseSeed_RejectsScalars(t *testing.T) {
	_, err := parseSeed([]byte("skills: 3\n"))
	assert.ErrorContains(t, err, "skills")
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	data := map[string][]json.RawMessage{
		"skills": {json.RawMessage(`{"name":"Go"}`)},
		"books":  {json.RawMessage(`{"title":"a"}`), json.RawMessage(`{"title":"b"}`)},
	}

	t.Run("imports in name order", func(t *testing.T) {
		skills, books := &fakeImporter{name: "skills"}, &fakeImporter{name: "books"}
		report, err := seed(ctx, []service.Importer{skills, books}, data, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"books: imported 2", "skills: imported 1"}, report)
		assert.Len(t, books.imported, 2)
		assert.Zero(t, books.purged)
	})

	t.Run("reset purges first", func(t *testing.T) {
		skills, books := &fakeImporter{name: "skills"}, &fakeImporter{name: "books"}
		report, err := seed(ctx, []service.Importer{skills, books}, data, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"books: removed 7", "books: imported 2", "skills: removed 7", "skills: imported 1"}, report)
		assert.Equal(t, 1, skills.purged)
	})

	t.Run("unknown collection writes nothing", func(t *testing.T) {
		skills := &fakeImporter{name: "skills"}
		_, err := seed(ctx, []service.Importer{skills}, data, true)
		assert.ErrorContains(t, err, `unknown collection "books"`)
		assert.Empty(t, skills.imported)
		assert.Zero(t, skills.purged)
	})

	t.Run("import error stops", func(t *testing.T) {
		boom := errors.New("boom")
		skills, books := &fakeImporter{name: "skills"}, &fakeImporter{name: "books", importErr: boom}
		_, err := seed(ctx, []service.Importer{skills, books}, data, false)
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, skills.imported)
	})
}
