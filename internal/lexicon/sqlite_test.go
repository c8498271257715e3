package lexicon

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteArchiveRoundTrip(t *testing.T) {
	archive, err := OpenSQLiteArchive(":memory:")
	require.NoError(t, err)
	defer func() { _ = archive.Close() }()

	ctx := t.Context()
	doc := sampleDocument()
	require.NoError(t, archive.Save(ctx, doc))

	n, err := archive.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	loaded, err := archive.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Entries, 2)
	assert.Equal(t, "e-main", loaded.Entries[0].ID, "document order is preserved")
	assert.Equal(t, "e-var", loaded.Entries[1].ID)
	assert.Equal(t, doc.WritingSystems, loaded.WritingSystems)
	require.Len(t, loaded.RelationTypes, 1)
	assert.Equal(t, []string{"e-main", "s-1-1", "e-main"}, loaded.RelationTypes[0].Relations[0].Targets)

	lex, err := New(loaded)
	require.NoError(t, err)
	_, ok := lex.Object("x-1")
	assert.True(t, ok)
}

func TestSQLiteArchiveSaveReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.db")
	archive, err := OpenSQLiteArchive(path)
	require.NoError(t, err)
	defer func() { _ = archive.Close() }()

	ctx := t.Context()
	require.NoError(t, archive.Save(ctx, sampleDocument()))
	require.NoError(t, archive.Save(ctx, &Document{Entries: []*Entry{{Base: Base{ID: "only"}}}}))

	loaded, err := archive.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Entries, 1)
	assert.Equal(t, "only", loaded.Entries[0].ID)
	assert.Empty(t, loaded.RelationTypes)
}

func TestSQLiteArchiveEmpty(t *testing.T) {
	archive, err := OpenSQLiteArchive(":memory:")
	require.NoError(t, err)
	defer func() { _ = archive.Close() }()

	doc, err := archive.Load(t.Context())
	require.NoError(t, err)
	assert.Empty(t, doc.Entries)
}
