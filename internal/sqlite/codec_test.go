package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukaforge/shelf/pkg/model"
)

// rowMap converts an encoded row into the column map shape produced by
// scanning, so decode tests can feed encode output straight back in.
func rowMap(r *row) map[string]any {
	cols := make(map[string]any, len(r.cols))
	for i, c := range r.cols {
		cols[c] = r.vals[i]
	}
	return cols
}

func TestEncodeFields(t *testing.T) {
	album := &Album{Name: "Blue"}
	model.SetID(album, 7)

	track := &Track{
		Title:   "So What",
		Plays:   1959,
		Rating:  4.5,
		Starred: true,
		Genre:   "jazz",
		Tags:    []string{"modal", "classic"},
		Album:   album,
	}
	r, err := encodeFields(track, trackType())
	require.NoError(t, err)

	cols := rowMap(r)
	assert.Equal(t, "So What", cols["title"])
	assert.Equal(t, int64(1959), cols["plays"])
	assert.Equal(t, 4.5, cols["rating"])
	assert.Equal(t, true, cols["starred"])
	assert.Equal(t, "jazz", cols["genre"])
	assert.JSONEq(t, `["modal","classic"]`, cols["tags"].(string))
	assert.Equal(t, int64(7), cols["album"])
	assert.NotContains(t, cols, "tracks")
}

func TestEncodeFieldsNulls(t *testing.T) {
	r, err := encodeFields(&Track{Title: "loose"}, trackType())
	require.NoError(t, err)

	cols := rowMap(r)
	assert.Nil(t, cols["genre"], "empty enum stores NULL")
	assert.Nil(t, cols["album"], "nil belongs-to stores NULL")
}

func TestEncodeFieldsUnsavedReference(t *testing.T) {
	track := &Track{Title: "orphan", Album: &Album{Name: "unsaved"}}

	_, err := encodeFields(track, trackType())
	assert.ErrorIs(t, err, model.ErrUnsavedReference)
}

func TestEncodeFieldsBadAccessor(t *testing.T) {
	typ := &model.Type{
		Name: "Broken",
		New:  func() model.Model { return &Track{} },
		Fields: []model.Field{{
			Name: "n", Kind: model.Int,
			Get: func(m model.Model) any { return "not an int64" },
			Set: func(m model.Model, v any) {},
		}},
	}
	_, err := encodeFields(&Track{}, typ)
	assert.ErrorIs(t, err, model.ErrUnsupportedField)
}

func TestDecodeFieldsRoundTrip(t *testing.T) {
	album := &Album{Name: "Blue"}
	model.SetID(album, 7)
	orig := &Track{
		Title:   "So What",
		Plays:   1959,
		Rating:  4.5,
		Starred: true,
		Genre:   "jazz",
		Tags:    []string{"modal"},
		Album:   album,
	}
	r, err := encodeFields(orig, trackType())
	require.NoError(t, err)

	got := &Track{}
	require.NoError(t, decodeFields(got, trackType(), rowMap(r)))

	assert.Equal(t, orig.Title, got.Title)
	assert.Equal(t, orig.Plays, got.Plays)
	assert.Equal(t, orig.Rating, got.Rating)
	assert.Equal(t, orig.Starred, got.Starred)
	assert.Equal(t, orig.Genre, got.Genre)
	assert.Equal(t, orig.Tags, got.Tags)
	assert.Nil(t, got.Album, "belongs-to is not reconstituted from the row")
}

func TestDecodeFieldsDriverRepresentations(t *testing.T) {
	// modernc.org/sqlite hands back int64 for BOOLEAN columns, []byte for
	// some TEXT, and int64 for whole REAL values.
	cols := map[string]any{
		"title":   []byte("bytes"),
		"starred": int64(1),
		"rating":  int64(4),
		"genre":   []byte("rock"),
	}
	got := &Track{}
	require.NoError(t, decodeFields(got, trackType(), cols))

	assert.Equal(t, "bytes", got.Title)
	assert.True(t, got.Starred)
	assert.Equal(t, 4.0, got.Rating)
	assert.Equal(t, "rock", got.Genre)
}

func TestDecodeFieldsNullsKeepZeroValues(t *testing.T) {
	got := &Track{}
	cols := map[string]any{
		"title": nil,
		"genre": nil,
		"plays": nil,
	}
	require.NoError(t, decodeFields(got, trackType(), cols))

	assert.Empty(t, got.Title)
	assert.Empty(t, got.Genre)
	assert.Zero(t, got.Plays)
}

func TestDecodeFieldsBadGenericPayload(t *testing.T) {
	got := &Track{}
	err := decodeFields(got, trackType(), map[string]any{"tags": "not-json"})
	assert.ErrorIs(t, err, model.ErrUnsupportedField)
}
