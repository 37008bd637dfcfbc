package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dukaforge/shelf/pkg/model"
)

// Test model graph: an Artist owns Albums, an Album owns Tracks. Track
// carries one field of every persisted kind.

type Track struct {
	model.Record
	Title   string
	Plays   int64
	Rating  float64
	Starred bool
	Genre   string
	Tags    []string
	Album   *Album
}

func (*Track) ModelName() string { return "Track" }

type Album struct {
	model.Record
	Name   string
	Year   int64
	Artist *Artist
	Tracks []*Track
}

func (*Album) ModelName() string { return "Album" }

type Artist struct {
	model.Record
	Name   string
	Albums []*Album
}

func (*Artist) ModelName() string { return "Artist" }

func trackType() *model.Type {
	return &model.Type{
		Name: "Track",
		New:  func() model.Model { return &Track{} },
		Fields: []model.Field{
			{
				Name: "title", Kind: model.Text, Expose: true,
				Get: func(m model.Model) any { return m.(*Track).Title },
				Set: func(m model.Model, v any) { m.(*Track).Title = v.(string) },
			},
			{
				Name: "plays", Kind: model.Int,
				Get: func(m model.Model) any { return m.(*Track).Plays },
				Set: func(m model.Model, v any) { m.(*Track).Plays = v.(int64) },
			},
			{
				Name: "rating", Kind: model.Float,
				Get: func(m model.Model) any { return m.(*Track).Rating },
				Set: func(m model.Model, v any) { m.(*Track).Rating = v.(float64) },
			},
			{
				Name: "starred", Kind: model.Bool,
				Get: func(m model.Model) any { return m.(*Track).Starred },
				Set: func(m model.Model, v any) { m.(*Track).Starred = v.(bool) },
			},
			{
				Name: "genre", Kind: model.Enum,
				Get: func(m model.Model) any { return m.(*Track).Genre },
				Set: func(m model.Model, v any) { m.(*Track).Genre = v.(string) },
			},
			{
				Name: "tags", Kind: model.Generic,
				Get: func(m model.Model) any { return m.(*Track).Tags },
				Set: func(m model.Model, v any) { m.(*Track).Tags = v.([]string) },
				Ptr: func(m model.Model) any { return &m.(*Track).Tags },
			},
			{
				Name: "album", Kind: model.BelongsTo, Parent: "Album",
				Get: func(m model.Model) any {
					t := m.(*Track)
					if t.Album == nil {
						return nil
					}
					return t.Album
				},
				Set: func(m model.Model, v any) { m.(*Track).Album = v.(*Album) },
			},
		},
	}
}

func albumType() *model.Type {
	return &model.Type{
		Name: "Album",
		New:  func() model.Model { return &Album{} },
		Fields: []model.Field{
			{
				Name: "name", Kind: model.Text, Expose: true,
				Get: func(m model.Model) any { return m.(*Album).Name },
				Set: func(m model.Model, v any) { m.(*Album).Name = v.(string) },
			},
			{
				Name: "year", Kind: model.Int,
				Get: func(m model.Model) any { return m.(*Album).Year },
				Set: func(m model.Model, v any) { m.(*Album).Year = v.(int64) },
			},
			{
				Name: "artist", Kind: model.BelongsTo, Parent: "Artist",
				Get: func(m model.Model) any {
					a := m.(*Album)
					if a.Artist == nil {
						return nil
					}
					return a.Artist
				},
				Set: func(m model.Model, v any) { m.(*Album).Artist = v.(*Artist) },
			},
			{
				Name: "tracks", Kind: model.HasMany, Child: "Track", Expose: true,
				Get: func(m model.Model) any {
					a := m.(*Album)
					kids := make([]model.Model, len(a.Tracks))
					for i, t := range a.Tracks {
						kids[i] = t
					}
					return kids
				},
				Set: func(m model.Model, v any) {
					kids := v.([]model.Model)
					a := m.(*Album)
					a.Tracks = make([]*Track, len(kids))
					for i, k := range kids {
						a.Tracks[i] = k.(*Track)
					}
				},
			},
		},
	}
}

func artistType() *model.Type {
	return &model.Type{
		Name: "Artist",
		New:  func() model.Model { return &Artist{} },
		Fields: []model.Field{
			{
				Name: "name", Kind: model.Text, Expose: true,
				Get: func(m model.Model) any { return m.(*Artist).Name },
				Set: func(m model.Model, v any) { m.(*Artist).Name = v.(string) },
			},
			{
				Name: "albums", Kind: model.HasMany, Child: "Album", Expose: true,
				Get: func(m model.Model) any {
					a := m.(*Artist)
					kids := make([]model.Model, len(a.Albums))
					for i, al := range a.Albums {
						kids[i] = al
					}
					return kids
				},
				Set: func(m model.Model, v any) {
					kids := v.([]model.Model)
					a := m.(*Artist)
					a.Albums = make([]*Album, len(kids))
					for i, k := range kids {
						a.Albums[i] = k.(*Album)
					}
				},
			},
		},
	}
}

func newTestRegistry(t *testing.T) *model.Registry {
	t.Helper()
	r := model.NewRegistry()
	require.NoError(t, r.Register(artistType()))
	require.NoError(t, r.Register(albumType()))
	require.NoError(t, r.Register(trackType()))
	return r
}

// newTestStore returns a store over a fresh database file in a temporary
// directory, plus the file path for direct inspection.
func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := NewStore(model.Config{Path: path}, newTestRegistry(t))
	require.NoError(t, err)
	return s, path
}
