// Package registry records which Google Doc each markdown source was
// published to.
package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"md2gdocs/markdown"
)

var ErrNotFound = errors.New("registry: publication not found")

type Publication struct {
	ID          uuid.UUID
	SourcePath  string
	DocumentID  string
	DocumentURL string
	Title       string
	Outline     []markdown.Heading
	PublishedAt time.Time
}

type publicationModel struct {
	bun.BaseModel `bun:"table:publications"`

	ID          string    `bun:"id,pk"`
	SourcePath  string    `bun:"source_path,notnull,unique"`
	DocumentID  string    `bun:"document_id,notnull"`
	DocumentURL string    `bun:"document_url"`
	Title       string    `bun:"title"`
	Outline     string    `bun:"outline"`
	PublishedAt time.Time `bun:"published_at,notnull"`
}

type Store struct {
	db  *bun.DB
	now func() time.Time
}

type Option func(*Store)

func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.now = clock
		}
	}
}

// Open opens the SQLite database at path, creating it and its schema when
// missing. path may also be a sqlite "file:" URI.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if !strings.HasPrefix(path, "file:") && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("registry: create directory: %w", err)
		}
	}

	sqldb, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("registry: open sqlite: %w", err)
	}

	s := New(bun.NewDB(sqldb, sqlitedialect.New()), opts...)
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func New(db *bun.DB, opts ...Option) *Store {
	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*publicationModel)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("registry: create table: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the publication recorded for a source path.
func (s *Store) Get(ctx context.Context, sourcePath string) (Publication, error) {
	var model publicationModel
	err := s.db.NewSelect().Model(&model).Where("source_path = ?", sourcePath).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Publication{}, ErrNotFound
		}
		return Publication{}, err
	}
	return modelToPublication(&model)
}

// Record stores p, replacing any earlier publication of the same source.
// A zero PublishedAt is set to the current time.
func (s *Store) Record(ctx context.Context, p Publication) (Publication, error) {
	if p.SourcePath == "" {
		return Publication{}, errors.New("registry: publication needs a source path")
	}
	if p.PublishedAt.IsZero() {
		p.PublishedAt = s.now().UTC()
	}

	existing, err := s.Get(ctx, p.SourcePath)
	created := errors.Is(err, ErrNotFound)
	if err != nil && !created {
		return Publication{}, err
	}

	if created {
		p.ID = uuid.New()
	} else {
		p.ID = existing.ID
	}

	model, err := modelFromPublication(p)
	if err != nil {
		return Publication{}, err
	}

	if created {
		_, err = s.db.NewInsert().Model(model).Exec(ctx)
	} else {
		_, err = s.db.NewUpdate().
			Model(model).
			Column("document_id", "document_url", "title", "outline", "published_at").
			WherePK().
			Exec(ctx)
	}
	if err != nil {
		return Publication{}, err
	}

	return s.Get(ctx, p.SourcePath)
}

// List returns every publication, most recent first.
func (s *Store) List(ctx context.Context) ([]Publication, error) {
	var models []publicationModel
	if err := s.db.NewSelect().Model(&models).Order("published_at DESC").Scan(ctx); err != nil {
		return nil, err
	}

	out := make([]Publication, 0, len(models))
	for i := range models {
		p, err := modelToPublication(&models[i])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func modelFromPublication(p Publication) (*publicationModel, error) {
	outline, err := json.Marshal(p.Outline)
	if err != nil {
		return nil, fmt.Errorf("registry: encode outline: %w", err)
	}
	return &publicationModel{
		ID:          p.ID.String(),
		SourcePath:  p.SourcePath,
		DocumentID:  p.DocumentID,
		DocumentURL: p.DocumentURL,
		Title:       p.Title,
		Outline:     string(outline),
		PublishedAt: p.PublishedAt,
	}, nil
}

func modelToPublication(m *publicationModel) (Publication, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return Publication{}, fmt.Errorf("registry: bad id %q: %w", m.ID, err)
	}

	var outline []markdown.Heading
	if m.Outline != "" && m.Outline != "null" {
		if err := json.Unmarshal([]byte(m.Outline), &outline); err != nil {
			return Publication{}, fmt.Errorf("registry: decode outline: %w", err)
		}
	}

	return Publication{
		ID:          id,
		SourcePath:  m.SourcePath,
		DocumentID:  m.DocumentID,
		DocumentURL: m.DocumentURL,
		Title:       m.Title,
		Outline:     outline,
		PublishedAt: m.PublishedAt,
	}, nil
}
