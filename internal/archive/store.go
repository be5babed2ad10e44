// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive records generated drafts and their refinement transcripts
// in a local SQLite database so the CLI can list, show, resume and export
// past work. It is owned by the caller and never used as a server-side
// session store.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/ir-outreach/pkg/types"
)

const defaultListLimit = 20

// timeLayout is fixed width so that text order in SQLite is chronological.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("archive record not found")

// Record is one generated draft.
type Record struct {
	ID            string           `json:"id" yaml:"id"`
	CreatedAt     time.Time        `json:"createdAt" yaml:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt" yaml:"updatedAt"`
	Company       string           `json:"company" yaml:"company"`
	Contact       string           `json:"contact" yaml:"contact"`
	Sender        string           `json:"sender" yaml:"sender"`
	Firm          string           `json:"firm,omitempty" yaml:"firm,omitempty"`
	PromptVersion string           `json:"promptVersion" yaml:"promptVersion"`
	EmailText     string           `json:"emailText" yaml:"emailText"`
	NewsSummary   string           `json:"newsSummary,omitempty" yaml:"newsSummary,omitempty"`
	CitedArticle  *types.Article   `json:"citedArticle,omitempty" yaml:"citedArticle,omitempty"`
	Articles      []types.Article  `json:"articles" yaml:"articles"`
	Transcript    types.Transcript `json:"transcript" yaml:"transcript"`
	Refinements   int              `json:"refinements" yaml:"refinements"`
}

// ListOptions filters List and the exports.
type ListOptions struct {
	// Company matches records for this company, case-insensitively.
	Company string

	// Limit caps the number of records (default 20).
	Limit int
}

// Store manages the archive database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the archive database at cfg.Path and creates the
// schema if it does not exist.
func Open(cfg types.ArchiveConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("archive path is empty")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS drafts (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			company TEXT NOT NULL,
			contact TEXT NOT NULL,
			sender TEXT NOT NULL,
			firm TEXT,
			prompt_version TEXT,
			email_text TEXT NOT NULL,
			news_summary TEXT,
			cited_article TEXT,
			articles TEXT,
			transcript TEXT NOT NULL,
			refinements INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_drafts_company ON drafts(company COLLATE NOCASE)`,
		`CREATE INDEX IF NOT EXISTS idx_drafts_created_at ON drafts(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save inserts rec and returns it with its id and timestamps set. An
// existing ID is kept; otherwise a new one is assigned.
func (s *Store) Save(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	cited, err := marshalJSON(rec.CitedArticle)
	if err != nil {
		return rec, err
	}
	articles, err := marshalJSON(rec.Articles)
	if err != nil {
		return rec, err
	}
	transcript, err := marshalJSON(rec.Transcript)
	if err != nil {
		return rec, err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO drafts (id, created_at, updated_at, company, contact, sender, firm,
			prompt_version, email_text, news_summary, cited_article, articles, transcript, refinements)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, formatTime(rec.CreatedAt), formatTime(rec.UpdatedAt),
		rec.Company, rec.Contact, rec.Sender, rec.Firm, rec.PromptVersion,
		rec.EmailText, rec.NewsSummary, cited, articles, transcript, rec.Refinements,
	)
	if err != nil {
		return rec, fmt.Errorf("inserting draft %s: %w", rec.ID, err)
	}
	return rec, nil
}

// UpdateTranscript replaces the transcript and latest email of record id
// and counts one more refinement.
func (s *Store) UpdateTranscript(ctx context.Context, id string, transcript types.Transcript, emailText string) error {
	return s.updateTranscript(ctx, id, transcript, emailText, 1)
}

// ReplaceTranscript stores transcript and emailText without counting a
// refinement. It keeps hand edits reconciled into a transcript whose
// refinement call failed.
func (s *Store) ReplaceTranscript(ctx context.Context, id string, transcript types.Transcript, emailText string) error {
	return s.updateTranscript(ctx, id, transcript, emailText, 0)
}

func (s *Store) updateTranscript(ctx context.Context, id string, transcript types.Transcript, emailText string, refinements int) error {
	data, err := marshalJSON(transcript)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE drafts SET transcript = ?, email_text = ?, updated_at = ?,
			refinements = refinements + ? WHERE id = ?`,
		data, emailText, formatTime(time.Now()), refinements, id,
	)
	if err != nil {
		return fmt.Errorf("updating draft %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating draft %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

const selectColumns = `SELECT id, created_at, updated_at, company, contact, sender,
	COALESCE(firm, ''), COALESCE(prompt_version, ''), email_text, COALESCE(news_summary, ''),
	COALESCE(cited_article, ''), COALESCE(articles, ''), transcript, refinements FROM drafts`

// Get returns the record with the given id. A missing id returns an error
// wrapping ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec, err
}

// List returns records newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Record, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := selectColumns
	var args []any
	if opts.Company != "" {
		query += ` WHERE company = ? COLLATE NOCASE`
		args = append(args, opts.Company)
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		rec                         Record
		created, updated            string
		cited, articles, transcript string
	)
	err := sc.Scan(&rec.ID, &created, &updated, &rec.Company, &rec.Contact, &rec.Sender,
		&rec.Firm, &rec.PromptVersion, &rec.EmailText, &rec.NewsSummary,
		&cited, &articles, &transcript, &rec.Refinements)
	if err != nil {
		return Record{}, err
	}

	if rec.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return Record{}, fmt.Errorf("parsing created_at of %s: %w", rec.ID, err)
	}
	if rec.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return Record{}, fmt.Errorf("parsing updated_at of %s: %w", rec.ID, err)
	}
	if err := unmarshalJSON(cited, &rec.CitedArticle); err != nil {
		return Record{}, err
	}
	if err := unmarshalJSON(articles, &rec.Articles); err != nil {
		return Record{}, err
	}
	if err := unmarshalJSON(transcript, &rec.Transcript); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func marshalJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshaling column: %w", err)
	}
	return string(data), nil
}

func unmarshalJSON(s string, v any) error {
	if s == "" || s == "null" {
		return nil
	}
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("unmarshaling column: %w", err)
	}
	return nil
}
