// Package index keeps structure summaries in an SQLite database so
// collections of files can be searched without reading them again.
package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andrew-torda/pdbstruct/pkg/summary"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Get for an id that is not in the index
var ErrNotFound = errors.New("structure not in index")

// sep joins list columns. It does not turn up in keywords or names.
const sep = "|"

const schema = `
CREATE TABLE IF NOT EXISTS structures (
	id            TEXT PRIMARY KEY,
	batch         TEXT NOT NULL,
	file          TEXT NOT NULL DEFAULT '',
	resolution    REAL,
	method        TEXT NOT NULL DEFAULT '',
	released      TEXT NOT NULL DEFAULT '',
	polymer_type  TEXT NOT NULL DEFAULT '',
	stoichiometry TEXT NOT NULL DEFAULT '',
	weight_kda    REAL NOT NULL DEFAULT 0,
	chains        TEXT NOT NULL DEFAULT '',
	residues      INTEGER NOT NULL DEFAULT 0,
	atoms         INTEGER NOT NULL DEFAULT 0,
	keywords      TEXT NOT NULL DEFAULT '',
	organisms     TEXT NOT NULL DEFAULT '',
	indexed_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS structures_batch ON structures(batch);
`

const columns = `id, batch, file, resolution, method, released, polymer_type,
	stoichiometry, weight_kda, chains, residues, atoms, keywords, organisms`

// Index is an open database
type Index struct {
	db *sql.DB
}

// Entry is a stored summary and the run that stored it
type Entry struct {
	Batch   uuid.UUID
	Summary *summary.Summary
}

// Open opens or creates the database at path. ":memory:" works too.
func Open(ctx context.Context, path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cannot open index %s: %w", path, err)
	}
	// one writer at a time
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot create index tables in %s: %w", path, err)
	}
	return &Index{db: db}, nil
}

// Close closes the database
func (ix *Index) Close() error { return ix.db.Close() }

// NewBatch is the id stamped on every row of one indexing run
func NewBatch() uuid.UUID { return uuid.New() }

func join(s []string) string { return strings.Join(s, sep) }

func split(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, sep)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func put(ctx context.Context, ex execer, batch uuid.UUID, s *summary.Summary) error {
	var res sql.NullFloat64
	if s.Resolution != nil {
		res = sql.NullFloat64{Float64: *s.Resolution, Valid: true}
	}
	q := `INSERT OR REPLACE INTO structures (` + columns + `, indexed_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := ex.ExecContext(ctx, q,
		s.ID, batch.String(), s.File, res, s.Method, s.Released, s.PolymerType,
		s.Stoichiometry, s.WeightKDa, join(s.Chains), s.Residues, s.Atoms,
		join(s.Keywords), join(s.Organisms), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("cannot store %s: %w", s.ID, err)
	}
	return nil
}

// Put stores one summary, replacing anything with the same id
func (ix *Index) Put(ctx context.Context, batch uuid.UUID, s *summary.Summary) error {
	return put(ctx, ix.db, batch, s)
}

// PutAll stores summaries in one transaction
func (ix *Index) PutAll(ctx context.Context, batch uuid.UUID, sums []*summary.Summary) error {
	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, s := range sums {
		if err := put(ctx, tx, batch, s); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (*Entry, error) {
	var (
		s                       summary.Summary
		batch, chains, kw, orgs string
		res                     sql.NullFloat64
	)
	err := sc.Scan(&s.ID, &batch, &s.File, &res, &s.Method, &s.Released, &s.PolymerType,
		&s.Stoichiometry, &s.WeightKDa, &chains, &s.Residues, &s.Atoms, &kw, &orgs)
	if err != nil {
		return nil, err
	}
	if res.Valid {
		s.Resolution = &res.Float64
	}
	s.Chains, s.Keywords, s.Organisms = split(chains), split(kw), split(orgs)
	b, err := uuid.Parse(batch)
	if err != nil {
		return nil, fmt.Errorf("bad batch id for %s: %w", s.ID, err)
	}
	return &Entry{Batch: b, Summary: &s}, nil
}

// Get looks up one structure by id
func (ix *Index) Get(ctx context.Context, id string) (*Entry, error) {
	row := ix.db.QueryRowContext(ctx, `SELECT `+columns+` FROM structures WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return e, err
}

func (ix *Index) query(ctx context.Context, q string, args ...any) ([]*Entry, error) {
	rows, err := ix.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ret []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, e)
	}
	return ret, rows.Err()
}

// Search finds structures with a keyword or organism containing word,
// ignoring case.
func (ix *Index) Search(ctx context.Context, word string) ([]*Entry, error) {
	pat := "%" + likeEscaper.Replace(word) + "%"
	return ix.query(ctx, `SELECT `+columns+` FROM structures
	WHERE keywords LIKE ? ESCAPE '\' OR organisms LIKE ? ESCAPE '\' ORDER BY id`, pat, pat)
}

// likeEscaper makes % and _ in a search word match themselves
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Batch lists what one run stored
func (ix *Index) Batch(ctx context.Context, batch uuid.UUID) ([]*Entry, error) {
	return ix.query(ctx, `SELECT `+columns+` FROM structures WHERE batch = ? ORDER BY id`, batch.String())
}

// Count is the number of structures in the index
func (ix *Index) Count(ctx context.Context) (int, error) {
	var n int
	err := ix.db.QueryRowContext(ctx, `SELECT count(*) FROM structures`).Scan(&n)
	return n, err
}
