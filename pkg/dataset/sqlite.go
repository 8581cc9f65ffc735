/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sqlite.go
Description: SQLite dataset sink. Grammars and documents are rows keyed by UUID and grouped
by run ID, so several runs can share one database file.
*/

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/kleascm/cfgforge/pkg/grammar"
)

// SQLiteSink stores a dataset in a SQLite database
type SQLiteSink struct {
	db   *sql.DB
	file string
}

// NewSQLiteSink opens (creating if needed) the database at file
func NewSQLiteSink(file string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", file)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset database: %w", err)
	}
	s := &SQLiteSink{db: db, file: file}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteSink) init() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS grammars (
			id TEXT NOT NULL PRIMARY KEY,
			run_id TEXT NOT NULL,
			suffix TEXT NOT NULL,
			probabilistic INTEGER NOT NULL,
			body TEXT NOT NULL,
			created INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT NOT NULL PRIMARY KEY,
			run_id TEXT NOT NULL,
			idx INTEGER NOT NULL,
			body TEXT NOT NULL,
			created INTEGER NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create dataset tables: %w", err)
		}
	}
	return nil
}

// SaveGrammar inserts a grammar row
func (s *SQLiteSink) SaveGrammar(ctx context.Context, runID, suffix string, g *grammar.Grammar) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("could not generate ID: %w", err)
	}
	probabilistic := 0
	if g.Probabilistic() {
		probabilistic = 1
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO grammars (id, run_id, suffix, probabilistic, body, created) VALUES (?, ?, ?, ?, ?, ?);`,
		id.String(), runID, suffix, probabilistic, g.String(), time.Now().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert grammar: %w", err)
	}
	return s.location("grammars", id), nil
}

// SaveDocument inserts a document row
func (s *SQLiteSink) SaveDocument(ctx context.Context, runID string, index int, doc string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("could not generate ID: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (id, run_id, idx, body, created) VALUES (?, ?, ?, ?, ?);`,
		id.String(), runID, index, doc, time.Now().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}
	return s.location("documents", id), nil
}

// Grammar loads the most recent grammar saved for runID
func (s *SQLiteSink) Grammar(ctx context.Context, runID string) (*grammar.Grammar, error) {
	var body string
	row := s.db.QueryRowContext(ctx,
		`SELECT body FROM grammars WHERE run_id = ? ORDER BY created DESC LIMIT 1;`, runID)
	if err := row.Scan(&body); err != nil {
		return nil, fmt.Errorf("failed to load grammar of run %s: %w", runID, err)
	}
	return grammar.Parse(body)
}

// Documents returns the documents of runID in index order
func (s *SQLiteSink) Documents(ctx context.Context, runID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT body FROM documents WHERE run_id = ? ORDER BY idx;`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []string
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, body)
	}
	return docs, rows.Err()
}

// Close closes the database
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

func (s *SQLiteSink) location(table string, id uuid.UUID) string {
	return fmt.Sprintf("%s#%s/%s", s.file, table, id)
}
