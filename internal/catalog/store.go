package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/maruel/natural"

	"github.com/ziadkadry99/doxynav/internal/db"
	"github.com/ziadkadry99/doxynav/internal/navtree"
)

// ErrNotFound is returned when no documentation set has the requested ID.
var ErrNotFound = errors.New("documentation set not found")

// DocSet is the catalog record of one scanned navtreedata.js file.
type DocSet struct {
	ID          string    `json:"id"`
	Project     string    `json:"project"`
	Path        string    `json:"path"`
	ContentHash string    `json:"content_hash"`
	RootLabel   string    `json:"root_label"`
	RootLink    string    `json:"root_link"`
	NodeCount   int       `json:"node_count"`
	IndexPages  int       `json:"index_pages"`
	Scripts     []string  `json:"scripts"`
	SyncOn      string    `json:"sync_on"`
	SyncOff     string    `json:"sync_off"`
	ScannedAt   time.Time `json:"scanned_at"`
}

// ScanError records a file that could not be loaded during the last scan.
type ScanError struct {
	Path      string    `json:"path"`
	Message   string    `json:"message"`
	ScannedAt time.Time `json:"scanned_at"`
}

// Describe fills the summary fields of a DocSet from a loaded document.
func Describe(project, path, hash string, doc *navtree.Document) *DocSet {
	scripts := navtree.Scripts(doc.Root)
	if scripts == nil {
		scripts = []string{}
	}
	return &DocSet{
		Project:     project,
		Path:        path,
		ContentHash: hash,
		RootLabel:   doc.Root.Label,
		RootLink:    doc.Root.Link,
		NodeCount:   navtree.Count(doc.Root),
		IndexPages:  doc.Index.Len(),
		Scripts:     scripts,
		SyncOn:      doc.Strings.SyncOn,
		SyncOff:     doc.Strings.SyncOff,
	}
}

// Store persists documentation sets in the catalog database.
type Store struct {
	db *db.DB
}

// NewStore creates a new catalog store.
func NewStore(d *db.DB) *Store {
	return &Store{db: d}
}

const docSetColumns = `id, project, path, content_hash, root_label, root_link, node_count, index_pages, scripts, sync_on, sync_off, scanned_at`

// Upsert inserts ds, or updates the record with the same path. ds.ID is set
// to the stored ID, which never changes for a given path.
func (s *Store) Upsert(ctx context.Context, ds *DocSet, source []byte) error {
	if ds.ID == "" {
		ds.ID = uuid.NewString()
	}
	ds.ScannedAt = time.Now().UTC()
	if ds.Scripts == nil {
		ds.Scripts = []string{}
	}
	scriptsJSON, err := json.Marshal(ds.Scripts)
	if err != nil {
		return fmt.Errorf("marshaling scripts: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO doc_sets (`+docSetColumns+`, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
		   project=excluded.project, content_hash=excluded.content_hash,
		   root_label=excluded.root_label, root_link=excluded.root_link,
		   node_count=excluded.node_count, index_pages=excluded.index_pages,
		   scripts=excluded.scripts, sync_on=excluded.sync_on, sync_off=excluded.sync_off,
		   scanned_at=excluded.scanned_at, source=excluded.source`,
		ds.ID, ds.Project, ds.Path, ds.ContentHash, ds.RootLabel, ds.RootLink,
		ds.NodeCount, ds.IndexPages, string(scriptsJSON), ds.SyncOn, ds.SyncOff,
		ds.ScannedAt, source,
	)
	if err != nil {
		return fmt.Errorf("upserting doc set: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, `SELECT id FROM doc_sets WHERE path = ?`, ds.Path).Scan(&ds.ID); err != nil {
		return fmt.Errorf("reading doc set id: %w", err)
	}
	return nil
}

// Get retrieves a documentation set by ID.
func (s *Store) Get(ctx context.Context, id string) (*DocSet, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+docSetColumns+` FROM doc_sets WHERE id = ?`, id)
	ds, err := scanDocSet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting doc set: %w", err)
	}
	return ds, nil
}

// GetByPath retrieves a documentation set by its file path.
func (s *Store) GetByPath(ctx context.Context, path string) (*DocSet, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+docSetColumns+` FROM doc_sets WHERE path = ?`, path)
	ds, err := scanDocSet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting doc set: %w", err)
	}
	return ds, nil
}

// List returns all documentation sets, ordered naturally by project and path
// (guia1_ej3 sorts before guia1_ej10).
func (s *Store) List(ctx context.Context) ([]DocSet, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+docSetColumns+` FROM doc_sets`)
	if err != nil {
		return nil, fmt.Errorf("listing doc sets: %w", err)
	}
	defer rows.Close()

	var result []DocSet
	for rows.Next() {
		ds, err := scanDocSet(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning doc set: %w", err)
		}
		result = append(result, *ds)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Project != result[j].Project {
			return natural.Less(result[i].Project, result[j].Project)
		}
		return natural.Less(result[i].Path, result[j].Path)
	})
	return result, nil
}

// Document loads the stored source of a documentation set.
func (s *Store) Document(ctx context.Context, id string) (*navtree.Document, error) {
	var source []byte
	err := s.db.QueryRowContext(ctx, `SELECT source FROM doc_sets WHERE id = ?`, id).Scan(&source)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading doc set source: %w", err)
	}
	return navtree.Load(source)
}

// Delete removes a documentation set.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM doc_sets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting doc set: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordError stores the failure for path, replacing any earlier one.
func (s *Store) RecordError(ctx context.Context, path, message string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scan_errors (path, message, scanned_at) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET message=excluded.message, scanned_at=excluded.scanned_at`,
		path, message, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("recording scan error: %w", err)
	}
	return nil
}

// ClearError forgets any failure recorded for path.
func (s *Store) ClearError(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM scan_errors WHERE path = ?`, path); err != nil {
		return fmt.Errorf("clearing scan error: %w", err)
	}
	return nil
}

// Errors returns all recorded scan failures ordered by path.
func (s *Store) Errors(ctx context.Context) ([]ScanError, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path, message, scanned_at FROM scan_errors ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("listing scan errors: %w", err)
	}
	defer rows.Close()

	var result []ScanError
	for rows.Next() {
		var e ScanError
		if err := rows.Scan(&e.Path, &e.Message, &e.ScannedAt); err != nil {
			return nil, fmt.Errorf("scanning scan error: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocSet(r rowScanner) (*DocSet, error) {
	var ds DocSet
	var scriptsJSON string
	if err := r.Scan(&ds.ID, &ds.Project, &ds.Path, &ds.ContentHash, &ds.RootLabel, &ds.RootLink,
		&ds.NodeCount, &ds.IndexPages, &scriptsJSON, &ds.SyncOn, &ds.SyncOff, &ds.ScannedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(scriptsJSON), &ds.Scripts); err != nil {
		return nil, fmt.Errorf("unmarshaling scripts: %w", err)
	}
	return &ds, nil
}
