package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ziadkadry99/doxynav/internal/navtree"
	"github.com/ziadkadry99/doxynav/internal/progress"
	"github.com/ziadkadry99/doxynav/internal/walker"
)

// ScanResult summarizes one catalog scan.
type ScanResult struct {
	Scanned   int
	Unchanged int
	Failed    int
	Removed   int
	Sets      []DocSet
	Duration  time.Duration
}

// Scanner walks a directory tree and records every navigation data file it
// finds in the catalog.
type Scanner struct {
	store    *Store
	reporter progress.Reporter
	log      *zap.Logger
}

// NewScanner creates a scanner. A nil reporter or logger disables that output.
func NewScanner(store *Store, reporter progress.Reporter, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{store: store, reporter: reporter, log: log}
}

// Scan walks cfg.RootDir and upserts each matching file. Files whose content
// hash matches the stored record are not reparsed. Load failures are recorded
// in the catalog and combined into the returned error; the scan still
// processes the remaining files. Records and failures for files no longer
// found under cfg.RootDir are removed once the walk completes.
func (s *Scanner) Scan(ctx context.Context, cfg walker.WalkerConfig) (*ScanResult, error) {
	start := time.Now()

	files, err := walker.Walk(cfg)
	if err != nil {
		return nil, err
	}
	s.log.Debug("walk complete", zap.String("root", cfg.RootDir), zap.Int("files", len(files)))

	if s.reporter != nil {
		s.reporter.Start(len(files))
		defer s.reporter.Finish()
	}

	result := &ScanResult{}
	var errs error
	seen := make(map[string]bool, len(files))
	for i, f := range files {
		seen[f.RelPath] = true
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if s.reporter != nil {
			s.reporter.Update(i+1, f.RelPath)
		}

		ds, changed, err := s.scanFile(ctx, f)
		if err != nil {
			result.Failed++
			s.log.Warn("skipping navigation data", zap.String("path", f.RelPath), zap.Error(err))
			if recErr := s.store.RecordError(ctx, f.RelPath, err.Error()); recErr != nil {
				errs = multierr.Append(errs, recErr)
			}
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", f.RelPath, err))
			continue
		}
		if changed {
			result.Scanned++
		} else {
			result.Unchanged++
		}
		result.Sets = append(result.Sets, *ds)
	}

	removed, err := s.prune(ctx, seen)
	result.Removed = removed
	errs = multierr.Append(errs, err)

	result.Duration = time.Since(start)
	s.log.Info("scan finished",
		zap.Int("scanned", result.Scanned),
		zap.Int("unchanged", result.Unchanged),
		zap.Int("failed", result.Failed),
		zap.Int("removed", result.Removed),
		zap.Duration("duration", result.Duration))
	return result, errs
}

func (s *Scanner) scanFile(ctx context.Context, f walker.FileInfo) (*DocSet, bool, error) {
	existing, err := s.store.GetByPath(ctx, f.RelPath)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}
	if existing != nil && existing.ContentHash == f.ContentHash {
		s.log.Debug("unchanged", zap.String("path", f.RelPath))
		return existing, false, s.store.ClearError(ctx, f.RelPath)
	}

	src, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, false, fmt.Errorf("reading: %w", err)
	}
	doc, err := navtree.Load(src)
	if err != nil {
		return nil, false, err
	}

	ds := Describe(f.Project, f.RelPath, f.ContentHash, doc)
	for _, name := range ds.Scripts {
		if _, err := os.Stat(filepath.Join(f.Dir, name+".js")); err != nil {
			s.log.Warn("deferred child script missing",
				zap.String("path", f.RelPath), zap.String("script", name))
		}
	}
	if existing != nil {
		ds.ID = existing.ID
	}
	if err := s.store.Upsert(ctx, ds, src); err != nil {
		return nil, false, err
	}
	if err := s.store.ClearError(ctx, f.RelPath); err != nil {
		return nil, false, err
	}
	s.log.Debug("cataloged", zap.String("path", f.RelPath), zap.String("id", ds.ID), zap.Int("nodes", ds.NodeCount))
	return ds, true, nil
}

// prune deletes the records and recorded failures of files that were not
// found by the last walk.
func (s *Scanner) prune(ctx context.Context, seen map[string]bool) (int, error) {
	sets, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}
	removed := 0
	var errs error
	for _, ds := range sets {
		if seen[ds.Path] {
			continue
		}
		if err := s.store.Delete(ctx, ds.ID); err != nil && !errors.Is(err, ErrNotFound) {
			errs = multierr.Append(errs, err)
			continue
		}
		removed++
		s.log.Info("removed missing navigation data", zap.String("path", ds.Path), zap.String("id", ds.ID))
	}

	scanErrs, err := s.store.Errors(ctx)
	if err != nil {
		return removed, multierr.Append(errs, err)
	}
	for _, e := range scanErrs {
		if !seen[e.Path] {
			errs = multierr.Append(errs, s.store.ClearError(ctx, e.Path))
		}
	}
	return removed, errs
}
