package walker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxFileSize is the maximum navigation data file size to consider (4 MB).
const DefaultMaxFileSize int64 = 4 << 20

// FileInfo describes one navigation data file discovered during traversal.
type FileInfo struct {
	Path        string // Absolute path on disk.
	RelPath     string // Path relative to the root directory, slash separated.
	Dir         string // Absolute directory holding the file and its child scripts.
	Project     string // Documentation set name derived from the path.
	Size        int64  // File size in bytes.
	ContentHash string // SHA-256 hex digest of the file content.
}

// WalkerConfig controls the behaviour of the Walk function.
type WalkerConfig struct {
	RootDir     string   // Root directory to walk.
	Include     []string // Glob patterns; only matching files are returned.
	Exclude     []string // Glob patterns; matching files are skipped.
	MaxFileSize int64    // Files larger than this are skipped (0 = use default).
}

// Walk traverses the directory tree rooted at config.RootDir and returns every
// file matching the include patterns, in lexical path order.
func Walk(config WalkerConfig) ([]FileInfo, error) {
	root, err := filepath.Abs(config.RootDir)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve root: %w", err)
	}

	maxSize := config.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	var files []FileInfo

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Skip entries we cannot read instead of aborting.
			return nil
		}

		if d.IsDir() {
			if path != root && skipDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if !Selected(relPath, config.Include, config.Exclude) {
			return nil
		}

		info, err := d.Info()
		if err != nil || info.Size() > maxSize {
			return nil
		}

		hash, err := hashFile(path)
		if err != nil {
			return nil
		}

		files = append(files, FileInfo{
			Path:        path,
			RelPath:     filepath.ToSlash(relPath),
			Dir:         filepath.Dir(path),
			Project:     ProjectName(relPath),
			Size:        info.Size(),
			ContentHash: hash,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}

	return files, nil
}

// outputDirNames are directory names the generator's output is usually
// nested in; they say nothing about which project the docs belong to.
var outputDirNames = map[string]bool{
	"html":          true,
	"doc":           true,
	"docs":          true,
	"documentacion": true,
	"documentation": true,
	"doxygen":       true,
	"output":        true,
}

// ProjectName derives a documentation set name from the relative path of a
// navigation data file: the innermost directory that is not an output
// directory. "examen/documentacion/html/navtreedata.js" yields "examen".
func ProjectName(relPath string) string {
	parts := strings.Split(filepath.ToSlash(filepath.Dir(relPath)), "/")
	for i := len(parts) - 1; i >= 0; i-- {
		p := parts[i]
		if p == "." || p == "" || outputDirNames[strings.ToLower(p)] {
			continue
		}
		return p
	}
	return "root"
}

// hashFile computes the SHA-256 digest of the given file.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
