// Package adapter contains the filesystem, persistence and watch adapters
// used by the codeaudit workflow.
package adapter

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	m "github.com/mouse-blink/codeaudit/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning user projects. It hides direct `os` access so the
// workflow logic can be tested without touching the disk.
//
//nolint:interfacebloat // A richer interface keeps workflow logic decoupled from os/fs.
type SourceFSAdapter interface {
	// Get collects the analyzable files below roots. A root ending in "/..."
	// is walked recursively, any other directory only at its top level.
	Get(roots []m.Path, filter SourceFilter) ([]m.SourceFile, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation should limit itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// HashFile returns the SHA-256 fingerprint of the file at path.
	HashFile(path m.Path) (string, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// Backup copies files into a fresh timestamped folder below dir and
	// returns that folder.
	Backup(dir m.Path, files []m.SourceFile) (m.Path, error)

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// SourceFilter narrows the files returned by Get.
type SourceFilter struct {
	// Exclude holds directory or file names ("node_modules") and doublestar
	// globs ("**/generated/**", "*.min.js") matched against root-relative paths.
	Exclude []string
	// Kinds restricts the result to these kinds; empty means every known kind.
	Kinds []m.FileKind
}

// Validate reports the first malformed glob.
func (f SourceFilter) Validate() error {
	for _, pattern := range f.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	return nil
}

// Excluded reports whether rel (slash separated, relative to the walked root)
// matches one of the exclusions.
func (f SourceFilter) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == "" {
		return false
	}

	name := rel
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		name = rel[i+1:]
	}

	for _, pattern := range f.Exclude {
		if !strings.ContainsAny(pattern, "*?[{") {
			if name == pattern || rel == strings.TrimSuffix(pattern, "/") {
				return true
			}

			continue
		}

		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}

		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, name); ok {
				return true
			}
		}
	}

	return false
}

// Accepts reports whether files of kind k pass the filter.
func (f SourceFilter) Accepts(k m.FileKind) bool {
	if k == m.KindUnknown {
		return false
	}

	if len(f.Kinds) == 0 {
		return true
	}

	for _, want := range f.Kinds {
		if want == k {
			return true
		}
	}

	return false
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter is the concrete implementation backed by the local disk.
type LocalSourceFSAdapter struct {
	now func() time.Time
}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{now: time.Now}
}

// Get collects source files for the provided roots.
func (a *LocalSourceFSAdapter) Get(roots []m.Path, filter SourceFilter) ([]m.SourceFile, error) {
	if len(roots) == 0 {
		return []m.SourceFile{}, nil
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	seen := make(map[m.Path]struct{})

	var sources []m.SourceFile

	add := func(source m.SourceFile) {
		if _, exists := seen[source.Path]; exists {
			return
		}

		seen[source.Path] = struct{}{}
		sources = append(sources, source)
	}

	for _, root := range roots {
		display, _ := parseRootPath(string(root))

		rootPath, recursive, err := normalizeRootPath(string(root))
		if err != nil {
			return nil, err
		}

		info, err := a.FileInfo(m.Path(rootPath))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			kind := m.KindForPath(m.Path(rootPath))
			if filter.Accepts(kind) {
				add(m.SourceFile{Path: m.Path(rootPath), Rel: m.Path(filepath.Clean(display)), Kind: kind, Size: info.Size()})
			}

			continue
		}

		err = a.Walk(m.Path(rootPath), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			rel, err := filepath.Rel(rootPath, path)
			if err != nil {
				return err
			}

			if filter.Excluded(rel) {
				if info.IsDir() {
					return filepath.SkipDir
				}

				return nil
			}

			if info.IsDir() {
				return nil
			}

			kind := m.KindForPath(m.Path(path))
			if !filter.Accepts(kind) {
				return nil
			}

			add(m.SourceFile{
				Path: m.Path(path),
				Rel:  displayPath(display, rel),
				Kind: kind,
				Size: info.Size(),
			})

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return sources, nil
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// HashBytes returns the SHA-256 hash of content in the format used by HashFile.
func HashBytes(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// Backup copies every file into <dir>/backup-<timestamp>/<rel>.
func (a *LocalSourceFSAdapter) Backup(dir m.Path, files []m.SourceFile) (m.Path, error) {
	target, err := a.createBackupDir(string(dir))
	if err != nil {
		return "", err
	}

	for _, file := range files {
		info, err := os.Stat(string(file.Path))
		if err != nil {
			return "", fmt.Errorf("backup %s: %w", file.Path, err)
		}

		dst := filepath.Join(target, backupName(file))
		if err := a.copyFile(string(file.Path), dst, info.Mode()); err != nil {
			return "", fmt.Errorf("backup %s: %w", file.Path, err)
		}
	}

	return m.Path(target), nil
}

func (a *LocalSourceFSAdapter) createBackupDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	base := filepath.Join(dir, "backup-"+a.now().Format("20060102-150405"))
	target := base

	for i := 2; ; i++ {
		err := os.Mkdir(target, 0o750)
		if err == nil {
			return target, nil
		}

		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("failed to create backup directory: %w", err)
		}

		target = fmt.Sprintf("%s-%d", base, i)
	}
}

// copyFile copies a single file.
func (a *LocalSourceFSAdapter) copyFile(src, dst string, mode os.FileMode) error {
	// #nosec G304 - src is a scanned project file
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}

	defer func() { _ = sourceFile.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return err
	}

	// #nosec G304 - dst is inside the backup directory
	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	defer func() { _ = destFile.Close() }()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return os.Chmod(dst, mode)
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}

// backupName keeps the display path inside the backup folder.
func backupName(file m.SourceFile) string {
	rel := filepath.Clean(string(file.Rel))
	if rel == "." || rel == "" {
		rel = filepath.Base(string(file.Path))
	}

	rel = strings.TrimPrefix(rel, filepath.VolumeName(rel))
	rel = strings.TrimLeft(rel, `/\`)

	for strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		rel = rel[3:]
	}

	return rel
}

func displayPath(root, rel string) m.Path {
	if root == "" {
		root = "."
	}

	return m.Path(filepath.Join(root, rel))
}

func normalizeRootPath(root string) (string, bool, error) {
	rootStr, recursive := parseRootPath(root)

	if strings.HasPrefix(rootStr, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}

		suffix := strings.TrimPrefix(rootStr, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		rootStr = filepath.Join(home, suffix)
	}

	if rootStr == "" {
		rootStr = "."
	}

	abs, err := filepath.Abs(rootStr)
	if err != nil {
		return "", false, err
	}

	return abs, recursive, nil
}

func parseRootPath(rootStr string) (path string, recursive bool) {
	if rootStr == "..." {
		return ".", true
	}

	if len(rootStr) >= 4 && rootStr[len(rootStr)-4:] == "/..." {
		return rootStr[:len(rootStr)-4], true
	}

	return rootStr, false
}
