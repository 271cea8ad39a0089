// Package cleanup removes LaTeX build artifacts. Given a .tex file it
// cleans the auxiliary files sharing its stem; given a directory it
// cleans every matching file, optionally recursing. Protected source
// extensions are never removed, and files can be backed up first.
package cleanup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"latexmcp/internal/texfile"
	"latexmcp/pkg/fileops"
)

// ErrLocked is returned when another cleanup holds the target's lock.
var ErrLocked = errors.New("another cleanup is already running for this target")

// lockFileName is created in the target directory while cleaning.
const lockFileName = ".latexmcp-cleanup.lock"

// backupTimestampLayout names backup directories, backup_<stem>_<ts>.
const backupTimestampLayout = "20060102_150405"

// Request describes one cleanup run.
type Request struct {
	// Path is a .tex file or a directory.
	Path string
	// Extensions overrides the default auxiliary set. Entries may be
	// given with or without the leading dot.
	Extensions []string
	// DryRun reports what would be removed without touching anything.
	DryRun bool
	// Recursive descends into subdirectories when Path is a directory.
	Recursive bool
	// CreateBackup copies files into a backup directory before removal.
	CreateBackup bool
	// BackupDir, when set, receives the backup directory instead of the
	// cleaned files' own directory.
	BackupDir string
}

// Result is the outcome of one cleanup run.
type Result struct {
	Success       bool
	TexPath       string
	DirPath       string
	Cleaned       []string
	WouldClean    []string
	BackupDir     string
	BackupCreated bool
	DryRun        bool
	Recursive     bool
	Duration      time.Duration
}

// DefaultExtensions returns the auxiliary extensions removed when a
// request does not name its own.
func DefaultExtensions() []string {
	exts := make([]string, len(texfile.AuxiliaryExtensions))
	copy(exts, texfile.AuxiliaryExtensions)
	return exts
}

// Clean removes build artifacts per req. Request-level problems are
// returned as an error; per-file removal failures are skipped so one
// stubborn file does not abort the run.
func Clean(req Request) (Result, error) {
	start := time.Now()

	res := Result{DryRun: req.DryRun, Recursive: req.Recursive}

	if strings.TrimSpace(req.Path) == "" {
		return res, errors.New("file path cannot be empty")
	}

	info, err := os.Stat(req.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return res, fmt.Errorf("path not found: %s", req.Path)
		}
		return res, fmt.Errorf("cannot access path: %s", req.Path)
	}

	extensions := normalizeExtensions(req.Extensions)

	var targets []string
	var lockDir string
	switch {
	case info.IsDir():
		res.DirPath = req.Path
		lockDir = req.Path
		targets, err = directoryTargets(req.Path, extensions, req.Recursive)
	case texfile.IsSource(req.Path):
		res.TexPath = req.Path
		lockDir = filepath.Dir(req.Path)
		targets, err = stemTargets(req.Path, extensions)
	default:
		return res, fmt.Errorf("path must be a .tex file or a directory: %s", req.Path)
	}
	if err != nil {
		return res, err
	}

	if req.DryRun {
		res.WouldClean = targets
		res.Success = true
		res.Duration = time.Since(start)
		return res, nil
	}

	// Concurrent cleanups of the same directory would race on removal
	// and produce interleaved backups.
	lock := flock.New(filepath.Join(lockDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return res, fmt.Errorf("acquiring cleanup lock: %w", err)
	}
	if !locked {
		return res, ErrLocked
	}
	defer lock.Unlock()

	if req.CreateBackup && len(targets) > 0 {
		backupRoot := lockDir
		if req.BackupDir != "" {
			backupRoot = req.BackupDir
		}
		backupDir, err := createBackupDir(backupRoot, backupName(req.Path, info.IsDir()), targets)
		if err != nil {
			return res, err
		}
		res.BackupDir = backupDir
		res.BackupCreated = true
	}

	for _, target := range targets {
		if err := os.Remove(target); err != nil {
			continue
		}
		res.Cleaned = append(res.Cleaned, target)
	}

	res.Success = true
	res.Duration = time.Since(start)
	return res, nil
}

// FindAuxiliaryFiles lists the files a non-recursive cleanup of path
// would remove, using the default extensions.
func FindAuxiliaryFiles(path string) ([]string, error) {
	res, err := Clean(Request{Path: path, DryRun: true})
	if err != nil {
		return nil, err
	}
	return res.WouldClean, nil
}

// normalizeExtensions lowercases the requested extensions, adds missing
// leading dots, and drops protected ones.
func normalizeExtensions(extensions []string) []string {
	if len(extensions) == 0 {
		return DefaultExtensions()
	}

	var out []string
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if texfile.HasExtension("file"+ext, texfile.ProtectedExtensions) {
			continue
		}
		out = append(out, ext)
	}
	return out
}

// stemTargets finds the source file's siblings that match the cleanup
// extensions.
func stemTargets(texPath string, extensions []string) ([]string, error) {
	siblings, err := texfile.StemSiblings(texPath)
	if err != nil {
		return nil, err
	}

	var targets []string
	for _, sibling := range siblings {
		if texfile.IsProtected(sibling) {
			continue
		}
		if texfile.HasExtension(sibling, extensions) {
			targets = append(targets, sibling)
		}
	}
	return targets, nil
}

// directoryTargets finds every matching file under dir.
func directoryTargets(dir string, extensions []string, recursive bool) ([]string, error) {
	var targets []string

	if recursive {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if !texfile.IsProtected(path) && texfile.HasExtension(path, extensions) {
				targets = append(targets, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory %s: %w", dir, err)
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			if !texfile.IsProtected(path) && texfile.HasExtension(path, extensions) {
				targets = append(targets, path)
			}
		}
	}

	sort.Strings(targets)
	return targets, nil
}

func backupName(path string, isDir bool) string {
	if isDir {
		return filepath.Base(path)
	}
	return texfile.Stem(path)
}

// createBackupDir copies targets into backup_<name>_<timestamp> under
// dir and returns the backup directory path.
func createBackupDir(dir, name string, targets []string) (string, error) {
	timestamp := time.Now().Format(backupTimestampLayout)
	backupDir := filepath.Join(dir, fmt.Sprintf("backup_%s_%s", name, timestamp))

	if err := fileops.EnsureDirectoryExists(backupDir); err != nil {
		return "", err
	}

	for _, target := range targets {
		dest := filepath.Join(backupDir, filepath.Base(target))
		if err := fileops.AtomicCopy(target, dest); err != nil {
			return "", fmt.Errorf("failed to back up %s: %w", target, err)
		}
	}
	return backupDir, nil
}
