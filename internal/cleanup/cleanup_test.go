package cleanup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildProject writes a typical post-compile file set and returns the
// directory and the .tex path.
func buildProject(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	files := []string{
		"paper.tex", "paper.aux", "paper.log", "paper.out", "paper.synctex.gz",
		"paper.pdf", "paper.bbl",
		"refs.bib", "figure.png",
		"other.aux",
	}
	for _, name := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("content"), 0o644))
	}
	return dir, filepath.Join(dir, "paper.tex")
}

func names(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, filepath.Base(p))
	}
	return out
}

func TestCleanTexFileStemScoped(t *testing.T) {
	dir, texPath := buildProject(t)

	res, err := Clean(Request{Path: texPath})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, texPath, res.TexPath)
	assert.ElementsMatch(t, []string{"paper.aux", "paper.log", "paper.out", "paper.synctex.gz", "paper.bbl"},
		names(res.Cleaned))

	// Sources, outputs, and unrelated stems survive.
	for _, name := range []string{"paper.tex", "paper.pdf", "refs.bib", "figure.png", "other.aux"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "%s must survive", name)
	}
}

func TestCleanDirectory(t *testing.T) {
	dir, _ := buildProject(t)

	res, err := Clean(Request{Path: dir})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, dir, res.DirPath)
	assert.ElementsMatch(t,
		[]string{"paper.aux", "paper.log", "paper.out", "paper.synctex.gz", "paper.bbl", "other.aux"},
		names(res.Cleaned), "directory cleanup is not stem-scoped")
}

func TestCleanRecursive(t *testing.T) {
	dir, _ := buildProject(t)
	sub := filepath.Join(dir, "chapters")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "ch1.aux"), []byte("x"), 0o644))

	flat, err := Clean(Request{Path: dir, DryRun: true})
	require.NoError(t, err)
	assert.NotContains(t, names(flat.WouldClean), "ch1.aux")

	deep, err := Clean(Request{Path: dir, DryRun: true, Recursive: true})
	require.NoError(t, err)
	assert.Contains(t, names(deep.WouldClean), "ch1.aux")
}

func TestCleanDryRun(t *testing.T) {
	dir, texPath := buildProject(t)

	res, err := Clean(Request{Path: texPath, DryRun: true})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.True(t, res.DryRun)
	assert.Empty(t, res.Cleaned)
	assert.ElementsMatch(t, []string{"paper.aux", "paper.log", "paper.out", "paper.synctex.gz", "paper.bbl"},
		names(res.WouldClean))

	// Nothing was removed.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 10)
}

func TestCleanCustomExtensions(t *testing.T) {
	_, texPath := buildProject(t)

	res, err := Clean(Request{Path: texPath, Extensions: []string{"aux", ".log"}})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"paper.aux", "paper.log"}, names(res.Cleaned),
		"leading dot is optional in requested extensions")
}

func TestCleanProtectedExtensionsIgnored(t *testing.T) {
	dir, texPath := buildProject(t)

	// Asking for .tex and .pdf must not remove them.
	res, err := Clean(Request{Path: texPath, Extensions: []string{".tex", ".pdf", ".aux"}})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"paper.aux"}, names(res.Cleaned))
	_, err = os.Stat(filepath.Join(dir, "paper.tex"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "paper.pdf"))
	assert.NoError(t, err)
}

func TestCleanWithBackup(t *testing.T) {
	_, texPath := buildProject(t)

	res, err := Clean(Request{Path: texPath, CreateBackup: true})
	require.NoError(t, err)

	require.True(t, res.BackupCreated)
	require.NotEmpty(t, res.BackupDir)
	assert.Contains(t, filepath.Base(res.BackupDir), "backup_paper_")

	// Every cleaned file has a copy in the backup directory.
	for _, cleaned := range res.Cleaned {
		copied := filepath.Join(res.BackupDir, filepath.Base(cleaned))
		data, err := os.ReadFile(copied)
		require.NoError(t, err)
		assert.Equal(t, "content", string(data))
	}
}

func TestCleanBackupDirOverride(t *testing.T) {
	_, texPath := buildProject(t)
	backupRoot := t.TempDir()

	res, err := Clean(Request{Path: texPath, CreateBackup: true, BackupDir: backupRoot})
	require.NoError(t, err)

	assert.True(t, res.BackupCreated)
	assert.Equal(t, backupRoot, filepath.Dir(res.BackupDir))
}

func TestCleanRequestValidation(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		_, err := Clean(Request{})
		assert.Error(t, err)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := Clean(Request{Path: filepath.Join(t.TempDir(), "absent.tex")})
		assert.Error(t, err)
	})

	t.Run("non-tex file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		_, err := Clean(Request{Path: path})
		assert.Error(t, err)
	})
}

func TestCleanNothingToDo(t *testing.T) {
	dir := t.TempDir()
	texPath := filepath.Join(dir, "fresh.tex")
	require.NoError(t, os.WriteFile(texPath, []byte("x"), 0o644))

	res, err := Clean(Request{Path: texPath})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Empty(t, res.Cleaned)
	assert.False(t, res.BackupCreated, "no backup directory for an empty clean")
}

func TestCleanLockedTarget(t *testing.T) {
	dir, texPath := buildProject(t)

	lock := flock.New(filepath.Join(dir, lockFileName))
	locked, err := lock.TryLock()
	require.NoError(t, err)
	require.True(t, locked)

	_, err = Clean(Request{Path: texPath})
	assert.ErrorIs(t, err, ErrLocked)

	// Dry runs never take the lock.
	res, err := Clean(Request{Path: texPath, DryRun: true})
	require.NoError(t, err)
	assert.NotEmpty(t, res.WouldClean)

	require.NoError(t, lock.Unlock())

	res, err = Clean(Request{Path: texPath})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.NotEmpty(t, res.Cleaned)

	// Clean releases the lock on return.
	locked, err = lock.TryLock()
	require.NoError(t, err)
	assert.True(t, locked)
	require.NoError(t, lock.Unlock())
}

func TestFindAuxiliaryFiles(t *testing.T) {
	_, texPath := buildProject(t)

	found, err := FindAuxiliaryFiles(texPath)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"paper.aux", "paper.log", "paper.out", "paper.synctex.gz", "paper.bbl"},
		names(found))
}

func TestDefaultExtensionsIsACopy(t *testing.T) {
	exts := DefaultExtensions()
	require.NotEmpty(t, exts)
	exts[0] = ".mutated"

	assert.NotEqual(t, ".mutated", DefaultExtensions()[0])
}
