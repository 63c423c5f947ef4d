package service

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bloglist/app/models"
	"bloglist/app/repositories"
	"bloglist/app/stats"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the command line against dbPath and returns stdout
func runCLI(t *testing.T, dbPath, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--db", dbPath}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func setupTestDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "badger")
}

// seedDB stores one user owning the given posts and returns the user
func seedDB(t *testing.T, dbPath string, posts ...*models.Post) *models.User {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(dbPath).WithLogger(nil))
	require.NoError(t, err)
	defer db.Close()

	userRepo := repositories.NewBadgerUserRepository(db)
	postRepo := repositories.NewBadgerPostRepository(db)

	user := &models.User{Username: "root", Name: "Superuser", PasswordHash: "x"}
	require.NoError(t, userRepo.Create(user))
	for _, p := range posts {
		p.OwnerID = user.ID
		require.NoError(t, postRepo.Create(p))
	}
	return user
}

func TestRootCommand(t *testing.T) {
	dbPath := setupTestDBPath(t)

	t.Run("version", func(t *testing.T) {
		out, err := runCLI(t, dbPath, "", "version")
		require.NoError(t, err)
		assert.Equal(t, "bloglist version "+cliVersion+"\n", out)
	})

	t.Run("help lists commands", func(t *testing.T) {
		out, err := runCLI(t, dbPath, "", "--help")
		require.NoError(t, err)
		for _, name := range []string{"serve", "init", "clean", "backup", "restore", "check", "stats"} {
			assert.Contains(t, out, name)
		}
	})

	t.Run("unknown command", func(t *testing.T) {
		_, err := runCLI(t, dbPath, "", "unknown")
		assert.Error(t, err)
	})

	t.Run("restore without file", func(t *testing.T) {
		_, err := runCLI(t, dbPath, "", "restore")
		assert.Error(t, err)
	})

	t.Run("serve without secret", func(t *testing.T) {
		t.Setenv("SECRET", "")
		_, err := runCLI(t, dbPath, "", "serve")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret")
	})

	t.Run("invalid config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("port: 0\n"), 0644))
		_, err := runCLI(t, dbPath, "", "--config", path, "stats")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "port")
	})
}

func TestInitDb(t *testing.T) {
	dbPath := setupTestDBPath(t)

	t.Run("initialize new database", func(t *testing.T) {
		out, err := runCLI(t, dbPath, "", "init")
		require.NoError(t, err)
		assert.Contains(t, out, "Database initialized successfully")
		assert.DirExists(t, dbPath)
	})

	t.Run("initialize existing database", func(t *testing.T) {
		out, err := runCLI(t, dbPath, "", "init")
		require.NoError(t, err)
		assert.Contains(t, out, "Database already exists")
	})
}

func TestClean(t *testing.T) {
	dbPath := setupTestDBPath(t)

	t.Run("clean non-existent database", func(t *testing.T) {
		out, err := runCLI(t, dbPath, "", "clean")
		require.NoError(t, err)
		assert.Contains(t, out, "Database is already clean")
	})

	t.Run("clean existing database - cancelled", func(t *testing.T) {
		_, err := runCLI(t, dbPath, "", "init")
		require.NoError(t, err)

		out, err := runCLI(t, dbPath, "n\n", "clean")
		require.NoError(t, err)
		assert.Contains(t, out, "Operation cancelled")
		assert.DirExists(t, dbPath)
	})

	t.Run("clean existing database - confirmed", func(t *testing.T) {
		out, err := runCLI(t, dbPath, "y\n", "clean")
		require.NoError(t, err)
		assert.Contains(t, out, "Database cleaned successfully")
		assert.NoDirExists(t, dbPath)
	})

	t.Run("clean with --yes", func(t *testing.T) {
		_, err := runCLI(t, dbPath, "", "init")
		require.NoError(t, err)

		out, err := runCLI(t, dbPath, "", "clean", "--yes")
		require.NoError(t, err)
		assert.Contains(t, out, "Database cleaned successfully")
		assert.NoDirExists(t, dbPath)
	})
}

func TestBackupAndRestore(t *testing.T) {
	dbPath := setupTestDBPath(t)
	backupDir := filepath.Join(t.TempDir(), "backups")

	t.Run("backup non-existent database", func(t *testing.T) {
		out, err := runCLI(t, dbPath, "", "backup", "--output", backupDir)
		require.NoError(t, err)
		assert.Contains(t, out, "No database exists to backup")
	})

	seedDB(t, dbPath, &models.Post{Title: "Kept", Author: "A", URL: "kept.net", Likes: 3})

	var backupFile string
	t.Run("backup existing database", func(t *testing.T) {
		out, err := runCLI(t, dbPath, "", "backup", "--output", backupDir)
		require.NoError(t, err)
		assert.Contains(t, out, "Database backed up successfully")

		entries, err := os.ReadDir(backupDir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		backupFile = filepath.Join(backupDir, entries[0].Name())
	})

	t.Run("restore non-existent backup", func(t *testing.T) {
		_, err := runCLI(t, dbPath, "", "restore", filepath.Join(backupDir, "nonexistent.db"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "backup file does not exist")
	})

	t.Run("restore with existing database - cancelled", func(t *testing.T) {
		out, err := runCLI(t, dbPath, "n\n", "restore", backupFile)
		require.NoError(t, err)
		assert.Contains(t, out, "Operation cancelled")
	})

	t.Run("restore to clean state", func(t *testing.T) {
		_, err := runCLI(t, dbPath, "", "clean", "--yes")
		require.NoError(t, err)

		out, err := runCLI(t, dbPath, "", "restore", backupFile)
		require.NoError(t, err)
		assert.Contains(t, out, "Database restored successfully")

		out, err = runCLI(t, dbPath, "", "stats")
		require.NoError(t, err)
		var summary stats.Summary
		require.NoError(t, json.Unmarshal([]byte(out), &summary))
		assert.Equal(t, 1, summary.Posts)
		assert.Equal(t, 3, summary.TotalLikes)
	})

	t.Run("restore with existing database - confirmed", func(t *testing.T) {
		out, err := runCLI(t, dbPath, "y\n", "restore", backupFile)
		require.NoError(t, err)
		assert.Contains(t, out, "Database restored successfully")
	})
}

func TestStats(t *testing.T) {
	dbPath := setupTestDBPath(t)

	t.Run("no database", func(t *testing.T) {
		_, err := runCLI(t, dbPath, "", "stats")
		assert.Error(t, err)
	})

	seedDB(t, dbPath,
		&models.Post{Title: "React patterns", Author: "Michael Chan", URL: "https://reactpatterns.com/", Likes: 7},
		&models.Post{Title: "Go To Statement Considered Harmful", Author: "Edsger W. Dijkstra", URL: "http://example.com/goto", Likes: 5},
		&models.Post{Title: "Canonical string reduction", Author: "Edsger W. Dijkstra", URL: "http://example.com/ewd808", Likes: 12},
	)

	out, err := runCLI(t, dbPath, "", "stats")
	require.NoError(t, err)

	var summary stats.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 3, summary.Posts)
	assert.Equal(t, 24, summary.TotalLikes)
	require.NotNil(t, summary.FavoriteBlog)
	assert.Equal(t, "Canonical string reduction", summary.FavoriteBlog.Title)
	require.NotNil(t, summary.MostBlogs)
	assert.Equal(t, stats.AuthorBlogs{Author: "Edsger W. Dijkstra", Blogs: 2}, *summary.MostBlogs)
	require.NotNil(t, summary.MostLikes)
	assert.Equal(t, stats.AuthorLikes{Author: "Edsger W. Dijkstra", Likes: 17}, *summary.MostLikes)
}

func TestCheck(t *testing.T) {
	dbPath := setupTestDBPath(t)
	post := &models.Post{Title: "Owned", URL: "owned.net"}
	user := seedDB(t, dbPath, post)

	t.Run("consistent store", func(t *testing.T) {
		out, err := runCLI(t, dbPath, "", "check")
		require.NoError(t, err)
		assert.Contains(t, out, "Ownership is consistent")
	})

	// Drop the post from the owner's list behind the repository's back
	db, err := badger.Open(badger.DefaultOptions(dbPath).WithLogger(nil))
	require.NoError(t, err)
	require.NoError(t, repositories.NewBadgerUserRepository(db).SetBlogs(user.ID, []string{"stale-id"}))
	require.NoError(t, db.Close())

	t.Run("drift is reported", func(t *testing.T) {
		out, err := runCLI(t, dbPath, "", "check")
		require.Error(t, err)
		assert.Contains(t, out, "user root")
		assert.Contains(t, out, post.ID)
		assert.Contains(t, out, "stale-id")
	})

	t.Run("drift is repaired", func(t *testing.T) {
		out, err := runCLI(t, dbPath, "", "check", "--repair")
		require.NoError(t, err)
		assert.Contains(t, out, "Repaired 1 user(s)")

		out, err = runCLI(t, dbPath, "", "check")
		require.NoError(t, err)
		assert.Contains(t, out, "Ownership is consistent")
	})
}
