package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/syssam/introspect/dialect/sql"
)

// blogDB creates a SQLite database in a temporary directory and returns
// its path.
func blogDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blog.db")
	drv, err := sql.Open("sqlite", "file:"+path)
	require.NoError(t, err)
	defer drv.Close()
	for _, stmt := range []string{
		"CREATE TABLE users (id INTEGER PRIMARY KEY, email TEXT NOT NULL UNIQUE)",
		"CREATE TABLE posts (id INTEGER PRIMARY KEY, title TEXT, author_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE)",
	} {
		_, err := drv.ExecContext(context.Background(), stmt)
		require.NoError(t, err)
	}
	return path
}

func run(t *testing.T, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("INTROSPECT_PROVIDER", "")
	var out bytes.Buffer
	args = append([]string{"introspect"}, args...)
	return &out, newApp(&out).Run(context.Background(), args)
}

func TestPull(t *testing.T) {
	path := blogDB(t)
	out, err := run(t, "pull", "--url", "sqlite://"+path, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	var doc document
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "main", doc.Schema)
	assert.Equal(t, "sqlite", doc.Dialect)
	assert.Empty(t, doc.Circumstances)
	require.Len(t, doc.Models, 2)

	models := make(map[string]modelDoc)
	for _, m := range doc.Models {
		models[m.Name] = m
	}
	user, ok := models["User"]
	require.True(t, ok)
	assert.Equal(t, "users", user.Table)
	post, ok := models["Post"]
	require.True(t, ok)

	var author, posts *fieldDoc
	for i, f := range post.Fields {
		if f.Name == "author" {
			author = &post.Fields[i]
		}
	}
	for i, f := range user.Fields {
		if f.Name == "posts" {
			posts = &user.Fields[i]
		}
	}
	require.NotNil(t, author)
	require.NotNil(t, posts)
	assert.Equal(t, "User", author.Type)
	assert.Equal(t, "required", author.Arity)
	require.NotNil(t, author.Relation)
	assert.Equal(t, []string{"author_id"}, author.Relation.Fields)
	assert.Equal(t, []string{"id"}, author.Relation.References)
	assert.Equal(t, "Cascade", author.Relation.OnDelete)
	assert.Equal(t, "Post", posts.Type)
	assert.Equal(t, "list", posts.Arity)
	assert.Equal(t, author.Relation.Name, posts.Relation.Name)
}

func TestCapabilities(t *testing.T) {
	path := blogDB(t)
	out, err := run(t, "caps", "--url", "sqlite://"+path, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	var caps capabilities
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &caps))
	assert.Equal(t, capabilities{Dialect: "sqlite", Schema: "main", Circumstances: []string{}, RoundTrips: 1}, caps)
}

func TestCapabilities_ConfigFile(t *testing.T) {
	path := blogDB(t)
	config := filepath.Join(t.TempDir(), DefaultConfigName)
	require.NoError(t, os.WriteFile(config, []byte("url: sqlite://"+path+"\nprovider: postgresql\n"), 0o600))

	out, err := run(t, "capabilities", "--config", config)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "dialect: sqlite")
}

func TestRun_Errors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := run(t, "pull", "--config", missing)
	require.ErrorIs(t, err, ErrNoConnectionURL)

	_, err = run(t, "pull", "--url", "redis://localhost:6379", "--config", missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported scheme redis")
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing", func(t *testing.T) {
		cfg, err := LoadConfigFile(filepath.Join(dir, "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, &Config{}, cfg)
	})

	t.Run("valid", func(t *testing.T) {
		path := filepath.Join(dir, "valid.yaml")
		data := "url: postgres://localhost/app\nprovider: postgresql\nschemas:\n  - public\n  - audit\ndebug: true\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
		cfg, err := LoadConfigFile(path)
		require.NoError(t, err)
		assert.Equal(t, &Config{
			URL:      "postgres://localhost/app",
			Provider: "postgresql",
			Schemas:  []string{"public", "audit"},
			Debug:    true,
		}, cfg)
	})

	t.Run("invalid", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.yaml")
		require.NoError(t, os.WriteFile(path, []byte("schemas: [public\n"), 0o600))
		_, err := LoadConfigFile(path)
		require.Error(t, err)
	})
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Equal(t, "", firstNonEmpty("", ""))
	assert.Equal(t, "", firstNonEmpty())
}
