//go:build integration

package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gopkg.in/yaml.v3"

	"github.com/syssam/introspect/dialect/sql"
)

func TestPull_Postgres(t *testing.T) {
	ctx := context.Background()
	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("app"),
		postgres.WithUsername("app"),
		postgres.WithPassword("app"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	drv, err := sql.Open("postgres", url)
	require.NoError(t, err)
	for _, stmt := range []string{
		"CREATE TABLE users (id bigserial PRIMARY KEY, email varchar(255) NOT NULL UNIQUE)",
		"CREATE TABLE posts (id bigserial PRIMARY KEY, author_id bigint NOT NULL REFERENCES users(id) ON DELETE CASCADE, body jsonb)",
	} {
		_, err := drv.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}
	require.NoError(t, drv.Close())

	for _, u := range []string{url, strings.Replace(url, "postgres://", "pgx://", 1)} {
		out, err := run(t, "pull", "--url", u, "--config", t.TempDir()+"/missing.yaml")
		require.NoError(t, err)

		var doc document
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
		assert.Equal(t, "public", doc.Schema)
		assert.Equal(t, "postgres", doc.Dialect)
		assert.Equal(t, []string{"CanPartitionTables"}, doc.Circumstances)
		assert.Len(t, doc.Models, 2)
	}
}
