//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDateplotWithMySQL records a plot run in a MySQL history backend.
func TestDateplotWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "dateplot",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/dateplot?parseTime=true", host, port.Port())
	runHistoryScenario(t, []string{
		"DATEPLOT_HISTORY_BACKEND=mysql",
		"DATEPLOT_HISTORY_DB_CONNECT=" + connStr,
	})
}

// TestDateplotWithPostgres records a plot run in a PostgreSQL history backend.
func TestDateplotWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		// The server logs readiness twice: once for the init run and once for real.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	runHistoryScenario(t, []string{
		"DATEPLOT_HISTORY_BACKEND=postgresql",
		"DATEPLOT_HISTORY_DB_CONNECT=" + connStr,
	})
}

// TestDateplotWithSQLite runs the same scenario against a throwaway SQLite file.
func TestDateplotWithSQLite(t *testing.T) {
	runHistoryScenario(t, []string{
		"DATEPLOT_HISTORY_BACKEND=sqlite",
		"DATEPLOT_HISTORY_DB_CONNECT=" + t.TempDir() + "/history.db",
	})
}

// runHistoryScenario clears and migrates the store, plots twice and checks the status.
func runHistoryScenario(t *testing.T, env []string) {
	t.Helper()
	fixture := writeSalesFixture(t)

	_, err := runDateplot(t, env, "history", "clear")
	require.NoError(t, err)

	out, err := runDateplot(t, env, "history", "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "version")

	_, err = runDateplot(t, env, "line", fixture,
		"--date", "date", "--target", "orders", "--aggregator", "sum",
		"--granularity", "weekly", "--days-back", "0", "--output", "csv")
	require.NoError(t, err)

	_, err = runDateplot(t, env, "bar", fixture,
		"--date", "date", "--target", "orders", "--segment", "region",
		"--granularity", "weekly", "--days-back", "0", "--output", "csv")
	require.NoError(t, err)

	status, err := runDateplot(t, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, status, "Connected: true")
	assert.Contains(t, status, "Total Runs: 2")
	assert.Contains(t, status, "  bar: 1")
	assert.Contains(t, status, "  line: 1")
	assert.Contains(t, status, "Total Rows Plotted: 9")

	_, err = runDateplot(t, env, "history", "clear")
	require.NoError(t, err)
}
