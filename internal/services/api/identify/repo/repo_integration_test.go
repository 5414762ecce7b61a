//go:build integration_pg

package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"animefinder/internal/platform/store"
	historyrepo "animefinder/internal/services/api/history/repo"
)

// startPostgres launches a disposable postgres and returns its DSN
func startPostgres(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "animefinder",
				"POSTGRES_PASSWORD": "animefinder",
				"POSTGRES_DB":       "animefinder",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	return fmt.Sprintf("postgres://animefinder:animefinder@%s:%s/animefinder?sslmode=disable", host, port.Port())
}

func TestRecorder_Postgres_Integration(t *testing.T) {
	dsn := startPostgres(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	st, err := store.Open(ctx, store.Config{AppName: "animefinder-it", PG: store.PGConfig{Enabled: true, URL: dsn}})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	// twice to prove the DDL is idempotent
	for range 2 {
		if err := EnsureSchema(ctx, st.PG, nil); err != nil {
			t.Fatalf("EnsureSchema: %v", err)
		}
	}

	rec := NewRecorder(st.PG, NewHybrid(nil))
	older := entry(match("Naruto", 0.9))
	older.CreatedAt = time.Now().UTC().Add(-time.Minute)
	rec.Record(ctx, older)

	failed := entry()
	failed.ID = "0b9d3f7e-8a11-4c2e-9b1f-5a2d7c6e4f30"
	failed.Success = false
	failed.Error = "AI service is not configured"
	failed.CreatedAt = time.Now().UTC()
	rec.Record(ctx, failed)

	got, err := historyrepo.NewHybrid(nil).Bind(st.PG).Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("rows = %d", len(got))
	}
	if got[0].ID != failed.ID || got[0].TopTitle != nil || got[0].Error != failed.Error {
		t.Fatalf("newest = %+v", got[0])
	}
	if got[1].TopTitle == nil || *got[1].TopTitle != "Naruto" || got[1].MatchCount != 1 {
		t.Fatalf("older = %+v", got[1])
	}

	// the insert is keyed by id, a replay must not create a second row
	err = NewHybrid(nil).Bind(st.PG).InsertIdentification(ctx, older)
	if err == nil {
		t.Fatalf("duplicate id accepted")
	}
}
