package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestSimulateCompletes(t *testing.T) {
	var out, progress bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&progress)
	cmd.SetArgs([]string{"simulate", "--size", "55", "--leechers", "2", "--events", "2"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"in 6 pieces",
		"Swarm complete after",
		"3 seeders",
		"completed download and became a seeder",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestSimulateGivesUp(t *testing.T) {
	var out, progress bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&progress)
	cmd.SetArgs([]string{"simulate", "--leechers", "1", "--max-ticks", "1", "--events", "0"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if !strings.Contains(out.String(), "Gave up after 1 ticks") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestSimulateRejectsNegativeCounts(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"simulate", "--leechers", "-1"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for negative leechers")
	}
}

func TestMigrateSQLite(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "none.env"))
	dsn := filepath.Join(t.TempDir(), "tracker.db")

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"migrate", "--driver", "sqlite", "--dsn", dsn})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !strings.Contains(out.String(), "Migrated sqlite schema") {
		t.Fatalf("unexpected output %q", out.String())
	}
}
