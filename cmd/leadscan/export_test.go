package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vicentfs/leadscan/internal/export"
	"github.com/vicentfs/leadscan/internal/model"
)

// writeSampleJSON writes a small JSON export for conversion tests.
func writeSampleJSON(t *testing.T, dir string) string {
	t.Helper()

	c := model.NewCompany("https://empresite.eleconomista.es/ACME.html")
	c.Name = "ACME SL"

	path := filepath.Join(dir, "empresas.json")
	if err := export.JSON([]model.Company{c}, path); err != nil {
		t.Fatalf("failed to write sample JSON: %v", err)
	}
	return path
}

// TestExportCmd tests the export command end to end.
func TestExportCmd(t *testing.T) {
	t.Parallel()

	t.Run("converts next to the input by default", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		jsonPath := writeSampleJSON(t, dir)

		cmd := NewRootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"export", jsonPath})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		csvPath := filepath.Join(dir, "empresas.csv")
		data, err := os.ReadFile(csvPath)
		if err != nil {
			t.Fatalf("CSV file missing: %v", err)
		}
		if !strings.Contains(string(data), "ACME SL") {
			t.Error("CSV missing record data")
		}
		if !strings.Contains(out.String(), csvPath) {
			t.Errorf("output %q missing the CSV path", out.String())
		}
	})

	t.Run("respects --output", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		jsonPath := writeSampleJSON(t, dir)
		csvPath := filepath.Join(dir, "custom.csv")

		cmd := NewRootCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetArgs([]string{"export", jsonPath, "--output", csvPath})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(csvPath); err != nil {
			t.Errorf("CSV file missing: %v", err)
		}
	})

	t.Run("missing input fails", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs([]string{"export", filepath.Join(t.TempDir(), "absent.json")})

		if err := cmd.Execute(); err == nil {
			t.Error("expected an error for a missing input file")
		}
	})
}

// TestCatalogCmd tests the catalog listings.
func TestCatalogCmd(t *testing.T) {
	t.Parallel()

	t.Run("lists both catalogs by default", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"catalog"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := out.String()
		for _, want := range []string{"Provinces:", "Activities:", "MADRID", "PESCA"} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("lists a single catalog", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"catalog", "provinces"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(out.String(), "Activities:") {
			t.Error("activities listed when only provinces were requested")
		}
	})
}
