package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vicentfs/leadscan/internal/model"
)

func sampleCompanies() []model.Company {
	full := model.NewCompany("https://empresite.eleconomista.es/ACME-SL.html")
	full.Name = "ACME SL"
	full.TaxID = "B12345678"
	full.LegalForm = "Sociedad Limitada"
	full.Address = "Calle Mayor 1, Madrid"
	full.Phone = "910000000"

	sparse := model.NewCompany("https://empresite.eleconomista.es/VACIA-SL.html")
	sparse.Name = "VACÍA SL"

	return []model.Company{full, sparse}
}

// TestJSONRoundTrip tests that exporting and re-reading yields
// field-for-field equal records.
func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "companies.json")
	companies := sampleCompanies()

	if err := JSON(companies, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != len(companies) {
		t.Fatalf("got %d companies, expected %d", len(got), len(companies))
	}
	for i := range companies {
		if got[i] != companies[i] {
			t.Errorf("company %d changed in round trip:\ngot  %+v\nwant %+v", i, got[i], companies[i])
		}
	}
}

// TestJSONFieldNames tests that the output carries the directory's
// Spanish field names.
func TestJSONFieldNames(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "companies.json")
	if err := JSON(sampleCompanies(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, field := range []string{`"razon_social"`, `"cif"`, `"url_ficha"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("output missing field %s", field)
		}
	}
}

// TestCSV tests the CSV format contract: BOM, semicolon delimiter,
// fixed header, empty cells for missing fields.
func TestCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "companies.csv")
	if err := CSV(sampleCompanies(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("starts with UTF-8 BOM", func(t *testing.T) {
		if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
			t.Errorf("got leading bytes %v, expected the UTF-8 BOM", data[:3])
		}
	})

	lines := strings.Split(strings.TrimRight(string(bytes.TrimPrefix(data, utf8BOM)), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, expected header plus 2 rows", len(lines))
	}

	t.Run("header matches the fixed column order", func(t *testing.T) {
		want := strings.Join(model.CSVColumns, ";")
		if lines[0] != want {
			t.Errorf("got header %q, expected %q", lines[0], want)
		}
	})

	t.Run("missing fields are empty cells", func(t *testing.T) {
		cells := strings.Split(lines[2], ";")
		if len(cells) != len(model.CSVColumns) {
			t.Fatalf("got %d cells, expected %d", len(cells), len(model.CSVColumns))
		}
		// Only name and source URL are set on the sparse record.
		if cells[0] != "VACÍA SL" {
			t.Errorf("got %q in the name cell", cells[0])
		}
		if cells[1] != "" {
			t.Errorf("got %q in the cif cell, expected an empty cell", cells[1])
		}
		if strings.Contains(lines[2], "null") || strings.Contains(lines[2], "None") {
			t.Errorf("row carries a null placeholder: %q", lines[2])
		}
	})
}

// TestJSONToCSV tests the conversion path used by the export command.
func TestJSONToCSV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "in.json")
	csvPath := filepath.Join(dir, "out.csv")

	t.Run("converts an export", func(t *testing.T) {
		t.Parallel()

		if err := JSON(sampleCompanies(), jsonPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := JSONToCSV(jsonPath, csvPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(csvPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(data), "ACME SL") {
			t.Error("converted CSV missing record data")
		}
	})

	t.Run("unknown JSON fields are ignored", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "extra.json")
		payload := `[{"razon_social":"EXTRA SL","campo_desconocido":"x","url_ficha":"https://example.com/e.html"}]`
		if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		companies, err := ReadJSON(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(companies) != 1 || companies[0].Name != "EXTRA SL" {
			t.Errorf("got %+v, expected the known fields only", companies)
		}
	})

	t.Run("missing input fails", func(t *testing.T) {
		t.Parallel()

		if err := JSONToCSV(filepath.Join(dir, "absent.json"), csvPath); err == nil {
			t.Error("expected an error for a missing input file")
		}
	})
}

// TestFilesSink tests the incremental sink used by the scraper.
func TestFilesSink(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sink, err := NewFiles(filepath.Join(dir, "out"), "pesca_madrid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	companies := sampleCompanies()
	if err := sink.Flush(companies[:1]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sink.Flush(companies); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := ReadJSON(sink.JSONPath())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d companies, expected the second flush to replace the first", len(got))
	}

	if _, err := os.Stat(sink.CSVPath()); err != nil {
		t.Errorf("CSV file missing: %v", err)
	}
}
