package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vicentfs/leadscan/internal/model"
)

// utf8BOM is prepended to CSV files so spreadsheet applications detect
// the encoding instead of guessing a legacy codepage.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// JSON writes the records to path as a pretty-printed UTF-8 JSON
// array. Field order follows the record definition and is stable
// across runs.
func JSON(companies []model.Company, path string) error {
	data, err := json.MarshalIndent(companies, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal companies: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// CSV writes the records to path as semicolon-delimited CSV with the
// fixed header row from model.CSVColumns. Empty fields become empty
// cells, never a "null" placeholder.
func CSV(companies []model.Company, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if _, err := file.Write(utf8BOM); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	w := csv.NewWriter(file)
	w.Comma = ';'

	if err := w.Write(model.CSVColumns); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	row := make([]string, len(model.CSVColumns))
	for _, c := range companies {
		fields := c.ToMap()
		for i, column := range model.CSVColumns {
			row[i] = fields[column]
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadJSON loads a previously exported JSON array back into records.
// Unknown fields are ignored so files produced by other tools can be
// converted as long as they use the same field names.
func ReadJSON(path string) ([]model.Company, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var raw []map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	companies := make([]model.Company, 0, len(raw))
	for _, fields := range raw {
		companies = append(companies, model.FromMap(fields))
	}
	return companies, nil
}

// JSONToCSV converts an existing JSON export to CSV.
func JSONToCSV(jsonPath, csvPath string) error {
	companies, err := ReadJSON(jsonPath)
	if err != nil {
		return err
	}
	return CSV(companies, csvPath)
}

// Files is the sink the scraper flushes to: each flush rewrites a JSON
// and a CSV file side by side under the same base name.
type Files struct {
	// jsonPath and csvPath are the flush targets, derived once from
	// the base name.
	jsonPath string
	csvPath  string
}

// NewFiles creates a sink writing <base>.json and <base>.csv inside
// dir. The directory is created if missing.
func NewFiles(dir, base string) (*Files, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return &Files{
		jsonPath: filepath.Join(dir, base+".json"),
		csvPath:  filepath.Join(dir, base+".csv"),
	}, nil
}

// JSONPath returns the JSON output path.
func (f *Files) JSONPath() string {
	return f.jsonPath
}

// CSVPath returns the CSV output path.
func (f *Files) CSVPath() string {
	return f.csvPath
}

// Flush writes the full record sequence to both files, replacing any
// previous flush. Called repeatedly during a run with the growing
// success sequence.
func (f *Files) Flush(companies []model.Company) error {
	if err := JSON(companies, f.jsonPath); err != nil {
		return err
	}
	return CSV(companies, f.csvPath)
}
