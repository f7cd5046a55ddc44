package rubric

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"path"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/mind-engage/introscore/internal/storage"
)

const (
	JSONKey = "rubric.json"
	YAMLKey = "rubric.yaml"
	XLSXKey = "rubric.xlsx"
)

// ErrNoRubric means none of the supported rubric files exist.
var ErrNoRubric = errors.New("no rubric.json, rubric.yaml or rubric.xlsx found")

// Loader reads the rubric from a blob store, preferring JSON, then YAML,
// then the spreadsheet.
type Loader struct {
	store storage.BlobStore
}

func NewLoader(store storage.BlobStore) *Loader { return &Loader{store: store} }

func (l *Loader) Load() (*Rubric, error) {
	for _, key := range []string{JSONKey, YAMLKey, XLSXKey} {
		ok, err := l.store.Exists(key)
		if err != nil {
			return nil, err
		}
		if ok {
			return l.read(key)
		}
	}
	return nil, ErrNoRubric
}

func (l *Loader) read(key string) (*Rubric, error) {
	rc, err := l.store.Get(key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	defer rc.Close()
	return Parse(key, rc)
}

// Parse decodes and validates a rubric; the format follows the key's
// extension.
func Parse(key string, r io.Reader) (*Rubric, error) {
	var (
		out *Rubric
		err error
	)
	switch strings.ToLower(path.Ext(key)) {
	case ".json":
		out, err = parseJSON(r)
	case ".yaml", ".yml":
		out, err = parseYAML(r)
	case ".xlsx":
		out, err = parseXLSX(r)
	default:
		return nil, fmt.Errorf("%s: unsupported rubric format", key)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return out, nil
}

func parseJSON(r io.Reader) (*Rubric, error) {
	var out Rubric
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func parseYAML(r io.Reader) (*Rubric, error) {
	var out Rubric
	if err := yaml.NewDecoder(r).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

var requiredColumns = []string{"id", "name", "description", "keywords", "weight", "min_words", "max_words"}

// parseXLSX reads the first sheet. The header row names the columns; the
// enabled column is optional.
func parseXLSX(r io.Reader) (*Rubric, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("sheet is empty")
	}
	col := map[string]int{}
	for i, h := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	out := &Rubric{}
	for n, row := range rows[1:] {
		cell := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		if cell("id") == "" && cell("name") == "" {
			continue
		}
		line := n + 2
		weight, err := strconv.ParseFloat(cell("weight"), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: weight: %w", line, err)
		}
		minWords, err := optionalInt(cell("min_words"))
		if err != nil {
			return nil, fmt.Errorf("row %d: min_words: %w", line, err)
		}
		maxWords, err := optionalInt(cell("max_words"))
		if err != nil {
			return nil, fmt.Errorf("row %d: max_words: %w", line, err)
		}
		enabled, err := optionalBool(cell("enabled"))
		if err != nil {
			return nil, fmt.Errorf("row %d: enabled: %w", line, err)
		}
		cfg := DefaultScoringConfig()
		out.Criteria = append(out.Criteria, Criterion{
			ID:            cell("id"),
			Name:          cell("name"),
			Description:   cell("description"),
			Keywords:      splitKeywords(cell("keywords")),
			Weight:        weight,
			MinWords:      minWords,
			MaxWords:      maxWords,
			Enabled:       &enabled,
			ScoringConfig: &cfg,
		})
	}
	return out, nil
}

func splitKeywords(s string) []string {
	out := []string{}
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// optionalInt accepts "", "80" and "80.0" (spreadsheets often store floats).
func optionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	v := int(math.Trunc(f))
	return &v, nil
}

func optionalBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "", "1", "true", "yes", "y":
		return true, nil
	case "0", "false", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}
