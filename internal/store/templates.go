package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"fiches/internal/models"
)

// TemplateStore reads templates from a directory, one template per file.
// The directory is read on every call so edited files show up without a
// restart.
type TemplateStore struct {
	dir string
}

// NewTemplateStore creates a TemplateStore reading from dir.
func NewTemplateStore(dir string) *TemplateStore {
	return &TemplateStore{dir: dir}
}

// Dir returns the directory templates are read from.
func (s *TemplateStore) Dir() string {
	return s.dir
}

// List returns all templates sorted by name using French collation. Files
// that cannot be parsed, or that have no id, are logged and skipped. A
// missing directory yields no templates.
func (s *TemplateStore) List() ([]models.Template, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	var templates []models.Template
	for _, e := range entries {
		if e.IsDir() || !isTemplateFile(e.Name()) {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		t, err := readTemplate(path)
		if err != nil {
			slog.Warn("skipping template file", "path", path, "error", err)
			continue
		}
		if t.ID == "" {
			slog.Warn("skipping template without id", "path", path)
			continue
		}
		templates = append(templates, t)
	}

	// A collator is not safe for concurrent use, so each call gets its own.
	c := collate.New(language.French)
	sort.SliceStable(templates, func(i, j int) bool {
		return c.CompareString(templates[i].Name, templates[j].Name) < 0
	})
	return templates, nil
}

// Summaries returns the listing projection of every template.
func (s *TemplateStore) Summaries() ([]models.TemplateSummary, error) {
	templates, err := s.List()
	if err != nil {
		return nil, err
	}
	out := make([]models.TemplateSummary, 0, len(templates))
	for i := range templates {
		out = append(out, templates[i].Summary())
	}
	return out, nil
}

// Find returns the template with the given id. Returns nil if not found.
func (s *TemplateStore) Find(id string) (*models.Template, error) {
	if id == "" {
		return nil, nil
	}
	templates, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range templates {
		if templates[i].ID == id {
			return &templates[i], nil
		}
	}
	return nil, nil
}

func isTemplateFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func readTemplate(path string) (models.Template, error) {
	var t models.Template
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read template: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(raw, &t)
	} else {
		err = yaml.Unmarshal(raw, &t)
	}
	if err != nil {
		return t, fmt.Errorf("parse template: %w", err)
	}
	return t, nil
}
