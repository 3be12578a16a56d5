package folio

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// ErrEmptyCatalog is returned when there is nothing to put in the gallery.
var ErrEmptyCatalog = errors.New("catalog has no featured projects")

// Project is one entry of the portfolio catalog. The engine never mutates a
// Project; it reads the identifier, order and image reference, and the gallery
// caption shows the title, category and tagline.
type Project struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
	Tagline  string `yaml:"tagline"`
	ImageRef string `yaml:"image"`

	// Color is the dark gallery background of the project, Accent its
	// highlight color. Both are CSS-style hex strings.
	Color  string `yaml:"color"`
	Accent string `yaml:"accent"`

	// Archived projects are listed elsewhere on the site, not in the gallery.
	Archived bool `yaml:"archived"`

	// Index is the display position, assigned by the catalog.
	Index int `yaml:"-"`
}

type catalogFile struct {
	Projects []Project `yaml:"projects"`
}

// ParseCatalog decodes a YAML catalog and returns the featured (non-archived)
// projects in file order with their Index assigned.
func ParseCatalog(data []byte) ([]Project, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}

	seen := make(map[string]bool, len(file.Projects))
	featured := make([]Project, 0, len(file.Projects))
	for i, p := range file.Projects {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog: project %d has no id", i)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("catalog: duplicate project id %q", p.ID)
		}
		seen[p.ID] = true
		if p.Archived {
			continue
		}
		p.Index = len(featured)
		featured = append(featured, p)
	}
	if len(featured) == 0 {
		return nil, ErrEmptyCatalog
	}
	return featured, nil
}

// LoadCatalog reads and parses a catalog file from fsys.
func LoadCatalog(fsys fs.FS, name string) ([]Project, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", name, err)
	}
	return ParseCatalog(data)
}
