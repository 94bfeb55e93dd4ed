package questions

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// embeds the question tables into the binary at compile time
//
//go:embed templates/*.yaml
var templateFS embed.FS

type Category string

const (
	Behavioral Category = "behavioral"
	Technical  Category = "technical"
	Leadership Category = "leadership"
	UPSC       Category = "upsc"
)

type Level string

const (
	Entry  Level = "entry"
	Mid    Level = "mid"
	Senior Level = "senior"
)

var levels = []Level{Entry, Mid, Senior}

const genericFile = "generic.yaml"

// Catalog holds the read-only question tables. It is never mutated after load.
type Catalog struct {
	sets    map[Category]map[Level][]string
	generic []string
}

type levelFile map[Level][]string

type genericPool struct {
	Pool []string `yaml:"pool"`
}

var defaultCatalog = mustLoadCatalog(templateFS, "templates")

// Default returns the catalog built from the embedded templates.
func Default() *Catalog {
	return defaultCatalog
}

func mustLoadCatalog(fsys fs.FS, dir string) *Catalog {
	c, err := LoadCatalog(fsys, dir)
	if err != nil {
		panic(fmt.Sprintf("failed to load question templates: %v", err))
	}
	return c
}

// LoadCatalog reads one YAML file per category from dir, plus generic.yaml
// holding the backfill pool. Every list must be free of duplicates.
func LoadCatalog(fsys fs.FS, dir string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read templates directory: %w", err)
	}

	c := &Catalog{sets: make(map[Category]map[Level][]string)}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read template file %s: %w", entry.Name(), err)
		}

		if entry.Name() == genericFile {
			var pool genericPool
			if err := yaml.Unmarshal(data, &pool); err != nil {
				return nil, fmt.Errorf("failed to parse template file %s: %w", entry.Name(), err)
			}
			if c.generic, err = cleanList(pool.Pool); err != nil {
				return nil, fmt.Errorf("%s: %w", entry.Name(), err)
			}
			continue
		}

		var file levelFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse template file %s: %w", entry.Name(), err)
		}

		category := Category(strings.TrimSuffix(entry.Name(), ".yaml"))
		byLevel := make(map[Level][]string, len(levels))
		for lvl, list := range file {
			if !lvl.valid() {
				return nil, fmt.Errorf("%s: unknown level %q", entry.Name(), lvl)
			}
			cleaned, err := cleanList(list)
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", entry.Name(), lvl, err)
			}
			byLevel[lvl] = cleaned
		}
		c.sets[category] = byLevel
	}

	if len(c.sets[Behavioral][Entry]) == 0 {
		return nil, fmt.Errorf("baseline list %s/%s is missing", Behavioral, Entry)
	}
	return c, nil
}

func cleanList(list []string) ([]string, error) {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, q := range list {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		if _, dup := seen[q]; dup {
			return nil, fmt.Errorf("duplicate question %q", q)
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	return out, nil
}

func (l Level) valid() bool {
	return l == Entry || l == Mid || l == Senior
}

// ParseLevel maps unrecognized input to the entry tier.
func ParseLevel(s string) Level {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if l.valid() {
		return l
	}
	return Entry
}

// CategoryFor resolves the category for a request. The UPSC role always
// uses the UPSC set regardless of the submitted type.
func CategoryFor(questionType, role string) Category {
	if role == "UPSC" {
		return UPSC
	}
	return Category(strings.ToLower(strings.TrimSpace(questionType)))
}

// Resolve returns the (category, level) pair whose list is actually served.
// Unknown categories, and known categories missing the level, resolve to the
// behavioral/entry baseline.
func (c *Catalog) Resolve(category Category, level Level) (Category, Level) {
	if byLevel, ok := c.sets[category]; ok {
		if _, ok := byLevel[level]; ok {
			return category, level
		}
	}
	return Behavioral, Entry
}

// Questions returns a copy of the list for the resolved (category, level).
func (c *Catalog) Questions(category Category, level Level) []string {
	category, level = c.Resolve(category, level)
	return append([]string(nil), c.sets[category][level]...)
}

// Generic returns a copy of the backfill pool.
func (c *Catalog) Generic() []string {
	return append([]string(nil), c.generic...)
}

// Categories lists the loaded categories.
func (c *Catalog) Categories() []Category {
	out := make([]Category, 0, len(c.sets))
	for cat := range c.sets {
		out = append(out, cat)
	}
	return out
}
