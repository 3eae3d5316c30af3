package holiday

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Category groups holidays by the religion or nationality they belong to.
type Category string

const (
	CategoryChristian Category = "christian"
	CategoryJewish    Category = "jewish"
	CategoryMuslim    Category = "muslim"
	CategoryHindu     Category = "hindu"
	CategoryBuddhist  Category = "buddhist"
	CategoryAmerican  Category = "american"
	CategoryNational  Category = "national"
)

// ValidCategories returns all valid holiday categories.
func ValidCategories() []Category {
	return []Category{
		CategoryChristian,
		CategoryJewish,
		CategoryMuslim,
		CategoryHindu,
		CategoryBuddhist,
		CategoryAmerican,
		CategoryNational,
	}
}

// IsValid checks if a category is valid.
func (c Category) IsValid() bool {
	for _, valid := range ValidCategories() {
		if c == valid {
			return true
		}
	}
	return false
}

// DefinitionType distinguishes fixed-date holidays from calculated ones.
type DefinitionType string

const (
	TypeFixed      DefinitionType = "fixed"
	TypeCalculated DefinitionType = "calculated"
)

// Definition is a single immutable holiday catalog entry.
// Exactly one of (Month, Day) or Calculation is populated, matching Type.
type Definition struct {
	Name        string         `json:"name"`
	Category    Category       `json:"category"`
	Key         string         `json:"key"`
	Type        DefinitionType `json:"type"`
	Month       time.Month     `json:"month,omitempty"` // fixed only
	Day         int            `json:"day,omitempty"`   // fixed only
	Calculation Calculation    `json:"calculation,omitempty"`
}

// Catalog is the static registry of holiday definitions, loaded once at
// startup and immutable thereafter. Iteration order is stable: entries
// are sorted by (category, key) at load time.
type Catalog struct {
	defs       []Definition
	byCategory map[Category][]Definition
}

// defaultCatalogYAML is the built-in holiday catalog, used when no
// CATALOG_PATH override is configured.
//
//go:embed catalog.yaml
var defaultCatalogYAML []byte

// catalogEntry is the YAML shape of one holiday:
// category -> key -> {name, type, date | calculation}.
type catalogEntry struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Date        string `yaml:"date,omitempty"`        // "MM-DD", fixed only
	Calculation string `yaml:"calculation,omitempty"` // calculated only
}

// LoadCatalog loads the holiday catalog from the given path, or the
// embedded default catalog when path is empty. Malformed entries fail
// here, at load time, so a corrupt catalog can never reach resolution.
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultCatalogYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read holiday catalog: %w", err)
		}
		data = b
	}
	return ParseCatalog(data)
}

// ParseCatalog parses and validates catalog YAML.
func ParseCatalog(data []byte) (*Catalog, error) {
	var raw map[string]map[string]catalogEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse holiday catalog: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("holiday catalog is empty")
	}

	var defs []Definition
	for cat, entries := range raw {
		category := Category(cat)
		if !category.IsValid() {
			return nil, fmt.Errorf("holiday catalog: unknown category %q", cat)
		}
		for key, entry := range entries {
			def, err := buildDefinition(category, key, entry)
			if err != nil {
				return nil, err
			}
			defs = append(defs, def)
		}
	}

	// YAML maps are unordered; sort for a stable catalog iteration order.
	sort.Slice(defs, func(i, j int) bool {
		if defs[i].Category != defs[j].Category {
			return defs[i].Category < defs[j].Category
		}
		return defs[i].Key < defs[j].Key
	})

	byCategory := make(map[Category][]Definition)
	for _, def := range defs {
		byCategory[def.Category] = append(byCategory[def.Category], def)
	}

	return &Catalog{defs: defs, byCategory: byCategory}, nil
}

// buildDefinition validates one raw entry and converts it into a Definition.
func buildDefinition(category Category, key string, entry catalogEntry) (Definition, error) {
	if key == "" {
		return Definition{}, fmt.Errorf("holiday catalog: %s entry with empty key", category)
	}
	if entry.Name == "" {
		return Definition{}, fmt.Errorf("holiday catalog: %s.%s is missing a name", category, key)
	}

	def := Definition{
		Name:     entry.Name,
		Category: category,
		Key:      key,
		Type:     DefinitionType(entry.Type),
	}

	switch def.Type {
	case TypeFixed:
		if entry.Calculation != "" {
			return Definition{}, fmt.Errorf("holiday catalog: %s.%s is fixed but has a calculation", category, key)
		}
		month, day, err := parseMonthDay(entry.Date)
		if err != nil {
			return Definition{}, fmt.Errorf("holiday catalog: %s.%s: %w", category, key, err)
		}
		def.Month = month
		def.Day = day
	case TypeCalculated:
		if entry.Date != "" {
			return Definition{}, fmt.Errorf("holiday catalog: %s.%s is calculated but has a fixed date", category, key)
		}
		if entry.Calculation == "" {
			return Definition{}, fmt.Errorf("holiday catalog: %s.%s is missing a calculation", category, key)
		}
		// Unknown calculations are allowed here: they surface as a
		// skipped holiday at resolution time, not a load failure.
		def.Calculation = Calculation(entry.Calculation)
	default:
		return Definition{}, fmt.Errorf("holiday catalog: %s.%s has invalid type %q", category, key, entry.Type)
	}

	return def, nil
}

// parseMonthDay parses a fixed holiday date in "MM-DD" form.
func parseMonthDay(s string) (time.Month, int, error) {
	if s == "" {
		return 0, 0, fmt.Errorf("fixed holiday is missing a date")
	}
	var month, day int
	if _, err := fmt.Sscanf(s, "%d-%d", &month, &day); err != nil {
		return 0, 0, fmt.Errorf("invalid fixed date %q, want MM-DD", s)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month %d in fixed date %q", month, s)
	}
	if day < 1 || day > 31 {
		return 0, 0, fmt.Errorf("invalid day %d in fixed date %q", day, s)
	}
	return time.Month(month), day, nil
}

// All returns every definition in stable catalog order.
func (c *Catalog) All() []Definition {
	return c.defs
}

// ByCategory returns the definitions for one category in stable order.
// An unknown category yields an empty slice.
func (c *Catalog) ByCategory(category Category) []Definition {
	return c.byCategory[category]
}

// Len returns the number of definitions in the catalog.
func (c *Catalog) Len() int {
	return len(c.defs)
}
