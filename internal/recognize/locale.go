package recognize

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/BenjaminIrwin/scatexparser/scatex"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// dictionary is the YAML schema of one locale's vocabulary. Weekdays use
// ISO numbering (1 = Monday … 7 = Sunday); unit, keyword, modifier, and
// relative values are canonical English tags shared across locales.
type dictionary struct {
	Locale    string            `yaml:"locale"`
	Months    map[string]int    `yaml:"months"`
	Weekdays  map[string]int    `yaml:"weekdays"`
	Units     map[string]string `yaml:"units"`
	Keywords  map[string]string `yaml:"keywords"`
	Modifiers map[string]string `yaml:"modifiers"`
	Relative  map[string]string `yaml:"relative"`
}

// Validate checks every vocabulary entry against its closed value domain.
func (d *dictionary) Validate() error {
	return validation.ValidateStruct(d,
		validation.Field(&d.Locale, validation.Required, validation.Length(2, 8)),
		validation.Field(&d.Months, validation.By(intRange("months", 1, 12))),
		validation.Field(&d.Weekdays, validation.By(intRange("weekdays", 1, 7))),
		validation.Field(&d.Units, validation.By(tagSet("units", "second", "minute", "hour", "day", "week", "month", "year"))),
		validation.Field(&d.Keywords, validation.By(tagSet("keywords", "today", "yesterday", "tomorrow", "now"))),
		validation.Field(&d.Modifiers, validation.By(tagSet("modifiers", "this", "last", "next"))),
		validation.Field(&d.Relative, validation.By(tagSet("relative", "before", "after"))),
	)
}

func intRange(field string, min, max int) validation.RuleFunc {
	return func(v interface{}) error {
		m, _ := v.(map[string]int)
		for word, n := range m {
			if n < min || n > max {
				return fmt.Errorf("%s: %q maps to %d, outside [%d, %d]", field, word, n, min, max)
			}
		}
		return nil
	}
}

func tagSet(field string, allowed ...string) validation.RuleFunc {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return func(v interface{}) error {
		m, _ := v.(map[string]string)
		for word, tag := range m {
			if _, ok := set[tag]; !ok {
				return fmt.Errorf("%s: %q maps to unknown tag %q", field, word, tag)
			}
		}
		return nil
	}
}

// merge overlays o's entries on top of d's.
func (d *dictionary) merge(o *dictionary) {
	mergeStr := func(dst *map[string]string, src map[string]string) {
		if *dst == nil {
			*dst = map[string]string{}
		}
		for k, v := range src {
			(*dst)[k] = v
		}
	}
	if d.Months == nil {
		d.Months = map[string]int{}
	}
	for k, v := range o.Months {
		d.Months[k] = v
	}
	if d.Weekdays == nil {
		d.Weekdays = map[string]int{}
	}
	for k, v := range o.Weekdays {
		d.Weekdays[k] = v
	}
	mergeStr(&d.Units, o.Units)
	mergeStr(&d.Keywords, o.Keywords)
	mergeStr(&d.Modifiers, o.Modifiers)
	mergeStr(&d.Relative, o.Relative)
}

// relPhrase is a compiled relative-shift marker ("ago", "hace", "il y a").
type relPhrase struct {
	phrase    string
	direction scatex.Direction
}

// table is a dictionary compiled into typed lookup maps.
type table struct {
	locale    string
	months    map[string]time.Month
	weekdays  map[string]time.Weekday
	units     map[string]scatex.Unit
	keywords  map[string]scatex.Keyword
	modifiers map[string]scatex.Modifier
	relative  []relPhrase // longest phrase first
}

var keywordTags = map[string]scatex.Keyword{
	"today":     scatex.KeywordToday,
	"yesterday": scatex.KeywordYesterday,
	"tomorrow":  scatex.KeywordTomorrow,
	"now":       scatex.KeywordNow,
}

var modifierTags = map[string]scatex.Modifier{
	"this": scatex.ModifierThis,
	"last": scatex.ModifierLast,
	"next": scatex.ModifierNext,
}

func compile(d *dictionary) *table {
	t := &table{
		locale:    d.Locale,
		months:    make(map[string]time.Month, len(d.Months)),
		weekdays:  make(map[string]time.Weekday, len(d.Weekdays)),
		units:     make(map[string]scatex.Unit, len(d.Units)),
		keywords:  make(map[string]scatex.Keyword, len(d.Keywords)),
		modifiers: make(map[string]scatex.Modifier, len(d.Modifiers)),
	}
	for word, n := range d.Months {
		t.months[word] = time.Month(n)
	}
	for word, iso := range d.Weekdays {
		// ISO 7 (Sunday) wraps to time.Weekday 0.
		t.weekdays[word] = time.Weekday(iso % 7)
	}
	for word, name := range d.Units {
		if u, ok := scatex.UnitFromName(name); ok {
			t.units[word] = u
		}
	}
	for word, tag := range d.Keywords {
		t.keywords[word] = keywordTags[tag]
	}
	for word, tag := range d.Modifiers {
		t.modifiers[word] = modifierTags[tag]
	}
	for phrase, tag := range d.Relative {
		dir := scatex.Before
		if tag == "after" {
			dir = scatex.After
		}
		t.relative = append(t.relative, relPhrase{phrase: phrase, direction: dir})
	}
	sort.Slice(t.relative, func(i, j int) bool {
		return len(t.relative[i].phrase) > len(t.relative[j].phrase)
	})
	return t
}

// loadEmbedded parses and validates every built-in locale dictionary.
func loadEmbedded() (map[string]*dictionary, error) {
	out := map[string]*dictionary{}
	entries, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return nil, fmt.Errorf("recognize: read embedded locales: %w", err)
	}
	for _, e := range entries {
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("recognize: read %s: %w", e.Name(), err)
		}
		d, err := parseDictionary(data)
		if err != nil {
			return nil, fmt.Errorf("recognize: locale %s: %w", e.Name(), err)
		}
		out[d.Locale] = d
	}
	return out, nil
}

func parseDictionary(data []byte) (*dictionary, error) {
	var d dictionary
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// loadOverrides merges YAML dictionaries from dir into dicts. An override
// with a known locale extends that locale's vocabulary; a new locale is
// added whole. A missing directory is not an error.
func loadOverrides(dicts map[string]*dictionary, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("recognize: read overrides dir: %w", err)
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("recognize: read override %s: %w", name, err)
		}
		o, err := parseDictionary(data)
		if err != nil {
			return fmt.Errorf("recognize: override %s: %w", name, err)
		}
		if base, ok := dicts[o.Locale]; ok {
			base.merge(o)
		} else {
			dicts[o.Locale] = o
		}
	}
	return nil
}
