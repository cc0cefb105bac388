package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// FieldRecord maps catalogue field names to their extracted values. A field
// whose label was not found is absent.
type FieldRecord map[string]string

// Merge copies every value of update into r. Later pages win.
func (r FieldRecord) Merge(update FieldRecord) {
	for k, v := range update {
		r[k] = v
	}
}

// Get returns the value for field, or "" when it is absent.
func (r FieldRecord) Get(field string) string {
	return r[field]
}

// Keys returns the fields present in r in catalogue order: labelled fields,
// then checkbox groups. Fields outside the catalogue follow, sorted.
func (r FieldRecord) Keys() []string {
	keys := make([]string, 0, len(r))
	known := make(map[string]bool, len(labelRules)+len(groupRules))
	for _, rule := range labelRules {
		known[rule.Field] = true
		if _, ok := r[rule.Field]; ok {
			keys = append(keys, rule.Field)
		}
	}
	for _, rule := range groupRules {
		known[rule.Field] = true
		if _, ok := r[rule.Field]; ok {
			keys = append(keys, rule.Field)
		}
	}

	var extra []string
	for k := range r {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

type compiledRule struct {
	field string
	re    *regexp.Regexp
}

// FieldExtractor pulls labelled fields and checked checkbox items out of
// page text. It is safe for concurrent use.
type FieldExtractor struct {
	labels []compiledRule
	groups []compiledRule
	item   *regexp.Regexp
}

// NewFieldExtractor compiles the field catalogue for the given glyph set.
func NewFieldExtractor(glyphs Glyphs) (*FieldExtractor, error) {
	if glyphs.Checked == "" {
		return nil, fmt.Errorf("checked glyph set is empty")
	}

	fe := &FieldExtractor{}
	for _, rule := range labelRules {
		re, err := regexp.Compile(rule.Pattern())
		if err != nil {
			return nil, fmt.Errorf("compile pattern for %s: %w", rule.Field, err)
		}
		fe.labels = append(fe.labels, compiledRule{field: rule.Field, re: re})
	}
	for _, rule := range groupRules {
		re, err := regexp.Compile(rule.Pattern())
		if err != nil {
			return nil, fmt.Errorf("compile pattern for %s: %w", rule.Field, err)
		}
		fe.groups = append(fe.groups, compiledRule{field: rule.Field, re: re})
	}

	item, err := regexp.Compile(glyphs.itemPattern())
	if err != nil {
		return nil, fmt.Errorf("compile checkbox pattern: %w", err)
	}
	fe.item = item

	return fe, nil
}

// MustFieldExtractor is like NewFieldExtractor but panics on error.
func MustFieldExtractor(glyphs Glyphs) *FieldExtractor {
	fe, err := NewFieldExtractor(glyphs)
	if err != nil {
		panic(err)
	}
	return fe
}

// Extract returns the fields found in text. Only the first occurrence of
// each label counts. Checkbox groups without a checked item are omitted.
func (fe *FieldExtractor) Extract(text string) FieldRecord {
	record := make(FieldRecord)
	if text == "" {
		return record
	}

	for _, rule := range fe.labels {
		if m := rule.re.FindStringSubmatch(text); m != nil {
			record[rule.field] = strings.TrimSpace(m[1])
		}
	}

	for _, rule := range fe.groups {
		m := rule.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if items := fe.checkedItems(m[1]); len(items) > 0 {
			record[rule.field] = strings.Join(items, ", ")
		}
	}

	return record
}

func (fe *FieldExtractor) checkedItems(span string) []string {
	var items []string
	for _, m := range fe.item.FindAllStringSubmatch(span, -1) {
		if item := strings.TrimSpace(m[1]); item != "" {
			items = append(items, item)
		}
	}
	return items
}
