package classifier

import (
	"fmt"
	"strings"
)

const (
	// DefaultArchiveFolder receives files older than the archive threshold
	DefaultArchiveFolder = "Old_Files"
	// DefaultFallbackFolder receives files no rule matches
	DefaultFallbackFolder = "Miscellaneous"
	// DefaultDaysToArchive is the default age in days before a file is archived
	DefaultDaysToArchive = 30
	// MaxDaysToArchive is the largest day count a time.Duration can hold
	MaxDaysToArchive = 106751
)

// CategoryRule maps a set of lower-cased extensions to a category folder
type CategoryRule struct {
	Name       string
	Extensions []string
}

// Matches reports whether ext is one of the rule's extensions
func (r CategoryRule) Matches(ext string) bool {
	for _, e := range r.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// BroadTypeRule maps a content-type prefix such as "image" to a category folder
type BroadTypeRule struct {
	Name   string
	Prefix string
}

// Rules is the complete, ordered rule table used for one run.
// Evaluation is first-match-wins in declared order for both rule lists.
type Rules struct {
	Categories     []CategoryRule
	BroadTypes     []BroadTypeRule
	ArchiveFolder  string
	FallbackFolder string
	DaysToArchive  int
}

// DefaultRules returns the built-in rule table
func DefaultRules() Rules {
	return Rules{
		Categories: []CategoryRule{
			{Name: "Images", Extensions: []string{".jpg", ".jpeg", ".png", ".gif"}},
			{Name: "Documents", Extensions: []string{".pdf", ".docx", ".txt"}},
			{Name: "Archives", Extensions: []string{".zip", ".rar", ".7z"}},
			{Name: "Code", Extensions: []string{".py", ".js", ".html"}},
		},
		BroadTypes: []BroadTypeRule{
			{Name: "Images", Prefix: "image"},
			{Name: "Videos", Prefix: "video"},
			{Name: "Audio", Prefix: "audio"},
		},
		ArchiveFolder:  DefaultArchiveFolder,
		FallbackFolder: DefaultFallbackFolder,
		DaysToArchive:  DefaultDaysToArchive,
	}
}

// NormalizeExtension lower-cases ext and ensures a leading dot
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Normalize returns a copy of the rules with extensions and prefixes in canonical form
func (r Rules) Normalize() Rules {
	out := r
	out.Categories = make([]CategoryRule, len(r.Categories))
	for i, rule := range r.Categories {
		exts := make([]string, 0, len(rule.Extensions))
		for _, ext := range rule.Extensions {
			if n := NormalizeExtension(ext); n != "" {
				exts = append(exts, n)
			}
		}
		out.Categories[i] = CategoryRule{Name: strings.TrimSpace(rule.Name), Extensions: exts}
	}
	out.BroadTypes = make([]BroadTypeRule, len(r.BroadTypes))
	for i, rule := range r.BroadTypes {
		out.BroadTypes[i] = BroadTypeRule{
			Name:   strings.TrimSpace(rule.Name),
			Prefix: strings.ToLower(strings.TrimSpace(rule.Prefix)),
		}
	}
	out.ArchiveFolder = strings.TrimSpace(r.ArchiveFolder)
	out.FallbackFolder = strings.TrimSpace(r.FallbackFolder)
	return out
}

// Validate checks the rule table for ambiguity.
// Extension sets must be disjoint across category rules so that the
// first-match scan never depends on declaration order.
func (r Rules) Validate() error {
	if r.DaysToArchive < 0 {
		return fmt.Errorf("days to archive must be >= 0, got %d", r.DaysToArchive)
	}
	if r.DaysToArchive > MaxDaysToArchive {
		return fmt.Errorf("days to archive must be <= %d, got %d", MaxDaysToArchive, r.DaysToArchive)
	}
	if r.ArchiveFolder == "" {
		return fmt.Errorf("archive folder name must not be empty")
	}
	if r.FallbackFolder == "" {
		return fmt.Errorf("fallback folder name must not be empty")
	}

	names := make(map[string]bool)
	owner := make(map[string]string)
	for i, rule := range r.Categories {
		if rule.Name == "" {
			return fmt.Errorf("category rule %d has no name", i)
		}
		if names[rule.Name] {
			return fmt.Errorf("category %q is declared more than once", rule.Name)
		}
		names[rule.Name] = true

		for _, ext := range rule.Extensions {
			if prev, ok := owner[ext]; ok {
				if prev == rule.Name {
					return fmt.Errorf("extension %q listed twice in category %q", ext, rule.Name)
				}
				return fmt.Errorf("extension %q is claimed by both %q and %q", ext, prev, rule.Name)
			}
			owner[ext] = rule.Name
		}
	}

	prefixes := make(map[string]bool)
	for i, rule := range r.BroadTypes {
		if rule.Name == "" {
			return fmt.Errorf("broad type rule %d has no name", i)
		}
		if rule.Prefix == "" {
			return fmt.Errorf("broad type rule %q has no prefix", rule.Name)
		}
		if strings.Contains(rule.Prefix, "/") {
			return fmt.Errorf("broad type prefix %q must not contain '/'", rule.Prefix)
		}
		if prefixes[rule.Prefix] {
			return fmt.Errorf("broad type prefix %q is declared more than once", rule.Prefix)
		}
		prefixes[rule.Prefix] = true
	}

	return nil
}

// Destinations returns every folder a file can be placed in, deduplicated,
// in declaration order followed by the fallback and archive folders.
func (r Rules) Destinations() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
	}

	for _, rule := range r.Categories {
		add(rule.Name)
	}
	for _, rule := range r.BroadTypes {
		add(rule.Name)
	}
	add(r.FallbackFolder)
	add(r.ArchiveFolder)
	return out
}
