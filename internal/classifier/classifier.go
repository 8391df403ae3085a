// Package classifier maps a file's name and modification time to exactly one
// destination folder. Decisions are pure: no filesystem access happens here.
package classifier

import (
	"time"
)

// Reason records which phase of classification produced a decision
type Reason string

const (
	ReasonArchived  Reason = "archived"
	ReasonExtension Reason = "extension"
	ReasonBroadType Reason = "broad_type"
	ReasonFallback  Reason = "fallback"
)

// Decision is the resolved destination for one file
type Decision struct {
	Category    string
	Reason      Reason
	Extension   string
	ContentType string
}

// Archived reports whether the decision came from the age test
func (d Decision) Archived() bool {
	return d.Reason == ReasonArchived
}

// Classifier evaluates age, extension, content type and fallback in that order
type Classifier struct {
	rules    Rules
	resolver TypeResolver
}

// New creates a Classifier. Rules are normalized but not validated, so an
// overlapping table still resolves by first match in declared order.
// A nil resolver disables the broad-type phase.
func New(rules Rules, resolver TypeResolver) *Classifier {
	return &Classifier{
		rules:    rules.Normalize(),
		resolver: resolver,
	}
}

// Rules returns the normalized rule table
func (c *Classifier) Rules() Rules {
	return c.rules
}

// Threshold returns the cutoff before which a file is considered old.
// Days are counted in UTC so every day is exactly 24h, and AddDate keeps
// very large day counts from overflowing a Duration.
func (c *Classifier) Threshold(now time.Time) time.Time {
	return now.UTC().AddDate(0, 0, -c.rules.DaysToArchive).In(now.Location())
}

// IsOld reports whether modTime falls strictly before threshold
func (c *Classifier) IsOld(modTime, threshold time.Time) bool {
	return modTime.Before(threshold)
}

// Archive returns the decision for a file that failed the age test
func (c *Classifier) Archive(filename string) Decision {
	return Decision{
		Category:  c.rules.ArchiveFolder,
		Reason:    ReasonArchived,
		Extension: Extension(filename),
	}
}

// Classify applies the full ordered decision: an old file is archived
// regardless of type, otherwise it is classified by type.
func (c *Classifier) Classify(filename string, modTime, threshold time.Time) Decision {
	if c.IsOld(modTime, threshold) {
		return c.Archive(filename)
	}
	return c.ByType(filename)
}

// ByType classifies a file by extension, then by broad content type,
// then falls back to the catch-all folder.
func (c *Classifier) ByType(filename string) Decision {
	ext := Extension(filename)

	if ext != "" {
		for _, rule := range c.rules.Categories {
			if rule.Matches(ext) {
				return Decision{Category: rule.Name, Reason: ReasonExtension, Extension: ext}
			}
		}
	}

	if c.resolver != nil {
		ct := c.resolver.ContentType(filename)
		if prefix := TypePrefix(ct); prefix != "" {
			for _, rule := range c.rules.BroadTypes {
				if rule.Prefix == prefix {
					return Decision{Category: rule.Name, Reason: ReasonBroadType, Extension: ext, ContentType: ct}
				}
			}
		}
		return Decision{Category: c.rules.FallbackFolder, Reason: ReasonFallback, Extension: ext, ContentType: ct}
	}

	return Decision{Category: c.rules.FallbackFolder, Reason: ReasonFallback, Extension: ext}
}
