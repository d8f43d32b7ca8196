package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// IdentityOptions controls which fields contribute to the identity key.
// Whether a color variant is its own product or a variant of one product
// sharing lifecycle history differs per shop; it is a configuration choice,
// not a hardcoded assumption. Changing it on an existing dataset fragments
// history, so it must be fixed before the first run.
type IdentityOptions struct {
	// IncludeColor makes each color variant a distinct entry.
	IncludeColor bool `json:"includeColor" yaml:"includeColor"`

	// IncludeSKU appends the SKU when the source provides one.
	IncludeSKU bool `json:"includeSKU" yaml:"includeSKU"`
}

// DefaultIdentityOptions tracks every color variant as its own entry, the
// behavior the master dataset history was built with.
func DefaultIdentityOptions() IdentityOptions {
	return IdentityOptions{IncludeColor: true, IncludeSKU: true}
}

// Identity derives the stable identity key for a record. The key must be
// identical across runs for the same physical product: an unstable key
// fragments history, a colliding key collapses distinct products.
func Identity(r *Record, opts IdentityOptions) string {
	parts := []string{r.Brand, r.Model, r.Variant}
	if opts.IncludeColor && r.Color != "" {
		parts = append(parts, r.Color)
	}
	if opts.IncludeSKU && r.SKU != "" {
		parts = append(parts, r.SKU)
	}

	slugged := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := Slug(p); s != "" {
			slugged = append(slugged, s)
		}
	}
	return strings.Join(slugged, "-")
}

// foldDiacritics strips combining marks so "Émonda" and "Emonda" derive the
// same key.
var foldDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Slug lowercases a value, folds diacritics, and collapses every run of
// non-alphanumeric characters into a single hyphen.
func Slug(s string) string {
	folded, _, err := transform.String(foldDiacritics, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	lastHyphen := true // suppress leading hyphen
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
