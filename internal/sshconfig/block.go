package sshconfig

import (
	"regexp"
	"strings"
)

// Block is one Host stanza in flight through the resolution pipeline: the
// name patterns it was declared under plus the entries collected so far.
// Blocks are owned by a single Resolve call and never shared across calls.
type Block struct {
	Patterns      []string
	Entries       map[EntryKind]string
	LocalForwards []LocalForward
}

// NewBlock creates an empty block for the given name patterns.
func NewBlock(patterns []string) *Block {
	return &Block{
		Patterns: patterns,
		Entries:  make(map[EntryKind]string),
	}
}

// Set records one parsed entry on the block. Scalar entries are last-write
// wins, matching how ssh reads repeated keywords within a stanza. LocalForward
// entries accumulate; malformed ones are dropped silently.
func (b *Block) Set(e Entry) {
	if e.Kind == KindLocalForward {
		if lf, ok := parseLocalForward(e.Value); ok {
			b.LocalForwards = append(b.LocalForwards, lf)
		}
		return
	}
	b.Entries[e.Kind] = e.Value
}

// Get returns the scalar value for kind, or "" when absent.
func (b *Block) Get(kind EntryKind) string {
	return b.Entries[kind]
}

// clone returns a deep copy so pipeline stages can mutate blocks without
// aliasing each other's state.
func (b *Block) clone() *Block {
	c := &Block{
		Patterns:      append([]string(nil), b.Patterns...),
		Entries:       make(map[EntryKind]string, len(b.Entries)),
		LocalForwards: append([]LocalForward(nil), b.LocalForwards...),
	}
	for k, v := range b.Entries {
		c.Entries[k] = v
	}
	return c
}

// mergeAbsent copies entries from src that b does not already have, and
// appends all of src's local forwards. Used when a wildcard block propagates
// into a concrete block: an explicit entry always beats an inherited one.
func (b *Block) mergeAbsent(src *Block) {
	for k, v := range src.Entries {
		if _, ok := b.Entries[k]; !ok {
			b.Entries[k] = v
		}
	}
	b.LocalForwards = append(b.LocalForwards, src.LocalForwards...)
}

// absorb folds src into b during duplicate-block merging: patterns and local
// forwards append, and src's entry values overwrite b's on key collisions.
// The overwrite is intentional and differs from mergeAbsent; see Resolve.
func (b *Block) absorb(src *Block) {
	b.Patterns = append(b.Patterns, src.Patterns...)
	for k, v := range src.Entries {
		b.Entries[k] = v
	}
	b.LocalForwards = append(b.LocalForwards, src.LocalForwards...)
}

// hostPlaceholder is the ssh TOKENS placeholder for the remote hostname.
// An entry value containing it means different things under different host
// names, so blocks carrying it must not be merged.
const hostPlaceholder = "%h"

// hasHostPlaceholder reports whether any scalar entry value references the
// per-host placeholder token.
func (b *Block) hasHostPlaceholder() bool {
	for _, v := range b.Entries {
		if strings.Contains(v, hostPlaceholder) {
			return true
		}
	}
	return false
}

// patternMatcher is a compiled wildcard pattern. A negated matcher selects
// names that do NOT match the stripped sub-pattern.
type patternMatcher struct {
	re      *regexp.Regexp
	negated bool
}

// matches applies the wildcard rule to a concrete host name.
func (m patternMatcher) matches(name string) bool {
	return m.re.MatchString(name) != m.negated
}

// isWildcard reports whether a pattern needs regex matching rather than
// literal comparison.
func isWildcard(pattern string) bool {
	return strings.ContainsAny(pattern, "*?!")
}

// patternMatchers compiles the block's wildcard patterns. Non-wildcard
// patterns yield nothing, so a concrete block returns an empty slice.
// Patterns that fail to compile are skipped; the engine never errors.
func (b *Block) patternMatchers() []patternMatcher {
	var matchers []patternMatcher
	for _, pattern := range b.Patterns {
		if !isWildcard(pattern) {
			continue
		}

		negated := strings.HasPrefix(pattern, "!")
		expr := strings.TrimPrefix(pattern, "!")
		expr = strings.ReplaceAll(expr, ".", `\.`)
		expr = strings.ReplaceAll(expr, "*", ".*")
		expr = strings.ReplaceAll(expr, "?", ".")

		re, err := regexp.Compile("^" + expr + "$")
		if err != nil {
			continue
		}
		matchers = append(matchers, patternMatcher{re: re, negated: negated})
	}
	return matchers
}
