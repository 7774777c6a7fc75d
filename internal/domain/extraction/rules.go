package extraction

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// RuleEntry is one category with its keyword set. Keywords are stored
// lowercase; matching is substring containment over lowercased text.
type RuleEntry struct {
	Category string
	Keywords []string
}

// RuleSet is an immutable, ordered collection of category keyword rules.
// Order is load-bearing: when several entries' keywords match the same text,
// the first entry in supplied order wins. The set pre-builds an Aho-Corasick
// matcher so every keyword of every rule is tested in a single pass.
type RuleSet struct {
	entries []RuleEntry
	matcher *ahocorasick.Matcher
	// keywordEntry maps matcher pattern index back to the owning entry.
	keywordEntry []int
}

// NewRuleSet builds a rule set from ordered entries. Empty keywords are
// dropped; an entry with no usable keywords still occupies its position so
// downstream indices stay stable.
func NewRuleSet(entries []RuleEntry) *RuleSet {
	rs := &RuleSet{entries: make([]RuleEntry, 0, len(entries))}

	var patterns [][]byte
	for i, e := range entries {
		keywords := make([]string, 0, len(e.Keywords))
		for _, kw := range e.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			keywords = append(keywords, kw)
			patterns = append(patterns, []byte(kw))
			rs.keywordEntry = append(rs.keywordEntry, i)
		}
		rs.entries = append(rs.entries, RuleEntry{Category: e.Category, Keywords: keywords})
	}

	if len(patterns) > 0 {
		rs.matcher = ahocorasick.NewMatcher(patterns)
	}
	return rs
}

// Len returns the number of rule entries.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.entries)
}

// match returns the category of the earliest-supplied entry with a keyword
// occurring in text, in a single matcher pass.
func (rs *RuleSet) match(text string) (string, bool) {
	if rs == nil || rs.matcher == nil {
		return "", false
	}

	hits := rs.matcher.Match([]byte(strings.ToLower(text)))
	if len(hits) == 0 {
		return "", false
	}

	best := -1
	for _, idx := range hits {
		if idx < 0 || idx >= len(rs.keywordEntry) {
			continue
		}
		entry := rs.keywordEntry[idx]
		if best == -1 || entry < best {
			best = entry
		}
	}
	if best == -1 {
		return "", false
	}
	return rs.entries[best].Category, true
}

// ParseRuleSet reads the category_rules.json shape: a JSON object mapping
// category name to an array of keyword strings. Plain json.Unmarshal into a
// map would lose key order, which decides which category wins on multi-rule
// matches, so the object is walked token by token.
func ParseRuleSet(r io.Reader) (*RuleSet, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read rule object: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("rule file must be a JSON object, got %v", tok)
	}

	var entries []RuleEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read category key: %w", err)
		}
		category, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("category key must be a string, got %v", keyTok)
		}

		var keywords []string
		if err := dec.Decode(&keywords); err != nil {
			return nil, fmt.Errorf("category %q: keywords must be an array of strings: %w", category, err)
		}
		entries = append(entries, RuleEntry{Category: category, Keywords: keywords})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("close rule object: %w", err)
	}

	return NewRuleSet(entries), nil
}

// LoadRuleSet reads a rule file from disk. A missing file is not an error
// condition for extraction, but the caller decides whether to warn; this
// function just reports what happened.
func LoadRuleSet(path string) (*RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rule file: %w", err)
	}
	defer f.Close()
	return ParseRuleSet(f)
}
