// Package gate implements the topical-domain admission filter. A query is
// only rejected when it hits the deny-list without any allow-list term; a
// secondary pattern pass rescues legitimate academic phrasings that carry
// no explicit institution name.
package gate

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"campus-assistant-be/pkg/lexical"
)

// Config holds the keyword lists and patterns as versioned configuration
// data, so they can be tested and evolved independently of pipeline logic.
type Config struct {
	Allow    []string    `json:"allow"`
	Deny     []string    `json:"deny"`
	Pairs    [][2]string `json:"pairs"`
	Patterns []string    `json:"patterns"`
}

// Verdict is the outcome of evaluating one query.
type Verdict struct {
	InDomain      bool
	OverrideValid bool
}

type Gate struct {
	allow    []string
	deny     []string
	pairs    [][2]string
	patterns []*regexp.Regexp
}

// New compiles a gate from the given config. Terms are matched over the
// query's normalized (lowercased, accent-folded) form, so config lists may
// be written with or without accents.
func New(cfg Config) (*Gate, error) {
	g := &Gate{}
	for _, term := range cfg.Allow {
		g.allow = append(g.allow, lexical.Normalize(term))
	}
	for _, term := range cfg.Deny {
		g.deny = append(g.deny, lexical.Normalize(term))
	}
	for _, pair := range cfg.Pairs {
		g.pairs = append(g.pairs, [2]string{lexical.Normalize(pair[0]), lexical.Normalize(pair[1])})
	}
	for _, pattern := range cfg.Patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile gate pattern %q: %w", pattern, err)
		}
		g.patterns = append(g.patterns, re)
	}
	return g, nil
}

// LoadConfig reads a gate config from a JSON file. An empty path yields the
// built-in defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read gate config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse gate config: %w", err)
	}
	return cfg, nil
}

// Evaluate classifies whether a raw query is plausibly within the
// department's topical domain. Pure function over static lists;
// misclassification is a quality issue, never a failure.
func (g *Gate) Evaluate(query string) Verdict {
	normalized := lexical.Normalize(query)

	allowHit := containsAny(normalized, g.allow)
	denyHit := containsAny(normalized, g.deny)

	// Any allow-list term overrides a deny-list hit.
	inDomain := !(denyHit && !allowHit)

	return Verdict{
		InDomain:      inDomain,
		OverrideValid: g.patternOverride(normalized),
	}
}

// AllowTerms exposes the normalized allow-list. The final synthesis stage
// uses it to validate that generated text stays on domain.
func (g *Gate) AllowTerms() []string {
	return g.allow
}

// patternOverride recognizes domain-specific question patterns even when the
// raw keyword heuristic would reject the query. Single-keyword heuristics
// produce false negatives on legitimate questions lacking institution names.
func (g *Gate) patternOverride(normalized string) bool {
	for _, re := range g.patterns {
		if re.MatchString(normalized) {
			return true
		}
	}
	for _, pair := range g.pairs {
		if contains(normalized, pair[0]) && contains(normalized, pair[1]) {
			return true
		}
	}
	return false
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if contains(s, term) {
			return true
		}
	}
	return false
}

func contains(s, term string) bool {
	if term == "" {
		return false
	}
	return strings.Contains(s, term)
}
