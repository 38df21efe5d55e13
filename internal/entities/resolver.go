// Package entities resolves raw company-name strings, as typed
// inconsistently across years of contract rows, to canonical legal
// entities using a maintained alias table.
package entities

import (
	"errors"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// ErrUnresolved indicates no alias matches the given company name.
var ErrUnresolved = errors.New("company name does not resolve to a known entity")

// Entity is a canonical legal entity after alias resolution.
type Entity struct {
	NIT  string `json:"nit"`
	Name string `json:"name"`
}

// Table maps raw alias strings to their canonical entity.
type Table map[string]Entity

// FuzzyConfig controls the similarity-metric fallback. It is disabled by
// default; when enabled the cutoff must be explicit so matching stays
// deterministic and auditable.
type FuzzyConfig struct {
	Enabled bool    `toml:"enabled"`
	Cutoff  float64 `toml:"cutoff"`
}

type alias struct {
	raw        string
	normalized string
	words      map[string]bool
	year       string
	entity     Entity
}

// Resolver matches company names against an alias table.
// It is immutable after construction and safe for concurrent use.
type Resolver struct {
	exact      map[string]Entity
	normalized map[string]Entity
	aliases    []alias
	fuzzy      FuzzyConfig
	metric     *metrics.SorensenDice
}

// NewResolver builds a Resolver over the given alias table.
// Aliases are ordered lexicographically so heuristic ties break the same
// way on every run.
func NewResolver(table Table, fuzzy FuzzyConfig) *Resolver {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := &Resolver{
		exact:      make(map[string]Entity, len(table)),
		normalized: make(map[string]Entity, len(table)),
		aliases:    make([]alias, 0, len(table)),
		fuzzy:      fuzzy,
		metric:     metrics.NewSorensenDice(),
	}

	for _, k := range keys {
		entity := table[k]
		n := Normalize(k)

		r.exact[strings.TrimSpace(k)] = entity
		if _, ok := r.normalized[n]; !ok {
			r.normalized[n] = entity
		}

		words := make(map[string]bool)
		for _, w := range strings.Fields(n) {
			words[w] = true
		}

		r.aliases = append(r.aliases, alias{
			raw:        k,
			normalized: n,
			words:      words,
			year:       yearOf(n),
			entity:     entity,
		})
	}

	return r
}

// Resolve maps a raw company name to its canonical entity.
// Match order: raw exact, normalized exact, word-overlap heuristic with
// year validation, then the optional similarity fallback. Returns
// ErrUnresolved when nothing matches.
func (r *Resolver) Resolve(name string) (Entity, error) {
	if e, ok := r.exact[strings.TrimSpace(name)]; ok {
		return e, nil
	}

	input := Normalize(name)
	if input == "" {
		return Entity{}, ErrUnresolved
	}

	if e, ok := r.normalized[input]; ok {
		return e, nil
	}

	if e, ok := r.matchByWords(input); ok {
		return e, nil
	}

	if r.fuzzy.Enabled {
		if e, ok := r.matchBySimilarity(input); ok {
			return e, nil
		}
	}

	return Entity{}, ErrUnresolved
}

// matchByWords scores candidates by shared word count. Two names carrying
// different years never match; a shared year scores a bonus. A candidate
// wins with three or more shared words, or when it contains every word of
// the input.
func (r *Resolver) matchByWords(input string) (Entity, bool) {
	inputWords := strings.Fields(input)
	inputYear := yearOf(input)

	var best *alias
	maxOverlap := 0

	for i := range r.aliases {
		cand := &r.aliases[i]

		if inputYear != "" && cand.year != "" && inputYear != cand.year {
			continue
		}

		overlap := 0
		for _, w := range inputWords {
			if cand.words[w] {
				overlap++
			}
		}

		score := overlap
		if inputYear != "" && cand.year == inputYear {
			score += 2
		}

		subset := len(inputWords) > 0 && overlap == len(inputWords)
		if score > maxOverlap && (score >= 3 || subset) {
			maxOverlap = score
			best = cand
		}
	}

	if best == nil {
		return Entity{}, false
	}
	return best.entity, true
}

// matchBySimilarity is the last resort: the closest alias by Sørensen–Dice
// similarity at or above the configured cutoff, still subject to the
// year-mismatch rule.
func (r *Resolver) matchBySimilarity(input string) (Entity, bool) {
	inputYear := yearOf(input)

	var best *alias
	bestScore := 0.0

	for i := range r.aliases {
		cand := &r.aliases[i]

		if inputYear != "" && cand.year != "" && inputYear != cand.year {
			continue
		}

		score := strutil.Similarity(input, cand.normalized, r.metric)
		if score > bestScore {
			bestScore = score
			best = cand
		}
	}

	if best == nil || bestScore < r.fuzzy.Cutoff {
		return Entity{}, false
	}
	return best.entity, true
}
