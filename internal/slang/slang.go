// Package slang rewrites informal vocabulary around the model call: slang
// becomes canonical phrasing before translation, canonical phrasing becomes
// slang again after it.
package slang

import (
	"regexp"
	"sort"
	"strings"

	"viola/internal/domain"
)

// Direction selects which side of the model call a substitution runs on.
type Direction int

const (
	// Inbound rewrites slang to canonical phrases before translation.
	Inbound Direction = iota
	// Outbound rewrites canonical phrases back to slang after translation.
	Outbound
)

// table holds both rewrite directions for one language.
type table struct {
	inbound  *replacer // slang -> canonical
	outbound *replacer // canonical -> slang
}

// Substituter applies per-language slang tables. Tables are built once and
// read-only afterwards, so it is safe for concurrent use.
type Substituter struct {
	tables map[domain.LanguageCode]*table
}

// New builds a Substituter from slang -> canonical mappings keyed by
// language. The outbound direction is the derived inverse.
func New(terms map[domain.LanguageCode]map[string]string) *Substituter {
	s := &Substituter{tables: make(map[domain.LanguageCode]*table, len(terms))}
	for lang, pairs := range terms {
		// Several slang forms may share a canonical phrase; pick the
		// first in sorted order so the inverse is deterministic.
		forms := make([]string, 0, len(pairs))
		for slangForm := range pairs {
			forms = append(forms, slangForm)
		}
		sort.Strings(forms)

		inverse := make(map[string]string, len(pairs))
		for _, slangForm := range forms {
			canonical := pairs[slangForm]
			if _, taken := inverse[canonical]; !taken {
				inverse[canonical] = slangForm
			}
		}
		s.tables[lang] = &table{
			inbound:  newReplacer(pairs),
			outbound: newReplacer(inverse),
		}
	}
	return s
}

// Default returns a Substituter loaded with the built-in tables.
func Default() *Substituter {
	return New(defaultTerms)
}

// Apply rewrites recognized terms in text for the given language and
// direction. A language without a table is a pass-through, not an error.
func (s *Substituter) Apply(text string, lang domain.LanguageCode, dir Direction) string {
	t, ok := s.tables[lang]
	if !ok {
		return text
	}
	if dir == Inbound {
		return t.inbound.replace(text)
	}
	return t.outbound.replace(text)
}

// replacer performs a single-pass, longest-match, case-insensitive phrase
// replacement. One pass means already-substituted output is never rewritten
// again, which keeps the operation idempotent for non-overlapping tables.
type replacer struct {
	pattern *regexp.Regexp
	terms   map[string]string // lowercased phrase -> replacement
}

func newReplacer(pairs map[string]string) *replacer {
	phrases := make([]string, 0, len(pairs))
	terms := make(map[string]string, len(pairs))
	for phrase, replacement := range pairs {
		phrases = append(phrases, phrase)
		terms[strings.ToLower(phrase)] = replacement
	}
	// Longest phrase first so "be right back" beats "back".
	sort.Slice(phrases, func(i, j int) bool { return len(phrases[i]) > len(phrases[j]) })

	quoted := make([]string, len(phrases))
	for i, phrase := range phrases {
		quoted[i] = regexp.QuoteMeta(phrase)
	}
	pattern := regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)

	return &replacer{pattern: pattern, terms: terms}
}

func (r *replacer) replace(text string) string {
	if len(r.terms) == 0 {
		return text
	}
	return r.pattern.ReplaceAllStringFunc(text, func(match string) string {
		if replacement, ok := r.terms[strings.ToLower(match)]; ok {
			return replacement
		}
		return match
	})
}
