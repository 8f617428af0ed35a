// Package chat implements the conversational pipeline: entity
// resolution, intent classification, context carryover, confidence
// gating and intent handler dispatch.
package chat

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bobmcallan/ava/internal/models"
)

// turkishLower folds case with Turkish rules, so "THY" and "İŞLEM" match
// their dotted/dotless lowercase forms correctly.
var turkishLower = cases.Lower(language.Turkish)

// Alias maps a surface phrase to an instrument code. Matching is
// case-insensitive substring search in declaration order, so more
// specific phrases must be listed before their prefixes.
type Alias struct {
	Phrase string
	Code   string
}

// AliasesFrom flattens an instrument table into an ordered gazetteer.
// Table order becomes scan order. An instrument without configured
// aliases matches on its lowercased name and code.
func AliasesFrom(instruments []models.Instrument) []Alias {
	aliases := make([]Alias, 0, len(instruments)*3)
	for _, inst := range instruments {
		phrases := inst.Aliases
		if len(phrases) == 0 {
			phrases = []string{inst.Name, inst.Code}
		}
		for _, phrase := range phrases {
			phrase = strings.TrimSpace(turkishLower.String(phrase))
			if phrase == "" {
				continue
			}
			aliases = append(aliases, Alias{Phrase: phrase, Code: inst.Code})
		}
	}
	return aliases
}

// DefaultAliases returns the gazetteer of the built-in instrument table.
func DefaultAliases() []Alias {
	return AliasesFrom(models.DefaultInstruments())
}

// Resolver finds the instrument an utterance talks about.
type Resolver struct {
	aliases []Alias
}

// NewResolver creates a resolver over the given gazetteer, falling back
// to the default table when none is given.
func NewResolver(aliases []Alias) *Resolver {
	if len(aliases) == 0 {
		aliases = DefaultAliases()
	}
	return &Resolver{aliases: aliases}
}

// Resolve returns the code of the first alias found in text. The scan
// order is the declaration order of the gazetteer.
func (r *Resolver) Resolve(text string) (string, bool) {
	lowered := turkishLower.String(text)
	for _, a := range r.aliases {
		if strings.Contains(lowered, a.Phrase) {
			return a.Code, true
		}
	}
	return "", false
}
