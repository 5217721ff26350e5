// Package jurisdiction loads the embedded progressive tax tables and maps
// them onto the engine's bracket type. Tables live in tables.toml; each one
// must be ordered, gapless from zero and end in an unbounded bracket, which
// is checked once at load time.
package jurisdiction

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"

	"bilancio/internal/engine"
)

//go:embed tables.toml
var tablesFS embed.FS

// Jurisdiction is one country's tax profile.
type Jurisdiction struct {
	Code              string  `json:"code" toml:"code"`
	Name              string  `json:"name" toml:"name"`
	Currency          string  `json:"currency" toml:"currency"`
	StandardDeduction float64 `json:"standard_deduction" toml:"standard_deduction"`
	VATRate           float64 `json:"vat_rate" toml:"vat_rate"`
	Brackets          []engine.Bracket `json:"brackets" toml:"-"`

	RawBrackets []rawBracket `json:"-" toml:"bracket"`
}

// rawBracket is the TOML shape: a missing up_to marks the unbounded last
// bracket, since TOML has no infinity literal.
type rawBracket struct {
	UpTo *float64 `toml:"up_to"`
	Rate float64  `toml:"rate"`
}

type tablesFile struct {
	Jurisdictions []Jurisdiction `toml:"jurisdiction"`
}

var (
	loadOnce sync.Once
	loaded   map[string]Jurisdiction
	loadErr  error
)

func load() {
	data, err := tablesFS.ReadFile("tables.toml")
	if err != nil {
		loadErr = fmt.Errorf("read embedded tables: %w", err)
		return
	}
	var file tablesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		loadErr = fmt.Errorf("parse tables.toml: %w", err)
		return
	}

	loaded = make(map[string]Jurisdiction, len(file.Jurisdictions))
	for _, j := range file.Jurisdictions {
		for _, rb := range j.RawBrackets {
			upper := engine.Unbounded()
			if rb.UpTo != nil {
				upper = *rb.UpTo
			}
			j.Brackets = append(j.Brackets, engine.Bracket{UpperLimit: upper, RatePct: rb.Rate})
		}
		j.RawBrackets = nil
		if !engine.ValidateBrackets(j.Brackets) {
			loadErr = fmt.Errorf("jurisdiction %s: malformed bracket table", j.Code)
			return
		}
		loaded[j.Code] = j
	}
}

// Get returns the jurisdiction for a code.
func Get(code string) (Jurisdiction, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return Jurisdiction{}, loadErr
	}
	j, ok := loaded[code]
	if !ok {
		return Jurisdiction{}, fmt.Errorf("unknown jurisdiction: %s", code)
	}
	return j, nil
}

// List returns all jurisdictions sorted by code.
func List() ([]Jurisdiction, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}
	out := make([]Jurisdiction, 0, len(loaded))
	for _, j := range loaded {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Code < out[k].Code })
	return out, nil
}
