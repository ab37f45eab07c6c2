package language

import (
	"fmt"
	"strings"
)

// Code is an upper-case endpoint language code such as "EN" or "ZH-HANS"
type Code string

// Auto lets the endpoint detect the source language. It is only valid as a source.
const Auto Code = "AUTO"

// Language tables in display order
var (
	sourceLanguages = []Code{
		Auto, "ZH", "AR", "BG", "CS", "DA", "DE", "EL", "EN", "ES", "ET", "FI", "FR", "HU",
		"ID", "IT", "JA", "KO", "LT", "LV", "NB", "NL", "PL", "PT", "RO", "RU", "SK", "SL",
		"SV", "TR", "UK",
	}

	targetLanguages = []Code{
		"ZH", "ZH-HANS", "ZH-HANT", "AR", "BG", "CS", "DA", "DE", "EL", "EN", "EN-GB", "EN-US",
		"ES", "ET", "FI", "FR", "HU", "ID", "IT", "JA", "KO", "LT", "LV", "NB", "NL", "PL",
		"PT", "PT-BR", "PT-PT", "RO", "RU", "SK", "SL", "SV", "TR", "UK",
	}

	validSources = map[Code]bool{}
	validTargets = map[Code]bool{}
)

func init() {
	for _, c := range sourceLanguages {
		validSources[c] = true
	}
	for _, c := range targetLanguages {
		validTargets[c] = true
	}
}

// Sources returns the selectable source languages, AUTO first
func Sources() []Code {
	return append([]Code(nil), sourceLanguages...)
}

// Targets returns the selectable target languages
func Targets() []Code {
	return append([]Code(nil), targetLanguages...)
}

// IsValidSource checks if c can be used as a source language
func IsValidSource(c Code) bool {
	return validSources[c]
}

// IsValidTarget checks if c can be used as a target language
func IsValidTarget(c Code) bool {
	return validTargets[c]
}

// ParseSource normalizes s (case, underscores) and validates it as a source code
func ParseSource(s string) (Code, error) {
	c := normalize(s)
	if !IsValidSource(c) {
		return "", fmt.Errorf("unsupported source language: %q", s)
	}
	return c, nil
}

// ParseTarget normalizes s and validates it as a target code
func ParseTarget(s string) (Code, error) {
	c := normalize(s)
	if !IsValidTarget(c) {
		return "", fmt.Errorf("unsupported target language: %q", s)
	}
	return c, nil
}

func normalize(s string) Code {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "_", "-")
	return Code(strings.ToUpper(s))
}

// Pair is the currently selected source and target language
type Pair struct {
	Source Code
	Target Code
}

// DefaultPair returns AUTO → EN
func DefaultPair() Pair {
	return Pair{Source: Auto, Target: "EN"}
}

// NewPair validates both sides of a pair
func NewPair(source, target string) (Pair, error) {
	src, err := ParseSource(source)
	if err != nil {
		return Pair{}, err
	}
	tgt, err := ParseTarget(target)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Source: src, Target: tgt}, nil
}

// IsAutoDetect reports whether the source is the AUTO sentinel
func (p Pair) IsAutoDetect() bool {
	return p.Source == Auto
}

// CanSwap reports whether Swap would change the pair. Swapping is refused when
// the source is AUTO (it would become an invalid target) or when the target
// is not a valid source, e.g. "EN-GB" or "ZH-HANS".
func (p Pair) CanSwap() bool {
	return p.Source != Auto && IsValidTarget(p.Source) && IsValidSource(p.Target)
}

// Swap exchanges source and target, or returns p unchanged when CanSwap is false
func (p Pair) Swap() Pair {
	if !p.CanSwap() {
		return p
	}
	return Pair{Source: p.Target, Target: p.Source}
}

// String renders the pair as "SRC→TGT"
func (p Pair) String() string {
	return fmt.Sprintf("%s→%s", p.Source, p.Target)
}
