// Package language holds the source and target language tables offered by the
// translation endpoint, the AUTO auto-detect sentinel, and the language pair
// with its swap rule.
package language
