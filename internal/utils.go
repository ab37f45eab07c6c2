package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// GenerateJobID creates a unique ID for a translation job based on timestamp and source text
// Format: epochMillis_md5(text)[:8]
func GenerateJobID(text string) string {
	epochMillis := time.Now().UnixNano() / 1000000

	hash := md5.Sum([]byte(text))
	hashStr := hex.EncodeToString(hash[:])[:8]

	return fmt.Sprintf("%d_%s", epochMillis, hashStr)
}

// CharCount returns the number of characters (runes) in s, so "你好" counts as 2
func CharCount(s string) int {
	return utf8.RuneCountInString(s)
}

// IsBlank reports whether s contains nothing but whitespace
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Truncate shortens s to at most max runes, appending an ellipsis when cut
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "…"
}
