package search

import (
	"strings"

	"github.com/firefly/text-analyzer/internal/delimiter"
)

// Outcome tells the caller how many matches a search produced
type Outcome int

const (
	NotFound Outcome = iota
	FoundOnce
	FoundMany
)

func (o Outcome) String() string {
	switch o {
	case FoundOnce:
		return "found once"
	case FoundMany:
		return "found many"
	default:
		return "not found"
	}
}

// Classify maps a list of positions to its Outcome
func Classify(positions []int) Outcome {
	switch len(positions) {
	case 0:
		return NotFound
	case 1:
		return FoundOnce
	default:
		return FoundMany
	}
}

// FindWordPositions returns the ascending start offsets of every whole-word,
// ASCII case-insensitive occurrence of word in text. An empty word matches nothing.
func FindWordPositions(text, word string) []int {
	if word == "" {
		return nil
	}

	loweredText := lowerASCII(text)
	loweredWord := lowerASCII(word)

	var positions []int
	start := 0
	for start <= len(loweredText) {
		idx := strings.Index(loweredText[start:], loweredWord)
		if idx < 0 {
			break
		}

		pos := start + idx
		end := pos + len(loweredWord)
		if isLeftBoundary(loweredText, pos) && isRightBoundary(loweredText, end) {
			positions = append(positions, pos)
			start = end
			continue
		}
		start = pos + 1
	}

	return positions
}

func isLeftBoundary(s string, pos int) bool {
	return pos == 0 || delimiter.Search.IsDelimiter(s[pos-1])
}

func isRightBoundary(s string, end int) bool {
	return end == len(s) || delimiter.Search.IsDelimiter(s[end])
}

// lowerASCII folds A-Z only, so byte offsets stay valid in the unfolded text
func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
