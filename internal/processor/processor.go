package processor

import (
	"strings"

	"github.com/firefly/text-analyzer/internal/delimiter"
)

// Sentence is a normalized run of text ending at a sentence delimiter
type Sentence string

// Word is a non-empty token with no surrounding word delimiters
type Word string

// Character is a single byte of a normalized sentence
type Character byte

// Result holds the projections of one text
type Result struct {
	Sentences  []Sentence
	Words      []Word
	Characters []Character
}

// Processor runs the segmentation pipeline
type Processor struct {
	sentenceDelims delimiter.Set
	wordDelims     delimiter.Set
}

// New creates a new Processor using the default delimiter sets
func New() *Processor {
	return &Processor{
		sentenceDelims: delimiter.Sentence,
		wordDelims:     delimiter.Word,
	}
}

// ProcessText splits text into sentences, then derives words and characters from them
func (p *Processor) ProcessText(text string) *Result {
	sentences := p.splitSentences(text)

	return &Result{
		Sentences:  sentences,
		Words:      p.splitWords(sentences),
		Characters: ExtractCharacters(sentences),
	}
}

// SplitSentences splits text on '.', '!' and '?'
func SplitSentences(text string) []Sentence {
	return New().splitSentences(text)
}

// SplitWords splits sentences into a flat sequence of words
func SplitWords(sentences []Sentence) []Word {
	return New().splitWords(sentences)
}

func (p *Processor) splitSentences(text string) []Sentence {
	var sentences []Sentence
	start := 0

	for i := 0; i < len(text); i++ {
		if !p.sentenceDelims.IsDelimiter(text[i]) {
			continue
		}
		if s := normalizeSpaces(text[start : i+1]); s != "" {
			sentences = append(sentences, Sentence(s))
		}
		start = i + 1
	}

	if start < len(text) {
		// a whitespace-only tail normalizes to nothing and is dropped
		if s := normalizeSpaces(text[start:]); s != "" {
			sentences = append(sentences, Sentence(s))
		}
	}

	return sentences
}

// normalizeSpaces collapses runs of ' ' and strips leading spaces
func normalizeSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == ' ' && i > 0 && s[i-1] == ' ' {
			continue
		}
		b.WriteByte(s[i])
	}

	return strings.TrimLeft(b.String(), " ")
}

func (p *Processor) splitWords(sentences []Sentence) []Word {
	var words []Word

	for _, sentence := range sentences {
		var current []byte
		for i := 0; i < len(sentence); i++ {
			c := sentence[i]
			if !p.wordDelims.IsDelimiter(c) {
				current = append(current, c)
				continue
			}
			if len(current) > 0 {
				words = append(words, Word(p.trimTrailingDelimiter(current)))
				current = current[:0]
			}
		}
		if len(current) > 0 {
			words = append(words, Word(p.trimTrailingDelimiter(current)))
		}
	}

	return words
}

// trimTrailingDelimiter drops at most one trailing word delimiter from a
// finished word buffer
func (p *Processor) trimTrailingDelimiter(buf []byte) string {
	if n := len(buf); n > 0 && p.wordDelims.IsDelimiter(buf[n-1]) {
		buf = buf[:n-1]
	}
	return string(buf)
}

// ExtractCharacters flattens sentences into their bytes, in order
func ExtractCharacters(sentences []Sentence) []Character {
	total := 0
	for _, s := range sentences {
		total += len(s)
	}

	characters := make([]Character, 0, total)
	for _, s := range sentences {
		for i := 0; i < len(s); i++ {
			characters = append(characters, Character(s[i]))
		}
	}

	return characters
}
