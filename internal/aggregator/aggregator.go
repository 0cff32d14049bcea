package aggregator

import (
	"sort"

	"github.com/firefly/text-analyzer/internal/processor"
)

// WordCount represents a word and its frequency
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// LetterCount represents a lower-case ASCII letter and its frequency
type LetterCount struct {
	Letter byte `json:"-"`
	Count  int  `json:"count"`
}

// Stats summarises one processed text
type Stats struct {
	Sentences         int
	Words             int
	Characters        int
	AverageWordLength float64
	TopWord           WordCount
	HasTopWord        bool
	TopLetter         LetterCount
	HasTopLetter      bool
}

// Compute derives Stats from a processing result
func Compute(result *processor.Result) Stats {
	stats := Stats{
		Sentences:         len(result.Sentences),
		Words:             len(result.Words),
		Characters:        len(result.Characters),
		AverageWordLength: AverageWordLength(result.Words),
	}
	stats.TopWord, stats.HasTopWord = MostFrequentWord(result.Words)
	stats.TopLetter, stats.HasTopLetter = MostFrequentLetter(result.Characters)
	return stats
}

// AverageWordLength returns the mean byte length of words, 0 when there are none
func AverageWordLength(words []processor.Word) float64 {
	if len(words) == 0 {
		return 0
	}

	total := 0
	for _, w := range words {
		total += len(w)
	}
	return float64(total) / float64(len(words))
}

// MostFrequentWord returns the most frequent word, compared case-sensitively.
// Ties go to the word that occurs first. ok is false when words is empty.
func MostFrequentWord(words []processor.Word) (top WordCount, ok bool) {
	counts := make(map[processor.Word]int, len(words))
	var order []processor.Word

	for _, w := range words {
		if _, seen := counts[w]; !seen {
			order = append(order, w)
		}
		counts[w]++
	}

	for _, w := range order {
		if counts[w] > top.Count {
			top = WordCount{Word: string(w), Count: counts[w]}
			ok = true
		}
	}
	return top, ok
}

// MostFrequentLetter returns the most frequent ASCII letter, folded to lower case.
// Ties go to the letter that occurs first. ok is false when there are no letters.
func MostFrequentLetter(characters []processor.Character) (top LetterCount, ok bool) {
	var counts [26]int
	var order []byte

	for _, c := range characters {
		letter, isLetter := foldLetter(byte(c))
		if !isLetter {
			continue
		}
		if counts[letter-'a'] == 0 {
			order = append(order, letter)
		}
		counts[letter-'a']++
	}

	for _, letter := range order {
		if n := counts[letter-'a']; n > top.Count {
			top = LetterCount{Letter: letter, Count: n}
			ok = true
		}
	}
	return top, ok
}

func foldLetter(c byte) (byte, bool) {
	switch {
	case 'a' <= c && c <= 'z':
		return c, true
	case 'A' <= c && c <= 'Z':
		return c + ('a' - 'A'), true
	default:
		return 0, false
	}
}

// TopWords returns the n most frequent words, by count (descending)
// then by first occurrence
func TopWords(words []processor.Word, n int) []WordCount {
	agg := New()
	agg.AddWords(words)
	return agg.GetTopWords(n)
}

// Aggregator collects word frequencies over one or more texts
type Aggregator struct {
	wordCounts      map[string]int
	firstSeen       map[string]int
	totalWords      int
	totalSentences  int
	totalCharacters int
	textsProcessed  int
}

// New creates a new Aggregator
func New() *Aggregator {
	return &Aggregator{
		wordCounts: make(map[string]int),
		firstSeen:  make(map[string]int),
	}
}

// AddResult adds a processed text to the aggregate
func (a *Aggregator) AddResult(result *processor.Result) {
	a.AddWords(result.Words)
	a.totalSentences += len(result.Sentences)
	a.totalCharacters += len(result.Characters)
	a.textsProcessed++
}

// AddWords counts words, remembering the order in which they first appeared
func (a *Aggregator) AddWords(words []processor.Word) {
	for _, w := range words {
		key := string(w)
		if _, seen := a.firstSeen[key]; !seen {
			a.firstSeen[key] = len(a.firstSeen)
		}
		a.wordCounts[key]++
	}
	a.totalWords += len(words)
}

// GetTopWords returns the top N words by frequency
func (a *Aggregator) GetTopWords(n int) []WordCount {
	words := make([]WordCount, 0, len(a.wordCounts))
	for word, count := range a.wordCounts {
		words = append(words, WordCount{Word: word, Count: count})
	}

	sort.Slice(words, func(i, j int) bool {
		if words[i].Count == words[j].Count {
			return a.firstSeen[words[i].Word] < a.firstSeen[words[j].Word]
		}
		return words[i].Count > words[j].Count
	})

	if n < 0 {
		n = 0
	}
	if n > len(words) {
		n = len(words)
	}
	return words[:n]
}

// Totals holds the running counts of an Aggregator
type Totals struct {
	Texts       int
	Sentences   int
	Words       int
	UniqueWords int
	Characters  int
}

// GetTotals returns current aggregate counts
func (a *Aggregator) GetTotals() Totals {
	return Totals{
		Texts:       a.textsProcessed,
		Sentences:   a.totalSentences,
		Words:       a.totalWords,
		UniqueWords: len(a.wordCounts),
		Characters:  a.totalCharacters,
	}
}
