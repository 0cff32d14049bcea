package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/firefly/text-analyzer/internal/aggregator"
	"github.com/firefly/text-analyzer/internal/processor"
	"github.com/firefly/text-analyzer/internal/search"
)

// RenderPositions prints the outcome of a word search
func RenderPositions(w io.Writer, word string, positions []int) error {
	var err error
	switch search.Classify(positions) {
	case search.NotFound:
		_, err = fmt.Fprintf(w, "%s is not part of the introduced text\n", word)
	case search.FoundOnce:
		_, err = fmt.Fprintf(w, "%s was found at the position: %d\n", word, positions[0])
	default:
		strs := make([]string, len(positions))
		for i, p := range positions {
			strs[i] = strconv.Itoa(p)
		}
		_, err = fmt.Fprintf(w, "%s was found at positions: %s\n", word, strings.Join(strs, " "))
	}
	return err
}

// FormatWord renders the most frequent word line
func FormatWord(top aggregator.WordCount, ok bool) string {
	if !ok {
		return "Most recurred word: no words found"
	}
	return fmt.Sprintf("Most recurred word: %s (occurrences: %d)", top.Word, top.Count)
}

// FormatLetter renders the most frequent letter line
func FormatLetter(top aggregator.LetterCount, ok bool) string {
	if !ok {
		return "Most recurred letter: no letters found"
	}
	return fmt.Sprintf("Most recurred letter: %c (occurrences: %d)", top.Letter, top.Count)
}

// FormatAverage renders the average word length line
func FormatAverage(avg float64) string {
	return "Average word length: " + strconv.FormatFloat(avg, 'f', -1, 64)
}

// RenderStats prints every statistic of one text
func RenderStats(w io.Writer, stats aggregator.Stats) error {
	lines := []string{
		fmt.Sprintf("Number of sentences: %d", stats.Sentences),
		fmt.Sprintf("Number of words: %d", stats.Words),
		fmt.Sprintf("Number of characters: %d", stats.Characters),
		FormatWord(stats.TopWord, stats.HasTopWord),
		FormatLetter(stats.TopLetter, stats.HasTopLetter),
		FormatAverage(stats.AverageWordLength),
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// SourceResult pairs a processed text with where it came from
type SourceResult struct {
	Source string
	Result *processor.Result
}

// SourceSummary is the per-source part of a Report
type SourceSummary struct {
	Source            string                 `json:"source"`
	Sentences         int                    `json:"sentences"`
	Words             int                    `json:"words"`
	Characters        int                    `json:"characters"`
	AverageWordLength float64                `json:"average_word_length"`
	TopWords          []aggregator.WordCount `json:"top_words"`
}

// LetterEntry is the JSON form of a letter count
type LetterEntry struct {
	Letter string `json:"letter"`
	Count  int    `json:"count"`
}

// Report represents the final analysis result for JSON output
type Report struct {
	Sources               []SourceSummary        `json:"sources"`
	TotalSentences        int                    `json:"total_sentences"`
	TotalWords            int                    `json:"total_words"`
	UniqueWords           int                    `json:"unique_words"`
	TotalCharacters       int                    `json:"total_characters"`
	AverageWordLength     float64                `json:"average_word_length"`
	MostFrequentWord      *aggregator.WordCount  `json:"most_frequent_word,omitempty"`
	MostFrequentLetter    *LetterEntry           `json:"most_frequent_letter,omitempty"`
	TopWords              []aggregator.WordCount `json:"top_words"`
	ProcessingTimeSeconds float64                `json:"processing_time_seconds"`
}

// BuildReport aggregates the results of every source
func BuildReport(results []SourceResult, topN int, elapsed time.Duration) Report {
	agg := aggregator.New()
	var words []processor.Word
	var characters []processor.Character

	report := Report{Sources: make([]SourceSummary, 0, len(results))}
	for _, r := range results {
		agg.AddResult(r.Result)
		words = append(words, r.Result.Words...)
		characters = append(characters, r.Result.Characters...)

		report.Sources = append(report.Sources, SourceSummary{
			Source:            r.Source,
			Sentences:         len(r.Result.Sentences),
			Words:             len(r.Result.Words),
			Characters:        len(r.Result.Characters),
			AverageWordLength: aggregator.AverageWordLength(r.Result.Words),
			TopWords:          aggregator.TopWords(r.Result.Words, topN),
		})
	}

	totals := agg.GetTotals()
	report.TotalSentences = totals.Sentences
	report.TotalWords = totals.Words
	report.UniqueWords = totals.UniqueWords
	report.TotalCharacters = totals.Characters
	report.AverageWordLength = aggregator.AverageWordLength(words)
	report.TopWords = agg.GetTopWords(topN)
	report.ProcessingTimeSeconds = elapsed.Seconds()

	if top, ok := aggregator.MostFrequentWord(words); ok {
		report.MostFrequentWord = &top
	}
	if top, ok := aggregator.MostFrequentLetter(characters); ok {
		report.MostFrequentLetter = &LetterEntry{Letter: string(top.Letter), Count: top.Count}
	}

	return report
}

// OutputReport writes the report as indented JSON to w
func OutputReport(w io.Writer, report Report) error {
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report to JSON: %w", err)
	}

	if _, err := fmt.Fprintln(w, string(jsonData)); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// OutputReportToFile writes the report as indented JSON to a file
func OutputReportToFile(report Report, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	if err := OutputReport(file, report); err != nil {
		return err
	}

	return file.Close()
}
