package io

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/firefly/text-analyzer/internal/aggregator"
	"github.com/firefly/text-analyzer/internal/processor"
)

func TestRenderPositions(t *testing.T) {
	cases := []struct {
		name      string
		positions []int
		expected  string
	}{
		{"none", nil, "cat is not part of the introduced text\n"},
		{"one", []int{4}, "cat was found at the position: 4\n"},
		{"many", []int{4, 28}, "cat was found at positions: 4 28\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := RenderPositions(&buf, "cat", tc.positions); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if buf.String() != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, buf.String())
			}
		})
	}
}

func TestRenderStats(t *testing.T) {
	stats := aggregator.Compute(processor.New().ProcessText("aab. b b"))

	var buf bytes.Buffer
	if err := RenderStats(&buf, stats); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := strings.Join([]string{
		"Number of sentences: 2",
		"Number of words: 3",
		"Number of characters: 7",
		"Most recurred word: b (occurrences: 2)",
		"Most recurred letter: b (occurrences: 3)",
		"Average word length: 1.6666666666666667",
	}, "\n") + "\n"

	if buf.String() != expected {
		t.Errorf("Expected:\n%s\ngot:\n%s", expected, buf.String())
	}
}

func TestRenderStats_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderStats(&buf, aggregator.Stats{}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "no words found") || !strings.Contains(output, "no letters found") {
		t.Errorf("Expected empty markers, got %q", output)
	}

	if !strings.Contains(output, "Average word length: 0\n") {
		t.Errorf("Expected zero average, got %q", output)
	}
}

func TestBuildReport(t *testing.T) {
	p := processor.New()
	results := []SourceResult{
		{Source: "a.txt", Result: p.ProcessText("Go is fun. Go is fast!")},
		{Source: "b.txt", Result: p.ProcessText("fun fun")},
	}

	report := BuildReport(results, 2, 1500*time.Millisecond)

	if len(report.Sources) != 2 || report.Sources[1].Source != "b.txt" {
		t.Fatalf("Unexpected sources %+v", report.Sources)
	}

	expectedTop := []aggregator.WordCount{{Word: "Go", Count: 2}, {Word: "is", Count: 2}}
	if !reflect.DeepEqual(report.Sources[0].TopWords, expectedTop) {
		t.Errorf("Expected per-source top words %v, got %v", expectedTop, report.Sources[0].TopWords)
	}

	if report.TotalSentences != 3 || report.TotalWords != 8 || report.UniqueWords != 4 {
		t.Errorf("Unexpected totals %+v", report)
	}

	if report.MostFrequentWord == nil || report.MostFrequentWord.Word != "fun" || report.MostFrequentWord.Count != 3 {
		t.Errorf("Unexpected most frequent word %+v", report.MostFrequentWord)
	}

	if len(report.TopWords) != 2 || report.TopWords[1].Word != "Go" {
		t.Errorf("Unexpected top words %+v", report.TopWords)
	}

	if report.ProcessingTimeSeconds != 1.5 {
		t.Errorf("Expected 1.5 seconds, got %v", report.ProcessingTimeSeconds)
	}
}

func TestOutputReport_JSON(t *testing.T) {
	report := BuildReport([]SourceResult{
		{Source: "-", Result: processor.New().ProcessText("")},
	}, 10, 0)

	var buf bytes.Buffer
	if err := OutputReport(&buf, report); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}

	if _, present := decoded["most_frequent_word"]; present {
		t.Error("Expected most_frequent_word to be omitted for empty text")
	}

	if decoded["total_words"].(float64) != 0 {
		t.Errorf("Expected zero words, got %v", decoded["total_words"])
	}
}

func TestOutputReportToFile(t *testing.T) {
	report := BuildReport([]SourceResult{
		{Source: "x", Result: processor.New().ProcessText("Hello there.")},
	}, 5, 0)
	path := filepath.Join(t.TempDir(), "report.json")

	if err := OutputReportToFile(report, path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}

	if decoded.MostFrequentLetter == nil || decoded.MostFrequentLetter.Letter != "e" {
		t.Errorf("Unexpected letter %+v", decoded.MostFrequentLetter)
	}
}

func TestOutputReportToFile_BadPath(t *testing.T) {
	err := OutputReportToFile(Report{}, filepath.Join(t.TempDir(), "missing", "report.json"))

	if err == nil || !strings.Contains(err.Error(), "creating output file") {
		t.Errorf("Expected a create error, got %v", err)
	}
}
