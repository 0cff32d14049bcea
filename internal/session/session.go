// Package session holds the text a user is working on and its processed state.
package session

import (
	"errors"
	"log/slog"

	"github.com/firefly/text-analyzer/internal/aggregator"
	"github.com/firefly/text-analyzer/internal/processor"
	"github.com/firefly/text-analyzer/internal/search"
)

var (
	// ErrNoText is returned when processing is requested before any text was added
	ErrNoText = errors.New("no text added")

	// ErrNotProcessed is returned when derived data is requested before processing
	ErrNotProcessed = errors.New("text not processed")
)

// State is the processing state of a Session
type State int

const (
	Unprocessed State = iota
	Processed
)

func (s State) String() string {
	if s == Processed {
		return "processed"
	}
	return "unprocessed"
}

// Session owns one text and, once processed, its derived projections
type Session struct {
	processor *processor.Processor
	logger    *slog.Logger

	text    string
	hasText bool
	result  *processor.Result
}

// New creates an empty Session
func New(p *processor.Processor, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{processor: p, logger: logger}
}

// SetText replaces the text and resets the session to Unprocessed
func (s *Session) SetText(text string) {
	s.text = text
	s.hasText = true
	s.result = nil
	s.logger.Debug("text added", "bytes", len(text))
}

// Text returns the current text and whether one was added
func (s *Session) Text() (string, bool) {
	return s.text, s.hasText
}

// State reports whether the current text has been processed
func (s *Session) State() State {
	if s.result == nil {
		return Unprocessed
	}
	return Processed
}

// Process segments the current text
func (s *Session) Process() (*processor.Result, error) {
	if !s.hasText {
		return nil, ErrNoText
	}

	s.result = s.processor.ProcessText(s.text)
	s.logger.Debug("text processed",
		"sentences", len(s.result.Sentences),
		"words", len(s.result.Words),
		"characters", len(s.result.Characters))
	return s.result, nil
}

// Result returns the processed projections
func (s *Session) Result() (*processor.Result, error) {
	if s.result == nil {
		return nil, ErrNotProcessed
	}
	return s.result, nil
}

// Stats computes statistics for the processed text
func (s *Session) Stats() (aggregator.Stats, error) {
	result, err := s.Result()
	if err != nil {
		return aggregator.Stats{}, err
	}
	return aggregator.Compute(result), nil
}

// Search finds whole-word positions of word in the current text. It does not
// require processing.
func (s *Session) Search(word string) ([]int, error) {
	if !s.hasText {
		return nil, ErrNoText
	}

	positions := search.FindWordPositions(s.text, word)
	s.logger.Debug("word searched", "word", word, "matches", len(positions))
	return positions, nil
}
