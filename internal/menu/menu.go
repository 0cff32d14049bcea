// Package menu implements the interactive text analysis menu.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/firefly/text-analyzer/internal/aggregator"
	outputio "github.com/firefly/text-analyzer/internal/io"
	"github.com/firefly/text-analyzer/internal/session"
)

// Option is a menu entry
type Option int

const (
	Exit Option = iota
	AddText
	Process
	CountSentences
	CountWords
	CountCharacters
	MostFrequentWord
	MostFrequentLetter
	AverageWordLength
	ShowText
	ShowWords
	ShowSentences
	ShowCharacters
	SearchWord
)

var descriptions = []string{
	Exit:               "Exit program",
	AddText:            "Add text",
	Process:            "Process sentences, characters, and words",
	CountSentences:     "Display number of sentences",
	CountWords:         "Display number of words",
	CountCharacters:    "Display number of characters",
	MostFrequentWord:   "Display the most recurrent word",
	MostFrequentLetter: "Display the most recurrent letter",
	AverageWordLength:  "Display the average length of a word",
	ShowText:           "Display full text",
	ShowWords:          "Display words",
	ShowSentences:      "Display sentences",
	ShowCharacters:     "Display characters",
	SearchWord:         "Search a word",
}

func (o Option) String() string {
	if o < 0 || int(o) >= len(descriptions) {
		return "unknown"
	}
	return descriptions[o]
}

// Reader supplies user input to the menu. Both methods return io.EOF when
// the user closes the input.
type Reader interface {
	// ReadOption returns the raw text typed at the option prompt
	ReadOption() (string, error)
	// ReadLine returns one line of input after showing label
	ReadLine(label string) (string, error)
}

// Menu drives a Session from user choices
type Menu struct {
	session *session.Session
	reader  Reader
	out     io.Writer
	logger  *slog.Logger
}

// New creates a Menu
func New(s *session.Session, r Reader, out io.Writer, logger *slog.Logger) *Menu {
	if logger == nil {
		logger = slog.Default()
	}
	return &Menu{session: s, reader: r, out: out, logger: logger}
}

// Run shows the menu until the user picks Exit, closes the input or ctx is
// cancelled
func (m *Menu) Run(ctx context.Context) {
	m.println()
	m.println("Hello! This is the text analyzer:")

	for ctx.Err() == nil {
		m.displayMenu()

		input, err := m.reader.ReadOption()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				m.logger.Warn("reading option", "err", err)
			}
			break
		}
		if ctx.Err() != nil {
			break
		}

		if done := m.Execute(input); done {
			return
		}
	}

	m.logger.Debug("menu closed", "err", ctx.Err())
	m.println("Exiting program.")
}

func (m *Menu) displayMenu() {
	m.println()
	m.println("Menu:")
	for i, d := range descriptions {
		m.printf("%d - %s\n", i, d)
	}
	m.println()
}

// Execute runs one menu choice and reports whether the menu should exit
func (m *Menu) Execute(input string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 0 || n >= len(descriptions) {
		m.println("Invalid option. Try again!")
		return false
	}

	option := Option(n)
	m.logger.Debug("menu option", "option", n, "name", option.String(), "state", m.session.State())

	switch option {
	case Exit:
		m.println("Exiting program.")
		return true
	case AddText:
		text, err := m.reader.ReadLine("Enter the text: ")
		if err != nil {
			m.logger.Debug("add text cancelled", "err", err)
			return false
		}
		m.session.SetText(text)
	case Process:
		if _, err := m.session.Process(); err != nil {
			m.renderError(err)
			return false
		}
		m.println("Text processed successfully.")
	case SearchWord:
		m.searchWord()
	default:
		m.showProcessed(option)
	}
	return false
}

func (m *Menu) searchWord() {
	if _, ok := m.session.Text(); !ok {
		m.renderError(session.ErrNoText)
		return
	}

	line, err := m.reader.ReadLine("Add a word: ")
	if err != nil {
		m.logger.Debug("search cancelled", "err", err)
		return
	}

	word := strings.TrimSpace(line)
	positions, err := m.session.Search(word)
	if err != nil {
		m.renderError(err)
		return
	}
	if err := outputio.RenderPositions(m.out, word, positions); err != nil {
		m.logger.Warn("rendering positions", "err", err)
	}
}

// showProcessed handles every option that needs a processed text
func (m *Menu) showProcessed(option Option) {
	result, err := m.session.Result()
	if err != nil {
		m.renderError(err)
		return
	}

	switch option {
	case ShowWords:
		for _, w := range result.Words {
			m.println(string(w))
		}
		return
	case ShowSentences:
		for _, s := range result.Sentences {
			m.println(string(s))
		}
		return
	case ShowCharacters:
		for _, c := range result.Characters {
			m.out.Write([]byte{byte(c), '\n'})
		}
		return
	}

	m.displayFullText()

	switch option {
	case CountSentences:
		m.printf("Number of sentences: %d\n", len(result.Sentences))
	case CountWords:
		m.printf("Number of words: %d\n", len(result.Words))
	case CountCharacters:
		m.printf("Number of characters: %d\n", len(result.Characters))
	case MostFrequentWord:
		m.println(outputio.FormatWord(aggregator.MostFrequentWord(result.Words)))
	case MostFrequentLetter:
		m.println(outputio.FormatLetter(aggregator.MostFrequentLetter(result.Characters)))
	case AverageWordLength:
		m.println(outputio.FormatAverage(aggregator.AverageWordLength(result.Words)))
	}
}

func (m *Menu) displayFullText() {
	text, _ := m.session.Text()
	m.printf("Text introduced: %s\n", text)
}

func (m *Menu) renderError(err error) {
	switch {
	case errors.Is(err, session.ErrNoText):
		m.println("Add a text first.")
	case errors.Is(err, session.ErrNotProcessed):
		m.println("Process the text first.")
	default:
		m.printf("Error: %v\n", err)
	}
}

func (m *Menu) println(a ...interface{}) {
	fmt.Fprintln(m.out, a...)
}

func (m *Menu) printf(format string, a ...interface{}) {
	fmt.Fprintf(m.out, format, a...)
}
