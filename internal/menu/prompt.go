package menu

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"
)

// PromptReader reads input from the terminal with go-prompt
type PromptReader struct {
	ctx         context.Context
	history     []string
	suggestions []prompt.Suggest

	// state of the current prompt.Input call
	submitted   bool
	interrupted bool
}

// NewPromptReader creates a terminal Reader that completes menu options.
// A prompt stops at the next keystroke once ctx is cancelled.
func NewPromptReader(ctx context.Context) *PromptReader {
	return &PromptReader{ctx: ctx, suggestions: optionSuggestions()}
}

func optionSuggestions() []prompt.Suggest {
	s := make([]prompt.Suggest, len(descriptions))
	for i, d := range descriptions {
		s[i] = prompt.Suggest{Text: strconv.Itoa(i), Description: d}
	}
	return s
}

// ReadOption implements Reader
func (r *PromptReader) ReadOption() (string, error) {
	in, err := r.input("Select an option: ", r.completer,
		prompt.OptionTitle("text-analyzer"),
		prompt.OptionPrefixTextColor(prompt.Yellow),
		prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
		prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
		prompt.OptionSuggestionBGColor(prompt.DarkGray),
		prompt.OptionMaxSuggestion(uint16(len(r.suggestions))),
	)
	return strings.TrimSpace(in), err
}

// ReadLine implements Reader
func (r *PromptReader) ReadLine(label string) (string, error) {
	in, err := r.input(label, noSuggestions,
		prompt.OptionPrefixTextColor(prompt.Yellow),
		prompt.OptionHistory(r.history),
	)
	if err == nil && in != "" {
		r.history = append(r.history, in)
	}
	return in, err
}

// input runs one prompt. prompt.Input returns "" both for an empty line and
// for Ctrl-D, so Enter is tracked through a key binding; anything that ends
// the prompt without Enter is io.EOF.
func (r *PromptReader) input(label string, completer prompt.Completer, opts ...prompt.Option) (string, error) {
	r.submitted, r.interrupted = false, false

	opts = append(opts,
		prompt.OptionAddKeyBind(
			prompt.KeyBind{Key: prompt.Enter, Fn: r.submit},
			prompt.KeyBind{Key: prompt.ControlM, Fn: r.submit},
			prompt.KeyBind{Key: prompt.ControlC, Fn: r.interrupt},
		),
		prompt.OptionSetExitCheckerOnInput(r.shouldExit),
	)

	in := prompt.Input(label, completer, opts...)
	if !r.submitted || r.ctx.Err() != nil {
		return "", io.EOF
	}
	return in, nil
}

func (r *PromptReader) submit(*prompt.Buffer) {
	r.submitted = true
}

func (r *PromptReader) interrupt(*prompt.Buffer) {
	r.interrupted = true
}

func (r *PromptReader) shouldExit(string, bool) bool {
	return r.interrupted || r.ctx.Err() != nil
}

func (r *PromptReader) completer(d prompt.Document) []prompt.Suggest {
	return prompt.FilterHasPrefix(r.suggestions, d.GetWordBeforeCursor(), true)
}

func noSuggestions(prompt.Document) []prompt.Suggest {
	return nil
}
