package parser

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoContent is returned when no selector yields any text
var ErrNoContent = errors.New("no text content found")

// DefaultSelectors are tried in order after the configured selector
var DefaultSelectors = []string{"article", "main", "body"}

// Parser extracts readable text from HTML
type Parser struct {
	selectors []string
	logger    *slog.Logger
}

// New creates a new Parser. A non-empty selector is tried before the defaults.
func New(selector string, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}

	selectors := make([]string, 0, len(DefaultSelectors)+1)
	if s := strings.TrimSpace(selector); s != "" {
		selectors = append(selectors, s)
	}
	selectors = append(selectors, DefaultSelectors...)

	return &Parser{
		selectors: selectors,
		logger:    logger,
	}
}

// ExtractText returns the text of the first selector that matches non-empty
// content, with whitespace runs collapsed to single spaces
func (p *Parser) ExtractText(reader io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	// never part of the readable text
	doc.Find("script, style, noscript, template").Remove()

	for _, sel := range p.selectors {
		content := doc.Find(sel)
		if content.Length() == 0 {
			continue
		}

		var parts []string
		content.Each(func(_ int, s *goquery.Selection) {
			if text := collapseSpace(s.Text()); text != "" {
				parts = append(parts, text)
			}
		})

		if len(parts) > 0 {
			text := strings.Join(parts, " ")
			p.logger.Debug("extracted text", "selector", sel, "bytes", len(text))
			return text, nil
		}
	}

	return "", ErrNoContent
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
