// Package source loads the text to analyze from stdin, files or URLs.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/firefly/text-analyzer/internal/fetcher"
)

// Stdin is the location that reads from standard input
const Stdin = "-"

// Fetcher downloads pages
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.Page, error)
}

// HTMLParser extracts text from HTML
type HTMLParser interface {
	ExtractText(r io.Reader) (string, error)
}

// Loader resolves a location to text
type Loader struct {
	fetcher Fetcher
	parser  HTMLParser
	stdin   io.Reader
	logger  *slog.Logger
}

// New creates a Loader reading stdin from os.Stdin
func New(f Fetcher, p HTMLParser, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		fetcher: f,
		parser:  p,
		stdin:   os.Stdin,
		logger:  logger,
	}
}

// WithStdin replaces the reader used for the "-" location
func (l *Loader) WithStdin(r io.Reader) *Loader {
	l.stdin = r
	return l
}

// Load returns the text found at location
func (l *Loader) Load(ctx context.Context, location string) (string, error) {
	switch {
	case location == Stdin:
		data, err := io.ReadAll(l.stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil

	case isURL(location):
		return l.loadURL(ctx, location)

	default:
		return l.loadFile(location)
	}
}

func (l *Loader) loadURL(ctx context.Context, url string) (string, error) {
	page, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}

	if !isHTMLContentType(page.ContentType) {
		return string(page.Body), nil
	}

	text, err := l.parser.ExtractText(bytes.NewReader(page.Body))
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", url, err)
	}
	return text, nil
}

func (l *Loader) loadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading text file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".html" && ext != ".htm" {
		return string(data), nil
	}

	l.logger.Debug("parsing HTML file", "path", path)
	text, err := l.parser.ExtractText(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}
	return text, nil
}

func isURL(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func isHTMLContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
