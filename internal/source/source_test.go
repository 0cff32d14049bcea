package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/firefly/text-analyzer/internal/fetcher"
	"github.com/firefly/text-analyzer/internal/parser"
)

func newLoader() *Loader {
	f := fetcher.New(fetcher.Options{BackoffBase: time.Millisecond}, nil)
	return New(f, parser.New("", nil), nil)
}

func TestLoad_Stdin(t *testing.T) {
	l := newLoader().WithStdin(strings.NewReader("typed text"))

	text, err := l.Load(context.Background(), Stdin)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if text != "typed text" {
		t.Errorf("Expected typed text, got %q", text)
	}
}

func TestLoad_PlainFile(t *testing.T) {
	text, err := newLoader().Load(context.Background(), filepath.Join("testdata", "plain.txt"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if text != "The cat sat on the mat. The Cat was happy!\n" {
		t.Errorf("Unexpected text %q", text)
	}
}

func TestLoad_HTMLFile(t *testing.T) {
	text, err := newLoader().Load(context.Background(), filepath.Join("testdata", "page.html"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if text != "Hello world. How are you? Fine!" {
		t.Errorf("Unexpected text %q", text)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := newLoader().Load(context.Background(), filepath.Join("testdata", "missing.txt"))

	if err == nil || !strings.Contains(err.Error(), "reading text file") {
		t.Errorf("Expected a file error, got %v", err)
	}
}

func TestLoad_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/page":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte("<html><body><main><p>From   the web.</p></main></body></html>"))
		default:
			w.Header().Set("Content-Type", "text/plain")
			w.Write([]byte("<b>kept verbatim</b>"))
		}
	}))
	defer server.Close()

	l := newLoader()

	text, err := l.Load(context.Background(), server.URL+"/page")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if text != "From the web." {
		t.Errorf("Unexpected HTML text %q", text)
	}

	text, err = l.Load(context.Background(), server.URL+"/raw")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if text != "<b>kept verbatim</b>" {
		t.Errorf("Unexpected plain text %q", text)
	}
}

func TestLoad_URLError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := newLoader().Load(context.Background(), server.URL)

	if err == nil || !strings.Contains(err.Error(), "fetching") {
		t.Errorf("Expected a fetch error, got %v", err)
	}
}

func TestIsHTMLContentType(t *testing.T) {
	cases := map[string]bool{
		"text/html":                true,
		"TEXT/HTML; charset=utf-8": true,
		"application/xhtml+xml":    true,
		"text/plain":               false,
		"":                         false,
		"application/json; q=what": false,
	}

	for contentType, expected := range cases {
		if got := isHTMLContentType(contentType); got != expected {
			t.Errorf("%q: expected %v, got %v", contentType, expected, got)
		}
	}
}
