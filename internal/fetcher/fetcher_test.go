package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func testOptions() Options {
	return Options{BackoffBase: time.Millisecond, Timeout: 5 * time.Second}
}

func TestNew_Defaults(t *testing.T) {
	f := New(Options{}, nil)

	if f.maxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("Expected default body limit, got %d", f.maxBodyBytes)
	}

	if f.client.Timeout != DefaultTimeout {
		t.Errorf("Expected default timeout, got %v", f.client.Timeout)
	}

	if f.backoffBase != BackoffBase {
		t.Errorf("Expected default backoff, got %v", f.backoffBase)
	}
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != UserAgent {
			t.Errorf("Expected user agent %s, got %s", UserAgent, r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("Hello world."))
	}))
	defer server.Close()

	f := New(testOptions(), nil)

	page, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if string(page.Body) != "Hello world." {
		t.Errorf("Unexpected body %q", page.Body)
	}

	if !strings.HasPrefix(page.ContentType, "text/plain") {
		t.Errorf("Unexpected content type %q", page.ContentType)
	}
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("finally"))
	}))
	defer server.Close()

	f := New(testOptions(), nil)

	page, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if string(page.Body) != "finally" {
		t.Errorf("Unexpected body %q", page.Body)
	}

	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
}

func TestFetch_GivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := New(testOptions(), nil)

	_, err := f.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected an error")
	}

	if !strings.Contains(err.Error(), "failed after 3 attempts") {
		t.Errorf("Unexpected error %v", err)
	}

	if atomic.LoadInt32(&calls) != MaxRetries {
		t.Errorf("Expected %d calls, got %d", MaxRetries, calls)
	}
}

func TestFetch_NoRetryOnClientError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := New(testOptions(), nil)

	_, err := f.Fetch(context.Background(), server.URL)
	if err == nil || !strings.Contains(err.Error(), "HTTP 404") {
		t.Errorf("Expected HTTP 404 error, got %v", err)
	}

	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}

func TestFetch_BodyTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer server.Close()

	opts := testOptions()
	opts.MaxBodyBytes = 16
	f := New(opts, nil)

	_, err := f.Fetch(context.Background(), server.URL)
	if !errors.Is(err, ErrBodyTooLarge) {
		t.Errorf("Expected ErrBodyTooLarge, got %v", err)
	}
}

func TestFetch_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("never read"))
	}))
	defer server.Close()

	f := New(testOptions(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := f.Fetch(ctx, server.URL); err == nil {
		t.Error("Expected an error for a cancelled context")
	}
}

func TestFetch_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	opts := testOptions()
	opts.RequestsPerSecond = 20
	f := New(opts, nil)

	start := time.Now()
	// burst is 21, the rest wait for tokens
	for i := 0; i < 25; i++ {
		if _, err := f.Fetch(context.Background(), server.URL); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	if elapsed := time.Since(start); elapsed < 150*time.Millisecond {
		t.Errorf("Expected rate limiting to slow requests, took %v", elapsed)
	}
}
