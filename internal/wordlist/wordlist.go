package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// WordList holds query words in the order they were listed
type WordList struct {
	words []string
	seen  map[string]bool
}

// New loads a word list from a file with one query per line.
// Blank lines and lines starting with '#' are skipped; repeats are dropped.
func New(filename string) (*WordList, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening word list file: %w", err)
	}
	defer file.Close()

	wl := &WordList{seen: make(map[string]bool)}
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		wl.Add(word)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading word list file: %w", err)
	}

	return wl, nil
}

// Add appends word unless it is already listed. Matching is exact, so "cat"
// and "Cat" are separate queries even though the search folds case.
func (wl *WordList) Add(word string) {
	if word == "" || wl.seen[word] {
		return
	}
	if wl.seen == nil {
		wl.seen = make(map[string]bool)
	}
	wl.seen[word] = true
	wl.words = append(wl.words, word)
}

// Words returns the listed words
func (wl *WordList) Words() []string {
	return wl.words
}

// Size returns the number of words in the list
func (wl *WordList) Size() int {
	return len(wl.words)
}
