// Package wordlist loads the word pools used for offline practice text.
package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

// Load reads path and keeps the words accepted by lang's filter. A missing file
// falls back to the built-in pool for lang.
func Load(path, lang string) ([]string, error) {
	words, err := LoadWords(path)
	if errors.Is(err, os.ErrNotExist) || path == "" {
		if builtin := Default(lang); len(builtin) > 0 {
			return builtin, nil
		}
		return nil, fmt.Errorf("no word list for %q at %s", lang, path)
	}
	if err != nil {
		return nil, err
	}
	filter := FilterForLang(lang)
	kept := words[:0]
	for _, w := range words {
		if filter(w) {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("word list %s has no usable %s words", path, lang)
	}
	return kept, nil
}
