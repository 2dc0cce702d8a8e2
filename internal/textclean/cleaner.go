// Package textclean normalizes and tokenizes SMS text the same way the
// statistical model's training pipeline did, so the vectorizer's vocabulary
// lines up with what it sees at prediction time.
//
// Accented letters are folded to ASCII and tokens are snowball stems, so an
// exported vocabulary must be built by running the training corpus through
// this package; a vocabulary produced by any other cleaner will miss terms.
package textclean

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/kljensen/snowball"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MinTokenLength is the shortest token kept after cleaning.
const MinTokenLength = 4

var (
	moneyRegex    = regexp.MustCompile(`\$`)
	digitsRegex   = regexp.MustCompile(`\d+`)
	urlRegex      = regexp.MustCompile(`http\S+|www\.\S+`)
	nonAlphaRegex = regexp.MustCompile(`[^a-z\s]`)
)

// Cleaner turns raw text into lemmatized tokens. Stems are memoized, so a
// Cleaner should be shared rather than created per message.
type Cleaner struct {
	cache    map[string]string
	language string
	mu       sync.RWMutex
}

// NewCleaner creates an English cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{
		language: "english",
		cache:    make(map[string]string),
	}
}

var defaultCleaner = NewCleaner()

// Preprocess cleans text with the shared default cleaner.
func Preprocess(text string) []string {
	return defaultCleaner.Preprocess(text)
}

// Preprocess lowercases text, replaces money signs and numbers with
// placeholder words, strips URLs and non-letters, then drops stopwords and
// short tokens and stems what remains.
func (c *Cleaner) Preprocess(text string) []string {
	t := strings.ToLower(fold(text))

	// Numbers are replaced before URLs are stripped.
	t = moneyRegex.ReplaceAllString(t, " money ")
	t = digitsRegex.ReplaceAllString(t, " number ")
	t = urlRegex.ReplaceAllString(t, " ")
	t = nonAlphaRegex.ReplaceAllString(t, " ")

	fields := strings.Fields(t)
	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if IsStopWord(tok) || len(tok) < MinTokenLength {
			continue
		}
		tokens = append(tokens, c.stem(tok))
	}

	return tokens
}

func (c *Cleaner) stem(word string) string {
	c.mu.RLock()
	if cached, found := c.cache[word]; found {
		c.mu.RUnlock()
		return cached
	}
	c.mu.RUnlock()

	stemmed, err := snowball.Stem(word, c.language, true)
	if err != nil {
		stemmed = word
	}

	c.mu.Lock()
	c.cache[word] = stemmed
	c.mu.Unlock()

	return stemmed
}

// CacheSize returns the number of memoized stems.
func (c *Cleaner) CacheSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// fold decomposes compatibility characters and drops combining marks, so
// "café" becomes "cafe" and fullwidth digits become ASCII digits.
func fold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
