// Package language guesses the language a transcript is spoken in.
package language

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
)

// sampleLimit caps how much of a transcript is fed to the detector.
const sampleLimit = 4000

// Detector returns an ISO 639-1 code, or "" when unsure.
type Detector interface {
	Detect(text string) string
}

// Lingua wraps a lingua-go detector. Building it loads every language
// model, so it is built once on first use.
type Lingua struct {
	once     sync.Once
	detector lingua.LanguageDetector
}

func NewLingua() *Lingua {
	return &Lingua{}
}

func (l *Lingua) Detect(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = sample(text)
	l.once.Do(func() {
		l.detector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			WithLowAccuracyMode().
			Build()
	})
	lang, ok := l.detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}

// sample returns at most sampleLimit bytes of text, cut on a rune boundary.
func sample(text string) string {
	if len(text) <= sampleLimit {
		return text
	}
	cut := sampleLimit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// None never detects anything.
type None struct{}

func (None) Detect(string) string { return "" }
