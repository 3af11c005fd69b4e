// Package ner provides person-name recognition for resume text. Recognizers are
// expensive to build, so they are handed out through a Provider that loads them
// once and shares them read-only afterwards.
package ner

import (
	"context"
	"fmt"
)

// LabelPerson is the entity label reported for person names.
const LabelPerson = "PERSON"

// Recognizer finds PERSON-labeled spans in text.
type Recognizer interface {
	FindPersons(ctx context.Context, text string) ([]string, error)
}

// Provider hands out a ready Recognizer, loading it on first use.
type Provider interface {
	Recognizer() (Recognizer, error)
}

// RecognizerFunc adapts a function to the Recognizer interface.
type RecognizerFunc func(ctx context.Context, text string) ([]string, error)

// FindPersons calls f.
func (f RecognizerFunc) FindPersons(ctx context.Context, text string) ([]string, error) {
	return f(ctx, text)
}

type staticProvider struct {
	r Recognizer
}

func (p staticProvider) Recognizer() (Recognizer, error) {
	return p.r, nil
}

// Static returns a Provider that always yields r.
func Static(r Recognizer) Provider {
	return staticProvider{r: r}
}

// LoadError reports a recognizer that could not be initialized.
type LoadError struct {
	Provider string
	Cause    error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("recognizer %s unavailable: %v", e.Provider, e.Cause)
	}
	return fmt.Sprintf("recognizer %s unavailable", e.Provider)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
