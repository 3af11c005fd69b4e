package ner

import (
	"context"
	"regexp"
)

// personLike matches two or three capitalized words on one line.
var personLike = regexp.MustCompile(`[A-Z][a-z]+(?:[-'][A-Za-z]+)?(?:[ \t]+[A-Z][a-z]+(?:[-'][A-Za-z]+)?){1,2}`)

// Heuristic is a model-free recognizer that reports runs of capitalized words.
type Heuristic struct{}

// NewHeuristicLoader returns a Loader for the Heuristic recognizer.
func NewHeuristicLoader() Loader {
	return func() (Recognizer, error) {
		return Heuristic{}, nil
	}
}

// FindPersons returns every capitalized run in text.
func (Heuristic) FindPersons(ctx context.Context, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return personLike.FindAllString(text, -1), nil
}
