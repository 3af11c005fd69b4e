package ner

import (
	"fmt"
	"log/slog"
)

// Provider names accepted by NewProvider.
const (
	KindProse     = "prose"
	KindHeuristic = "heuristic"
	KindNone      = "none"
)

// NewProvider builds the named provider. The prose recognizer is loaded lazily
// and guarded by a circuit breaker. KindNone returns a nil Provider, which
// makes the extractor rely on line heuristics alone.
func NewProvider(kind, modelPath string, logger *slog.Logger) (Provider, error) {
	switch kind {
	case KindProse, "":
		lazy := NewLazy(KindProse, NewProseLoader(modelPath))
		return WithBreaker(KindProse, lazy, DefaultBreakerSettings(), logger), nil
	case KindHeuristic:
		return NewLazy(KindHeuristic, NewHeuristicLoader()), nil
	case KindNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown recognizer provider %q", kind)
	}
}
