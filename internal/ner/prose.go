package ner

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jdkato/prose/v2"
)

// ProseRecognizer finds person names with prose's averaged-perceptron entity
// extractor. The model is built once by the loader and reused for every call.
type ProseRecognizer struct {
	model *prose.Model
}

// NewProseLoader returns a Loader that builds a ProseRecognizer. When modelPath
// is set the model is read from that directory, otherwise prose's bundled
// English model is used. The loader analyzes one sample document so a broken
// model surfaces at load time, and keeps the model that document was built
// with; prose would otherwise rebuild its default model on every document.
func NewProseLoader(modelPath string) Loader {
	return func() (Recognizer, error) {
		r := &ProseRecognizer{}
		if modelPath != "" {
			if _, err := os.Stat(modelPath); err != nil {
				return nil, fmt.Errorf("failed to stat model directory: %w", err)
			}
			r.model = prose.ModelFromDisk(modelPath)
		}

		doc, err := prose.NewDocument("John Smith is a software engineer.", r.docOptions()...)
		if err != nil {
			return nil, fmt.Errorf("sample document failed: %w", err)
		}
		if r.model == nil {
			r.model = doc.Model
		}
		if r.model == nil {
			return nil, fmt.Errorf("prose returned no model")
		}
		return r, nil
	}
}

func (r *ProseRecognizer) docOptions() []prose.DocOpt {
	opts := []prose.DocOpt{prose.WithSegmentation(false)}
	if r.model != nil {
		opts = append(opts, prose.UsingModel(r.model))
	}
	return opts
}

// FindPersons returns the text of every PERSON entity in order of appearance.
func (r *ProseRecognizer) FindPersons(ctx context.Context, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := prose.NewDocument(text, r.docOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze text: %w", err)
	}

	var names []string
	for _, ent := range doc.Entities() {
		if ent.Label == LabelPerson {
			names = append(names, strings.TrimSpace(ent.Text))
		}
	}
	return names, nil
}
