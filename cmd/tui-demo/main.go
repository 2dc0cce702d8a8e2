// Package main provides a demo program for the TUI
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Veraticus/spamsift/internal/classifier"
	"github.com/Veraticus/spamsift/internal/cli"
	"github.com/Veraticus/spamsift/internal/rules"
	"github.com/Veraticus/spamsift/internal/statmodel"
	"github.com/Veraticus/spamsift/internal/tui"
	"github.com/Veraticus/spamsift/internal/tui/themes"
)

// demoVocabulary is a toy model so the screen works without trained artifacts.
var demoVocabulary = []struct {
	term string
	idf  float64
	coef float64
}{
	{"cash", 2.0, 1.4},
	{"claim", 1.8, 1.2},
	{"free", 1.6, 1.1},
	{"urgent", 2.2, 1.0},
	{"txt", 2.4, 1.3},
	{"home", 1.5, -0.8},
	{"lunch", 2.1, -1.2},
	{"meet", 1.9, -1.3},
	{"tomorrow", 2.0, -1.0},
	{"love", 1.7, -0.9},
}

func demoModel() (*statmodel.TFIDFVectorizer, *statmodel.LinearModel, error) {
	vocab := make(map[string]int, len(demoVocabulary))
	idf := make([]float64, len(demoVocabulary))
	coef := make([]float64, len(demoVocabulary))
	for i, entry := range demoVocabulary {
		vocab[entry.term] = i
		idf[i] = entry.idf
		coef[i] = entry.coef
	}

	vectorizer, err := statmodel.NewTFIDFVectorizer(statmodel.VectorizerSpec{
		Vocabulary: vocab,
		IDF:        idf,
		Norm:       statmodel.NormL2,
	})
	if err != nil {
		return nil, nil, err
	}

	linear, err := statmodel.NewLinearModel(statmodel.LinearSpec{
		Classes:   []string{"ham", "spam"},
		Coef:      coef,
		Intercept: -0.3,
	})
	if err != nil {
		return nil, nil, err
	}

	return vectorizer, linear, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	registry, err := rules.NewDefaultRegistry()
	if err != nil {
		fail(err)
	}

	vectorizer, linear, err := demoModel()
	if err != nil {
		fail(err)
	}

	theme := themes.Default
	if len(os.Args) > 1 {
		t, ok := themes.ByName(os.Args[1])
		if !ok {
			fail(fmt.Errorf("unknown theme %q", os.Args[1]))
		}
		theme = t
	}

	err = tui.Run(ctx,
		tui.WithClassifier(classifier.New(registry, classifier.WithModel(vectorizer, linear))),
		tui.WithTheme(theme),
		tui.WithExamples(cli.ExampleMessages),
		tui.WithGroupOrder(registry.Names()),
		tui.WithSize(120, 40),
	)
	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	// Use explicit error check to satisfy forbidigo
	_, _ = fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
	os.Exit(1)
}
