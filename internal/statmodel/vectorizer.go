// Package statmodel implements the statistical fallback of the classifier: a
// TF-IDF vectorizer and a linear decision model, both loaded once from JSON
// files exported by the training pipeline.
package statmodel

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/Veraticus/spamsift/internal/common"
	"github.com/Veraticus/spamsift/internal/model"
	"github.com/Veraticus/spamsift/internal/textclean"
)

// Norm names a vector normalization.
type Norm string

// Supported normalizations.
const (
	NormL2   Norm = "l2"
	NormNone Norm = "none"
)

// VectorizerSpec is the serialized form of a TF-IDF vectorizer.
type VectorizerSpec struct {
	Vocabulary  map[string]int `json:"vocabulary"`
	Norm        Norm           `json:"norm"`
	IDF         []float64      `json:"idf"`
	NGramRange  [2]int         `json:"ngram_range"`
	SublinearTF bool           `json:"sublinear_tf"`
}

// TFIDFVectorizer maps text to a sparse TF-IDF feature vector.
type TFIDFVectorizer struct {
	vocabulary  map[string]int
	tokenize    func(string) []string
	norm        Norm
	idf         []float64
	minN        int
	maxN        int
	sublinearTF bool
}

// VectorizerOption customizes a vectorizer.
type VectorizerOption func(*TFIDFVectorizer)

// WithTokenizer replaces the default textclean tokenizer.
func WithTokenizer(tokenize func(string) []string) VectorizerOption {
	return func(v *TFIDFVectorizer) {
		v.tokenize = tokenize
	}
}

// NewTFIDFVectorizer validates spec and builds a vectorizer from it.
func NewTFIDFVectorizer(spec VectorizerSpec, opts ...VectorizerOption) (*TFIDFVectorizer, error) {
	if len(spec.Vocabulary) == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary", common.ErrInvalidConfig)
	}
	if len(spec.IDF) != len(spec.Vocabulary) {
		return nil, fmt.Errorf("%w: idf has %d entries for %d vocabulary terms",
			common.ErrInvalidConfig, len(spec.IDF), len(spec.Vocabulary))
	}

	seen := make([]bool, len(spec.IDF))
	for term, col := range spec.Vocabulary {
		if col < 0 || col >= len(spec.IDF) {
			return nil, fmt.Errorf("%w: term %q has column %d outside [0,%d)",
				common.ErrInvalidConfig, term, col, len(spec.IDF))
		}
		if seen[col] {
			return nil, fmt.Errorf("%w: column %d assigned to more than one term", common.ErrInvalidConfig, col)
		}
		seen[col] = true
	}

	minN, maxN := spec.NGramRange[0], spec.NGramRange[1]
	if minN == 0 && maxN == 0 {
		minN, maxN = 1, 1
	}
	if minN < 1 || maxN < minN {
		return nil, fmt.Errorf("%w: invalid ngram_range [%d,%d]", common.ErrInvalidConfig, minN, maxN)
	}

	norm := spec.Norm
	switch norm {
	case "":
		norm = NormL2
	case NormL2, NormNone:
	default:
		return nil, fmt.Errorf("%w: unsupported norm %q", common.ErrInvalidConfig, norm)
	}

	v := &TFIDFVectorizer{
		vocabulary:  spec.Vocabulary,
		idf:         spec.IDF,
		minN:        minN,
		maxN:        maxN,
		sublinearTF: spec.SublinearTF,
		norm:        norm,
		tokenize:    textclean.Preprocess,
	}
	for _, opt := range opts {
		opt(v)
	}

	return v, nil
}

// ReadVectorizer decodes a JSON vectorizer spec from r.
func ReadVectorizer(r io.Reader, opts ...VectorizerOption) (*TFIDFVectorizer, error) {
	var spec VectorizerSpec
	if err := json.NewDecoder(r).Decode(&spec); err != nil {
		return nil, fmt.Errorf("%w: failed to decode vectorizer: %v", common.ErrInvalidConfig, err)
	}
	return NewTFIDFVectorizer(spec, opts...)
}

// Dim returns the size of the feature space.
func (v *TFIDFVectorizer) Dim() int {
	return len(v.idf)
}

// Transform converts text into a TF-IDF vector. Terms outside the vocabulary
// are ignored, so unseen text produces an empty vector rather than an error.
func (v *TFIDFVectorizer) Transform(text string) (model.FeatureVector, error) {
	counts := make(map[int]float64)
	for _, term := range v.terms(v.tokenize(text)) {
		if col, ok := v.vocabulary[term]; ok {
			counts[col]++
		}
	}

	fv := model.FeatureVector{
		Dim:     len(v.idf),
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for col := range counts {
		fv.Indices = append(fv.Indices, col)
	}
	sort.Ints(fv.Indices)

	var sumSq float64
	for _, col := range fv.Indices {
		tf := counts[col]
		if v.sublinearTF {
			tf = 1 + math.Log(tf)
		}
		w := tf * v.idf[col]
		fv.Values = append(fv.Values, w)
		sumSq += w * w
	}

	if v.norm == NormL2 && sumSq > 0 {
		n := math.Sqrt(sumSq)
		for i := range fv.Values {
			fv.Values[i] /= n
		}
	}

	return fv, nil
}

// terms expands tokens into the configured word n-grams.
func (v *TFIDFVectorizer) terms(tokens []string) []string {
	var out []string
	for n := v.minN; n <= v.maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}
