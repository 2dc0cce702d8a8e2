package model

// FeatureVector is a sparse feature vector produced by a vectorizer.
// Indices are ascending and parallel to Values; Dim is the size of the
// feature space the vector lives in.
type FeatureVector struct {
	Indices []int     `json:"indices"`
	Values  []float64 `json:"values"`
	Dim     int       `json:"dim"`
}

// NNZ returns the number of non-zero entries.
func (v FeatureVector) NNZ() int {
	return len(v.Indices)
}
