package ml

import (
	"fmt"
	"sort"
)

// SparseRow is a one-hot encoded row: the ascending indices of the columns
// set to 1. Every other column is 0.
type SparseRow []int

// Has reports whether column col is set.
func (r SparseRow) Has(col int) bool {
	i := sort.SearchInts(r, col)
	return i < len(r) && r[i] == col
}

// OneHotEncoder expands categorical columns into indicator columns. A value
// not seen during Fit encodes to all zeros for its column group.
type OneHotEncoder struct {
	Features   []string   `json:"features"`
	Categories [][]string `json:"categories"`

	offsets []int
	index   []map[string]int
}

func NewOneHotEncoder(features []string) *OneHotEncoder {
	return &OneHotEncoder{Features: append([]string(nil), features...)}
}

// Fit learns the sorted category list of every feature column.
func (e *OneHotEncoder) Fit(rows [][]string) error {
	if len(rows) == 0 {
		return fmt.Errorf("cannot fit encoder on an empty dataset")
	}
	seen := make([]map[string]struct{}, len(e.Features))
	for i := range seen {
		seen[i] = make(map[string]struct{})
	}
	for n, row := range rows {
		if len(row) != len(e.Features) {
			return fmt.Errorf("row %d has %d columns, expected %d", n, len(row), len(e.Features))
		}
		for i, v := range row {
			seen[i][v] = struct{}{}
		}
	}

	e.Categories = make([][]string, len(e.Features))
	for i, set := range seen {
		cats := make([]string, 0, len(set))
		for v := range set {
			cats = append(cats, v)
		}
		sort.Strings(cats)
		e.Categories[i] = cats
	}
	e.prepare()
	return nil
}

// Validate checks the learned state and rebuilds the lookup tables. It must
// be called after decoding an encoder from storage.
func (e *OneHotEncoder) Validate() error {
	if len(e.Features) == 0 {
		return fmt.Errorf("%w: encoder has no features", ErrSchemaMismatch)
	}
	if len(e.Categories) != len(e.Features) {
		return fmt.Errorf("%w: encoder has %d category lists for %d features", ErrSchemaMismatch, len(e.Categories), len(e.Features))
	}
	for i, cats := range e.Categories {
		if len(cats) == 0 {
			return fmt.Errorf("%w: feature %q has no categories", ErrSchemaMismatch, e.Features[i])
		}
		for j := 1; j < len(cats); j++ {
			if cats[j-1] >= cats[j] {
				return fmt.Errorf("%w: categories of feature %q are not sorted and unique", ErrSchemaMismatch, e.Features[i])
			}
		}
	}
	e.prepare()
	return nil
}

func (e *OneHotEncoder) prepare() {
	e.offsets = make([]int, len(e.Categories)+1)
	e.index = make([]map[string]int, len(e.Categories))
	for i, cats := range e.Categories {
		e.offsets[i+1] = e.offsets[i] + len(cats)
		idx := make(map[string]int, len(cats))
		for j, v := range cats {
			idx[v] = j
		}
		e.index[i] = idx
	}
}

// Width is the number of encoded columns.
func (e *OneHotEncoder) Width() int {
	if e.offsets == nil {
		e.prepare()
	}
	return e.offsets[len(e.offsets)-1]
}

// Transform encodes one row. Only a column-count mismatch is an error;
// unknown values are ignored.
func (e *OneHotEncoder) Transform(row []string) (SparseRow, error) {
	if e.index == nil {
		e.prepare()
	}
	if len(row) != len(e.Features) {
		return nil, fmt.Errorf("row has %d columns, expected %d", len(row), len(e.Features))
	}
	out := make(SparseRow, 0, len(row))
	for i, v := range row {
		if j, ok := e.index[i][v]; ok {
			out = append(out, e.offsets[i]+j)
		}
	}
	return out, nil
}

// TransformAll encodes every row.
func (e *OneHotEncoder) TransformAll(rows [][]string) ([]SparseRow, error) {
	out := make([]SparseRow, len(rows))
	for n, row := range rows {
		enc, err := e.Transform(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n, err)
		}
		out[n] = enc
	}
	return out, nil
}
