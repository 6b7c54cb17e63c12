package ml

import (
	"math/rand"
	"sort"
)

const leafFeature = -1

// TreeNode is one node of a RegressionTree. Leaves have Feature == -1.
// Internal nodes send rows with column Feature set to Right, others to Left.
type TreeNode struct {
	Feature int     `json:"f"`
	Left    int     `json:"l,omitempty"`
	Right   int     `json:"r,omitempty"`
	Value   float64 `json:"v"`
}

// RegressionTree is stored in pre-order, so children always follow their
// parent in Nodes.
type RegressionTree struct {
	Nodes []TreeNode `json:"nodes"`
}

func (t *RegressionTree) Predict(row SparseRow) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Feature == leafFeature {
			return n.Value
		}
		if row.Has(n.Feature) {
			i = n.Right
		} else {
			i = n.Left
		}
	}
}

// treeBuilder grows depth-limited trees over one-hot rows using the Friedman
// MSE improvement criterion. Scratch buffers are reused across trees.
type treeBuilder struct {
	rows            []SparseRow
	target          []float64
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
	rng             *rand.Rand

	count []int
	sum   []float64
}

func newTreeBuilder(rows []SparseRow, width int, p Params, rng *rand.Rand) *treeBuilder {
	return &treeBuilder{
		rows:            rows,
		maxDepth:        p.MaxDepth,
		minSamplesSplit: p.MinSamplesSplit,
		minSamplesLeaf:  p.MinSamplesLeaf,
		rng:             rng,
		count:           make([]int, width),
		sum:             make([]float64, width),
	}
}

func (b *treeBuilder) build(target []float64) RegressionTree {
	b.target = target
	samples := make([]int, len(b.rows))
	for i := range samples {
		samples[i] = i
	}
	var tree RegressionTree
	b.grow(&tree, samples, 0)
	return tree
}

func (b *treeBuilder) grow(tree *RegressionTree, samples []int, depth int) int {
	total, pure := 0.0, true
	first := b.target[samples[0]]
	for _, s := range samples {
		total += b.target[s]
		if b.target[s] != first {
			pure = false
		}
	}

	idx := len(tree.Nodes)
	tree.Nodes = append(tree.Nodes, TreeNode{Feature: leafFeature, Value: total / float64(len(samples))})

	if pure || depth >= b.maxDepth || len(samples) < b.minSamplesSplit {
		return idx
	}
	feature, ok := b.bestSplit(samples, total)
	if !ok {
		return idx
	}

	var left, right []int
	for _, s := range samples {
		if b.rows[s].Has(feature) {
			right = append(right, s)
		} else {
			left = append(left, s)
		}
	}
	l := b.grow(tree, left, depth+1)
	r := b.grow(tree, right, depth+1)
	tree.Nodes[idx] = TreeNode{Feature: feature, Left: l, Right: r, Value: tree.Nodes[idx].Value}
	return idx
}

// bestSplit returns the column with the largest Friedman improvement
// n_l*n_r/n * (mean_l - mean_r)^2. Candidate columns are visited in a seeded
// random order and the first maximum wins.
func (b *treeBuilder) bestSplit(samples []int, total float64) (int, bool) {
	var touched []int
	for _, s := range samples {
		for _, c := range b.rows[s] {
			if b.count[c] == 0 {
				touched = append(touched, c)
			}
			b.count[c]++
			b.sum[c] += b.target[s]
		}
	}
	sort.Ints(touched)
	b.rng.Shuffle(len(touched), func(i, j int) { touched[i], touched[j] = touched[j], touched[i] })

	n := float64(len(samples))
	best, bestGain := -1, 0.0
	for _, c := range touched {
		nRight := b.count[c]
		nLeft := len(samples) - nRight
		if nLeft < b.minSamplesLeaf || nRight < b.minSamplesLeaf {
			continue
		}
		meanRight := b.sum[c] / float64(nRight)
		meanLeft := (total - b.sum[c]) / float64(nLeft)
		diff := meanLeft - meanRight
		gain := float64(nLeft) * float64(nRight) / n * diff * diff
		if gain > bestGain {
			best, bestGain = c, gain
		}
	}

	for _, c := range touched {
		b.count[c] = 0
		b.sum[c] = 0
	}
	return best, best >= 0
}
