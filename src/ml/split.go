package ml

import (
	"math"
	"math/rand"
	"sort"
)

// TrainTestSplit shuffles the indices 0..n-1 with seed and holds out
// ceil(testSize*n) of them. When that would leave either side empty every
// index goes to train and test is nil. Both slices are returned sorted so
// callers keep the corpus order inside each partition.
func TrainTestSplit(n int, testSize float64, seed int64) (train, test []int) {
	nTest := int(math.Ceil(testSize * float64(n)))
	if testSize <= 0 || nTest <= 0 || nTest >= n {
		train = make([]int, n)
		for i := range train {
			train[i] = i
		}
		return train, nil
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	test = append([]int(nil), perm[:nTest]...)
	train = append([]int(nil), perm[nTest:]...)
	sort.Ints(test)
	sort.Ints(train)
	return train, test
}
