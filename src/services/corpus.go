package services

import (
	"sync"

	"github.com/username/salarypredictor/src/models"
)

// Corpus holds the normalized records the current model was trained on.
// Every Replace bumps the version, which keys the chart cache.
type Corpus struct {
	mu      sync.RWMutex
	records []models.HistoricalRecord
	version uint64
}

func NewCorpus() *Corpus {
	return &Corpus{}
}

func (c *Corpus) Replace(records []models.HistoricalRecord) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = records
	c.version++
	return c.version
}

// Snapshot returns the records and their version. Callers must not modify
// the returned slice.
func (c *Corpus) Snapshot() ([]models.HistoricalRecord, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.records, c.version
}

func (c *Corpus) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}
