package dataset

import (
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"github.com/smartula/hivesound/logging"
)

// Split partitions [0, n) into random, non-overlapping train and validation
// index sets. The validation set holds floor(ratio*n) indices; together the
// two sets cover every index exactly once. Ratios outside [0, 1] are clamped.
func Split(n int, ratio float64, rng *rand.Rand) (train, val []int) {
	if n <= 0 {
		return []int{}, []int{}
	}

	perm := rng.Perm(n)
	valN := int(float64(n) * ratio)
	if valN < 0 {
		valN = 0
	}
	if valN > n {
		valN = n
	}

	return perm[valN:], perm[:valN]
}

// Loader iterates a subset of a dataset in fixed-size batches. Each epoch
// reshuffles the index order and drops the trailing incomplete batch. Batch
// items are fetched concurrently; dataset Get is a pure per-index
// computation, so no locking is needed.
type Loader struct {
	ds        Dataset
	indices   []int
	batchSize int
	rng       *rand.Rand
	mu        sync.Mutex // guards rng; Rand is not goroutine-safe
}

// NewLoader creates a loader over the given index subset
func NewLoader(ds Dataset, indices []int, batchSize int, seed int64) (*Loader, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("%w: batch size must be positive, got %d", ErrInvalidConfig, batchSize)
	}
	return &Loader{
		ds:        ds,
		indices:   append([]int(nil), indices...),
		batchSize: batchSize,
		rng:       rand.New(rand.NewSource(seed)),
	}, nil
}

// NewLoaderPair splits the dataset and returns (train, val) loaders with
// the given batch size. The split and both shuffle streams derive from
// seed, so a run is reproducible.
func NewLoaderPair(ds Dataset, batchSize int, ratio float64, seed int64) (*Loader, *Loader, error) {
	if ratio < 0 || ratio > 1 {
		return nil, nil, fmt.Errorf("%w: validation ratio must be in [0, 1], got %g", ErrInvalidConfig, ratio)
	}

	rng := rand.New(rand.NewSource(seed))
	trainIdx, valIdx := Split(ds.Len(), ratio, rng)

	logging.Info("split dataset", logging.Fields{
		"total": ds.Len(), "train": len(trainIdx), "val": len(valIdx), "ratio": ratio,
	})

	train, err := NewLoader(ds, trainIdx, batchSize, rng.Int63())
	if err != nil {
		return nil, nil, err
	}
	val, err := NewLoader(ds, valIdx, batchSize, rng.Int63())
	if err != nil {
		return nil, nil, err
	}
	return train, val, nil
}

// Len returns the number of complete batches per epoch
func (l *Loader) Len() int {
	return len(l.indices) / l.batchSize
}

// Epoch returns a freshly shuffled pass over the loader's indices, chunked
// into complete batches. The trailing incomplete batch is dropped.
func (l *Loader) Epoch() [][]int {
	l.mu.Lock()
	shuffled := append([]int(nil), l.indices...)
	l.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	l.mu.Unlock()

	numBatches := len(shuffled) / l.batchSize
	batches := make([][]int, numBatches)
	for b := 0; b < numBatches; b++ {
		batches[b] = shuffled[b*l.batchSize : (b+1)*l.batchSize]
	}
	return batches
}

// Fetch extracts the samples for one batch of indices in parallel. A failed
// item does not corrupt the others: every index is attempted and the
// per-item errors are joined.
func (l *Loader) Fetch(batch []int) ([]Sample, error) {
	samples := make([]Sample, len(batch))
	errs := make([]error, len(batch))

	workers := min(runtime.NumCPU(), len(batch))
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int, len(batch))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				sample, err := l.ds.Get(batch[i])
				if err != nil {
					errs[i] = fmt.Errorf("item %d: %w", batch[i], err)
					continue
				}
				samples[i] = sample
			}
		}()
	}

	for i := range batch {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return samples, err
	}
	return samples, nil
}

// ForEach runs one full epoch, invoking fn once per complete batch with
// that batch's fetch error, if any. The caller decides whether an item
// failure aborts the pass: returning an error stops iteration, returning
// nil moves on to the next batch.
func (l *Loader) ForEach(fn func(batch []Sample, err error) error) error {
	for _, batch := range l.Epoch() {
		samples, err := l.Fetch(batch)
		if err := fn(samples, err); err != nil {
			return err
		}
	}
	return nil
}
