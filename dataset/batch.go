package dataset

// Batches yields consecutive groups of rows from a stacked tensor. It is
// a forward-only iterator meant to be consumed exactly once per run; there
// is no rewinding.
//
// With iterations < 0 it makes a single pass over the data, batchSize rows
// at a time, the final batch carrying the remainder. With iterations >= 0
// it yields exactly that many batches of exactly batchSize rows, the
// cursor wrapping around to the first row when it runs off the end.
type Batches[T byte | float32] struct {
	src       Stacked[T]
	batchSize int
	cursor    int
	remaining int
	total     int
	cycle     bool
}

// NewBatches builds the iterator. batchSize must be >= 1 and src must hold
// at least one row; both are enforced upstream by the configuration
// resolver and the loader.
func NewBatches[T byte | float32](src Stacked[T], batchSize, iterations int) *Batches[T] {
	b := &Batches[T]{src: src, batchSize: batchSize}
	if iterations < 0 {
		b.total = (src.Rows + batchSize - 1) / batchSize
	} else {
		b.total = iterations
		b.cycle = true
	}
	b.remaining = b.total
	return b
}

// Len reports how many batches the iterator yields in total, consumed or
// not.
func (b *Batches[T]) Len() int {
	return b.total
}

// Next returns the next batch of row views, or ok == false once the
// iterator is exhausted.
func (b *Batches[T]) Next() (rows [][]T, ok bool) {
	if b.remaining == 0 {
		return nil, false
	}
	b.remaining--

	rows = make([][]T, 0, b.batchSize)
	if b.cycle {
		for len(rows) < b.batchSize {
			rows = append(rows, b.src.Row(b.cursor))
			b.cursor = (b.cursor + 1) % b.src.Rows
		}
		return rows, true
	}

	end := b.cursor + b.batchSize
	if end > b.src.Rows {
		end = b.src.Rows
	}
	for ; b.cursor < end; b.cursor++ {
		rows = append(rows, b.src.Row(b.cursor))
	}
	return rows, true
}
