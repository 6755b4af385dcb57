package dataset

import "fmt"

// Stacked is a contiguous 2-D tensor: Rows rows of RowLen elements each.
type Stacked[T byte | float32] struct {
	Data   []T
	Rows   int
	RowLen int
}

// Stack right-pads every row with zero values to the longest length
// present and lays the rows out in one contiguous buffer. Batched
// transport requires a uniform shape, so ragged input is legal here and
// rectangular output is guaranteed. A single row stacks fine.
func Stack[T byte | float32](rows [][]T) (Stacked[T], error) {
	if len(rows) == 0 {
		return Stacked[T]{}, fmt.Errorf("nothing to stack")
	}
	maxLen := 0
	for _, r := range rows {
		if len(r) > maxLen {
			maxLen = len(r)
		}
	}
	s := Stacked[T]{
		Data:   make([]T, len(rows)*maxLen),
		Rows:   len(rows),
		RowLen: maxLen,
	}
	for i, r := range rows {
		copy(s.Data[i*maxLen:], r)
	}
	return s, nil
}

// Row returns a view of the i-th row. The slice aliases Data.
func (s Stacked[T]) Row(i int) []T {
	return s.Data[i*s.RowLen : (i+1)*s.RowLen]
}

// Shape describes the tensor the way an inference request declares it.
func (s Stacked[T]) Shape() []int64 {
	return []int64{int64(s.Rows), int64(s.RowLen)}
}
