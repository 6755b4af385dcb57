package dataset

import (
	"bytes"
	"testing"
)

func stackedFixture(t *testing.T, rows [][]byte) Stacked[byte] {
	t.Helper()
	s, err := Stack(rows)
	if err != nil {
		t.Fatalf("Stack failed: %v", err)
	}
	return s
}

func drain(b *Batches[byte]) [][][]byte {
	var all [][][]byte
	for {
		rows, ok := b.Next()
		if !ok {
			return all
		}
		all = append(all, rows)
	}
}

func TestBatchesSinglePass(t *testing.T) {
	s := stackedFixture(t, [][]byte{{0}, {1}, {2}, {3}, {4}})

	b := NewBatches(s, 2, -1)
	if b.Len() != 3 {
		t.Fatalf("Len() = %d, want ceil(5/2) = 3", b.Len())
	}

	got := drain(b)
	if len(got) != 3 {
		t.Fatalf("yielded %d batches, want 3", len(got))
	}
	wantSizes := []int{2, 2, 1}
	next := byte(0)
	for i, batch := range got {
		if len(batch) != wantSizes[i] {
			t.Errorf("batch %d has %d rows, want %d", i, len(batch), wantSizes[i])
		}
		for _, row := range batch {
			if row[0] != next {
				t.Errorf("batch %d row = %d, want %d", i, row[0], next)
			}
			next++
		}
	}
	if next != 5 {
		t.Errorf("covered %d rows, want all 5 exactly once", next)
	}
}

func TestBatchesEvenSplitHasNoShortTail(t *testing.T) {
	s := stackedFixture(t, [][]byte{{0}, {1}, {2}, {3}})

	got := drain(NewBatches(s, 2, -1))
	if len(got) != 2 {
		t.Fatalf("yielded %d batches, want 2", len(got))
	}
	for i, batch := range got {
		if len(batch) != 2 {
			t.Errorf("batch %d has %d rows, want 2", i, len(batch))
		}
	}
}

func TestBatchesCyclesWhenCapped(t *testing.T) {
	s := stackedFixture(t, [][]byte{{0}, {1}, {2}})

	b := NewBatches(s, 2, 4)
	if b.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", b.Len())
	}

	got := drain(b)
	if len(got) != 4 {
		t.Fatalf("yielded %d batches, want exactly 4", len(got))
	}
	want := [][]byte{
		{0, 1},
		{2, 0},
		{1, 2},
		{0, 1},
	}
	for i, batch := range got {
		if len(batch) != 2 {
			t.Fatalf("batch %d has %d rows, want 2", i, len(batch))
		}
		row := []byte{batch[0][0], batch[1][0]}
		if !bytes.Equal(row, want[i]) {
			t.Errorf("batch %d = %v, want %v", i, row, want[i])
		}
	}
}

func TestBatchesZeroIterations(t *testing.T) {
	s := stackedFixture(t, [][]byte{{0}})

	b := NewBatches(s, 1, 0)
	if b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", b.Len())
	}
	if rows, ok := b.Next(); ok {
		t.Fatalf("Next() yielded %v, want exhaustion", rows)
	}
}

func TestBatchesExhaustedStaysExhausted(t *testing.T) {
	s := stackedFixture(t, [][]byte{{0}, {1}})

	b := NewBatches(s, 2, -1)
	drain(b)
	if _, ok := b.Next(); ok {
		t.Fatal("iterator restarted after exhaustion")
	}
}
