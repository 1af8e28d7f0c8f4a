package sorting

// HeapSort builds a max-heap by sifting each element up, then repeatedly
// swaps the root to the sorted boundary and sifts the new root down.
func HeapSort(s Sequence, tr Tracer) error {
	if err := buildMaxHeap(s, tr); err != nil {
		return err
	}
	for heapLast := s.Len() - 1; heapLast >= 0; heapLast-- {
		swap(s, 0, heapLast)
		if err := siftDown(s, heapLast, tr); err != nil {
			return err
		}
	}
	return nil
}

// buildMaxHeap establishes s[i] <= s[parent(i)] for every i > 0. Swaps are
// emitted as (parent, child).
func buildMaxHeap(s Sequence, tr Tracer) error {
	for i := 1; i < s.Len(); i++ {
		child := i
		parent := (child - 1) / 2

		for child > 0 {
			if s.Get(child) <= s.Get(parent) {
				break
			}
			swap(s, parent, child)

			tr.Emit(Mark(parent, child))
			if err := tr.Pause(heapSwapPause); err != nil {
				return err
			}

			child = parent
			parent = (child - 1) / 2
		}
	}
	return nil
}

// siftDown restores the heap property in [0,heapLast) after the root was
// replaced. Swaps are emitted as (maxIndex, parent, heapLast). On equal
// children the left one wins.
func siftDown(s Sequence, heapLast int, tr Tracer) error {
	parent := 0
	left, right := 1, 2

	for left < heapLast {
		maxIndex := parent
		if s.Get(left) > s.Get(maxIndex) {
			maxIndex = left
		}
		if right < heapLast && s.Get(right) > s.Get(maxIndex) {
			maxIndex = right
		}
		if maxIndex == parent {
			return nil
		}

		swap(s, parent, maxIndex)

		tr.Emit(Mark(maxIndex, parent, heapLast))
		if err := tr.Pause(heapSwapPause); err != nil {
			return err
		}

		parent = maxIndex
		left, right = 2*parent+1, 2*parent+2
	}
	return nil
}
