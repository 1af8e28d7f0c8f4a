package sorting

// Pacing units per pause point. These are tuned for a 130 bar array at one
// millisecond per unit and define how each algorithm looks on screen.
const (
	selectionPause = 1
	insertionPause = 5
	bubblePause    = 1
	mergeCopyPause = 15
	quickSwapPause = 70
	heapSwapPause  = 40
)

// SelectionSort scans the unsorted suffix for its minimum and swaps it into
// place. Every new minimum is emitted as (i, minIndex); every inner step
// pauses.
func SelectionSort(s Sequence, tr Tracer) error {
	n := s.Len()
	for i := 0; i < n-1; i++ {
		minIndex := i
		for j := i + 1; j < n; j++ {
			if s.Get(j) < s.Get(minIndex) {
				minIndex = j
				tr.Emit(Mark(i, minIndex))
			}
			if err := tr.Pause(selectionPause); err != nil {
				return err
			}
		}
		swap(s, i, minIndex)
	}
	return nil
}

// InsertionSort shifts larger elements right until the key fits. Each shift
// is emitted as (i, j+1) followed by a pause.
func InsertionSort(s Sequence, tr Tracer) error {
	n := s.Len()
	for i := 1; i < n; i++ {
		key := s.Get(i)
		j := i - 1
		for j >= 0 && s.Get(j) > key {
			s.Set(j+1, s.Get(j))
			j--

			tr.Emit(Mark(i, j+1))
			if err := tr.Pause(insertionPause); err != nil {
				// the slot at j+1 is a duplicate until the key lands
				s.Set(j+1, key)
				return err
			}
		}
		s.Set(j+1, key)
	}
	return nil
}

// BubbleSort makes n-1 passes over a shrinking window, swapping adjacent
// out-of-order pairs. Swaps are emitted as (j+1, j, sortedBoundary).
func BubbleSort(s Sequence, tr Tracer) error {
	n := s.Len()
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-1-i; j++ {
			if s.Get(j+1) < s.Get(j) {
				swap(s, j, j+1)
				tr.Emit(Mark(j+1, j, n-1-i))
			}
			if err := tr.Pause(bubblePause); err != nil {
				return err
			}
		}
	}
	return nil
}
