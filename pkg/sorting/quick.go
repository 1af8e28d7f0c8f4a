package sorting

// QuickSort partitions around the first element of each range. The pivot's
// final index is computed by counting instead of scanning, see partition.
func QuickSort(s Sequence, tr Tracer) error {
	return quickSort(s, 0, s.Len()-1, tr)
}

func quickSort(s Sequence, si, ei int, tr Tracer) error {
	if si >= ei {
		return nil
	}

	c, err := partition(s, si, ei, tr)
	if err != nil {
		return err
	}
	if err := quickSort(s, si, c-1, tr); err != nil {
		return err
	}
	return quickSort(s, c+1, ei, tr)
}

// partition moves s[si] to its final sorted index c and returns c. Afterwards
// every element in [si,c) is <= s[c] and every element in (c,ei] is > s[c].
//
// c is si plus the number of elements in (si,ei] that are <= the pivot. Once
// the pivot sits at c, out-of-place pairs on either side are swapped by two
// pointers converging on c.
func partition(s Sequence, si, ei int, tr Tracer) (int, error) {
	pivot := s.Get(si)
	countSmall := 0
	for i := si + 1; i <= ei; i++ {
		if s.Get(i) <= pivot {
			countSmall++
		}
	}
	c := si + countSmall

	swap(s, c, si)
	tr.Emit(Mark(c, si))

	i, j := si, ei
	for i < c && j > c {
		switch {
		case s.Get(i) <= s.Get(c):
			i++
		case s.Get(j) > s.Get(c):
			j--
		default:
			swap(s, i, j)
			tr.Emit(Mark(i, j))
			if err := tr.Pause(quickSwapPause); err != nil {
				return c, err
			}
			i++
			j--
		}
	}
	return c, nil
}
