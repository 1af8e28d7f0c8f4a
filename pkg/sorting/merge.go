package sorting

// MergeSort sorts top-down. Only the copy-back of each merge is paced, which
// is what makes the ranges visibly settle.
func MergeSort(s Sequence, tr Tracer) error {
	return mergeSort(s, 0, s.Len()-1, tr)
}

func mergeSort(s Sequence, si, ei int, tr Tracer) error {
	if si >= ei {
		return nil
	}
	mid := si + (ei-si)/2

	if err := mergeSort(s, si, mid, tr); err != nil {
		return err
	}
	if err := mergeSort(s, mid+1, ei, tr); err != nil {
		return err
	}
	return merge(s, si, ei, tr)
}

// merge combines the sorted halves [si,mid] and [mid+1,ei]. Ties take the
// left element, so the sort is stable.
func merge(s Sequence, si, ei int, tr Tracer) error {
	output := make([]int, ei-si+1)

	mid := si + (ei-si)/2
	i, j, k := si, mid+1, 0

	for i <= mid && j <= ei {
		if s.Get(i) <= s.Get(j) {
			output[k] = s.Get(i)
			tr.Emit(Mark(i, j))
			i++
		} else {
			output[k] = s.Get(j)
			tr.Emit(Mark(i, j))
			j++
		}
		k++
	}

	for ; i <= mid; i, k = i+1, k+1 {
		output[k] = s.Get(i)
		tr.Emit(Mark(Unset, i))
	}
	for ; j <= ei; j, k = j+1, k+1 {
		output[k] = s.Get(j)
		tr.Emit(Mark(Unset, j))
	}

	for x, l := 0, si; l <= ei; x, l = x+1, l+1 {
		s.Set(l, output[x])
		tr.Emit(Mark(l))
		if err := tr.Pause(mergeCopyPause); err != nil {
			// finish the copy unpaced so the range stays a permutation
			for x, l = x+1, l+1; l <= ei; x, l = x+1, l+1 {
				s.Set(l, output[x])
			}
			return err
		}
	}
	return nil
}
