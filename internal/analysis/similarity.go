package analysis

// Ratio computes a similarity score in [0,1] between two strings: twice
// the number of matched runes divided by the total length, with matches
// found by recursively locating the longest common substring. This is
// the classic sequence-matcher ratio the reply-inference threshold (0.4)
// was tuned against.
func Ratio(a, b string) float64 {
	ar, br := []rune(a), []rune(b)
	total := len(ar) + len(br)
	if total == 0 {
		return 1
	}
	matched := matchTotal(ar, br)
	return 2 * float64(matched) / float64(total)
}

func matchTotal(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	ai, bi, size := longestCommonRun(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchTotal(a[:ai], b[:bi]) +
		matchTotal(a[ai+size:], b[bi+size:])
}

// longestCommonRun finds the longest common contiguous run between a and
// b. Ties resolve to the earliest occurrence in a, then in b.
func longestCommonRun(a, b []rune) (ai, bi, size int) {
	// lengths[j] is the length of the common run ending at a[i-1], b[j-1]
	// for the current row i.
	lengths := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		prev := 0 // lengths[j-1] from the previous row
		for j := 1; j <= len(b); j++ {
			cur := lengths[j]
			if a[i-1] == b[j-1] {
				lengths[j] = prev + 1
				if lengths[j] > size {
					size = lengths[j]
					ai = i - size
					bi = j - size
				}
			} else {
				lengths[j] = 0
			}
			prev = cur
		}
	}
	return ai, bi, size
}
