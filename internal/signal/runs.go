package signal

// Run is a maximal block of identical signal values.
type Run struct {
	// On is the signal state for the whole run
	On bool
	// Length is the run length in frames, always >= 1
	Length int
}

// Group collapses a signal into runs. Adjacent runs never share a state and
// their lengths sum to len(sig).
func Group(sig []bool) []Run {
	runs := make([]Run, 0)
	for _, v := range sig {
		if n := len(runs); n > 0 && runs[n-1].On == v {
			runs[n-1].Length++
			continue
		}
		runs = append(runs, Run{On: v, Length: 1})
	}
	return runs
}

// Expand rebuilds the signal a run list was grouped from.
func Expand(runs []Run) []bool {
	total := 0
	for _, r := range runs {
		total += r.Length
	}
	sig := make([]bool, 0, total)
	for _, r := range runs {
		for i := 0; i < r.Length; i++ {
			sig = append(sig, r.On)
		}
	}
	return sig
}

// Lengths splits runs by state, returning ON lengths and OFF lengths in order.
func Lengths(runs []Run) (on, off []int) {
	for _, r := range runs {
		if r.On {
			on = append(on, r.Length)
		} else {
			off = append(off, r.Length)
		}
	}
	return on, off
}
