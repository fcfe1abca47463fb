package segment

import (
	"fmt"
	"sort"
)

// FilterMode selects how the region filter chooses among labeled components.
type FilterMode int

const (
	// SingleLargest keeps at most one component: the biggest one, provided
	// it reaches the minimum size. Background removal uses this.
	SingleLargest FilterMode = iota

	// AllAboveThreshold keeps every component at or above the minimum size,
	// largest first. Anti-collision solidification uses this; there is no
	// upper bound on how many regions qualify.
	AllAboveThreshold
)

// String returns the flag-friendly name of the mode.
func (m FilterMode) String() string {
	switch m {
	case SingleLargest:
		return "single-largest"
	case AllAboveThreshold:
		return "all-above-threshold"
	default:
		return fmt.Sprintf("FilterMode(%d)", int(m))
	}
}

// FilterComponents applies the minimum-size threshold in the given mode.
//
// In SingleLargest mode the result holds zero or one component; a size tie is
// broken toward the component discovered first by the labeler. An empty
// result means the caller must surface the no-qualifying-region condition
// (the pipeline maps it to ErrNoQualifyingRegion).
//
// In AllAboveThreshold mode every qualifying component is returned in
// descending size order; equal sizes keep discovery order. No component below
// minSize is ever returned in either mode.
func FilterComponents(comps []Component, minSize int, mode FilterMode) []Component {
	switch mode {
	case SingleLargest:
		best := -1
		for i := range comps {
			if best < 0 || comps[i].Size > comps[best].Size {
				best = i
			}
		}
		if best < 0 || comps[best].Size < minSize {
			return nil
		}
		return []Component{comps[best]}

	case AllAboveThreshold:
		kept := make([]Component, 0, len(comps))
		for _, c := range comps {
			if c.Size >= minSize {
				kept = append(kept, c)
			}
		}
		sort.SliceStable(kept, func(i, j int) bool {
			return kept[i].Size > kept[j].Size
		})
		return kept

	default:
		return nil
	}
}
