package selection

// Bounds resolves the range against a list of n candidates.
//
// lower is the skip count. upper is an exclusive end index, where 0 means
// there is no upper bound. A negative Limit becomes max(n-|Limit|, 0), which
// can also resolve to 0 and therefore to "no bound" once it reaches the
// start of the list.
func (r Range) Bounds(n int) (lower, upper int) {
	if r.Offset != nil {
		lower = *r.Offset
	}

	if r.Limit == nil {
		return lower, 0
	}

	limit := *r.Limit
	if limit >= 0 {
		return lower, limit
	}

	upper = n + limit
	if upper < 0 {
		upper = 0
	}
	return lower, upper
}

// Apply returns the candidates selected by r, preserving their order.
//
// Tracks before the lower bound are skipped and the walk stops at the upper
// bound when one is set. A Limit of 0 therefore means "unbounded", and a
// non-negative Limit is an absolute cutoff index rather than a count.
func Apply(candidates []string, r Range) []string {
	lower, upper := r.Bounds(len(candidates))

	selected := make([]string, 0, len(candidates))
	for i, track := range candidates {
		if i < lower {
			continue
		}
		if upper != 0 && i >= upper {
			break
		}
		selected = append(selected, track)
	}
	return selected
}
