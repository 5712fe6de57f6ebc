package engine

// ============================================================================
// FILTERS — Ordered Dimension Rules via RecordView
// ============================================================================
// Each rule is one pass producing a SubView of the previous view, so a
// traced run narrows rule by rule in the order given. Matching is exact.
// ============================================================================

// ApplyFilters returns a view of records matching every rule in order.
// Values within a rule are OR-combined; rules are AND-combined.
// The input view is never modified.
func ApplyFilters(view RecordView, filters Filters) RecordView {
	for _, rule := range filters.Rules {
		view = ApplyRule(view, rule)
	}
	return view
}

// ApplyRule narrows view by a single dimension rule.
func ApplyRule(view RecordView, rule DimensionFilter) RecordView {
	if rule.IsEmpty() {
		switch rule.WhenEmpty {
		case MatchAll:
			return view
		case MatchNonNull:
			return selectRows(view, func(i int) bool {
				_, ok := view.Dimension(i, rule.Dimension)
				return ok
			})
		default:
			return newSubView(view, []int{})
		}
	}

	set := toSet(rule.Values)
	return selectRows(view, func(i int) bool {
		val, ok := view.Dimension(i, rule.Dimension)
		if !ok {
			return rule.MatchNull
		}
		return set[val]
	})
}

func selectRows(view RecordView, keep func(i int) bool) RecordView {
	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if keep(i) {
			indices = append(indices, i)
		}
	}
	return newSubView(view, indices)
}

// toSet converts a string slice to an exact-match lookup set.
func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
