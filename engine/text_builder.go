package engine

// ============================================================================
// TEXT BUILDER — Produces TextData for scalar answers
// ============================================================================

// BuildText reduces view to a single labelled value.
// Counts are formatted as integers, everything else via FormatNumber.
func BuildText(q Query, view RecordView, measure string) *TextData {
	label := q.Title
	if label == "" {
		label = LabelForAggregation(q.Aggregation)
	}

	if view.Len() == 0 {
		return &TextData{
			Label:    label,
			Value:    "0",
			RawValue: 0,
			Count:    0,
		}
	}

	value := Aggregate(view, measure, q.Aggregation)

	var formatted string
	if q.Aggregation == "count" {
		formatted = FormatInt(int(value))
	} else {
		formatted = FormatNumber(value)
	}

	return &TextData{
		Label:    label,
		Value:    formatted,
		RawValue: value,
		Count:    view.Len(),
	}
}
