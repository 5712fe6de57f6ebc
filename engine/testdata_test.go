package engine

// ============================================================================
// TEST DATA
// ============================================================================

// record is an ad-hoc row. A dimension key absent from the map is null.
type record struct {
	Dimensions map[string]string
	Measures   map[string]float64
}

// sliceView serves []record through RecordView.
type sliceView struct {
	records []record
	dimKeys []string
	mesKeys []string
}

func newSliceView(records []record) RecordView {
	v := &sliceView{records: records}
	dimSeen := make(map[string]bool)
	mesSeen := make(map[string]bool)
	for _, r := range records {
		for k := range r.Dimensions {
			if !dimSeen[k] {
				dimSeen[k] = true
				v.dimKeys = append(v.dimKeys, k)
			}
		}
		for k := range r.Measures {
			if !mesSeen[k] {
				mesSeen[k] = true
				v.mesKeys = append(v.mesKeys, k)
			}
		}
	}
	return v
}

func (v *sliceView) Len() int { return len(v.records) }

func (v *sliceView) Dimension(i int, key string) (string, bool) {
	if i < 0 || i >= len(v.records) {
		return "", false
	}
	val, ok := v.records[i].Dimensions[key]
	return val, ok
}

func (v *sliceView) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.records) {
		return 0
	}
	return v.records[i].Measures[key]
}

func (v *sliceView) DimensionKeys() []string { return v.dimKeys }
func (v *sliceView) MeasureKeys() []string   { return v.mesKeys }

func row(dims map[string]string, reg float64) record {
	return record{Dimensions: dims, Measures: map[string]float64{"reg": reg}}
}

// sampleView has a null team on row 2 and a null kind on row 3.
func sampleView() RecordView {
	return newSliceView([]record{
		row(map[string]string{"team": "B", "kind": "x", "paid": "true", "date": "2025-03-01"}, 10),
		row(map[string]string{"team": "A", "kind": "y", "paid": "false", "date": "2025-01-01"}, 4),
		row(map[string]string{"kind": "x", "paid": "true"}, 6),
		row(map[string]string{"team": "B", "paid": "true", "date": "2025-02-01"}, 1),
		{Dimensions: map[string]string{"team": "C", "kind": "y"}},
	})
}

func dims(view RecordView, key string) []string {
	out := []string{}
	for i := 0; i < view.Len(); i++ {
		v, ok := view.Dimension(i, key)
		if !ok {
			v = "<nil>"
		}
		out = append(out, v)
	}
	return out
}
