package engine

// ============================================================================
// RECORD VIEW — Zero-Copy Data Access Interface
// ============================================================================
// The engine never owns consumer data. It reads through this interface.
//
// Implementations:
//   DomainView[T]  reads typed structs via accessor functions (zero-copy)
//   SubView        filtered subset (indices into parent, zero-copy)
// ============================================================================

// RecordView provides indexed access to a dataset.
// Dimension reports ok=false when the value is null.
type RecordView interface {
	Len() int
	Dimension(index int, key string) (string, bool)
	Measure(index int, key string) float64
	DimensionKeys() []string
	MeasureKeys() []string
}

// SourceIndex maps row i of view back to the row index of the root view it
// was derived from. Views that are not sub-views are their own root.
func SourceIndex(view RecordView, i int) int {
	if sv, ok := view.(*SubView); ok {
		return SourceIndex(sv.parent, sv.indices[i])
	}
	return i
}

// SourceIndices returns SourceIndex for every row of view, in view order.
func SourceIndices(view RecordView) []int {
	out := make([]int, view.Len())
	for i := range out {
		out[i] = SourceIndex(view, i)
	}
	return out
}

// ============================================================================
// SUB VIEW — filtered subset (zero-copy)
// ============================================================================

// SubView is a filtered subset of a parent RecordView.
// Holds indices into the parent; no data is copied.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Dimension(i int, key string) (string, bool) {
	if i < 0 || i >= len(v.indices) {
		return "", false
	}
	return v.parent.Dimension(v.indices[i], key)
}

func (v *SubView) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.indices) {
		return 0
	}
	return v.parent.Measure(v.indices[i], key)
}

func (v *SubView) DimensionKeys() []string { return v.parent.DimensionKeys() }
func (v *SubView) MeasureKeys() []string   { return v.parent.MeasureKeys() }

// ============================================================================
// DOMAIN ADAPTER — Zero-copy typed struct access
// ============================================================================
//
// Usage:
//
//	adapter := engine.NewDomainAdapter[Event]().
//	    Dimension("type", func(e Event) (string, bool) { return e.Type, e.Type != "" }).
//	    Measure("registrants", func(e Event) float64 { return e.Registrants })
//
//	view := adapter.Bind(events)
//
// ============================================================================

// DomainAdapter builds a RecordView from typed structs.
// Declare once, bind many times.
type DomainAdapter[T any] struct {
	dimOrder []string
	mesOrder []string
	dims     map[string]func(T) (string, bool)
	meas     map[string]func(T) float64
}

// NewDomainAdapter creates a new adapter for type T.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{
		dims: make(map[string]func(T) (string, bool)),
		meas: make(map[string]func(T) float64),
	}
}

// Dimension registers a dimension accessor.
func (a *DomainAdapter[T]) Dimension(key string, fn func(T) (string, bool)) *DomainAdapter[T] {
	if _, exists := a.dims[key]; !exists {
		a.dimOrder = append(a.dimOrder, key)
	}
	a.dims[key] = fn
	return a
}

// Measure registers a measure accessor.
func (a *DomainAdapter[T]) Measure(key string, fn func(T) float64) *DomainAdapter[T] {
	if _, exists := a.meas[key]; !exists {
		a.mesOrder = append(a.mesOrder, key)
	}
	a.meas[key] = fn
	return a
}

// Bind creates a RecordView from a data slice. It holds a reference, no copy.
func (a *DomainAdapter[T]) Bind(data []T) RecordView {
	return &DomainView[T]{
		data:     data,
		dims:     a.dims,
		meas:     a.meas,
		dimKeys:  a.dimOrder,
		measKeys: a.mesOrder,
	}
}

// DomainView reads typed struct fields via registered accessor functions.
type DomainView[T any] struct {
	data     []T
	dims     map[string]func(T) (string, bool)
	meas     map[string]func(T) float64
	dimKeys  []string
	measKeys []string
}

func (v *DomainView[T]) Len() int { return len(v.data) }

func (v *DomainView[T]) Dimension(i int, key string) (string, bool) {
	if i < 0 || i >= len(v.data) {
		return "", false
	}
	if fn, ok := v.dims[key]; ok {
		return fn(v.data[i])
	}
	return "", false
}

func (v *DomainView[T]) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.data) {
		return 0
	}
	if fn, ok := v.meas[key]; ok {
		return fn(v.data[i])
	}
	return 0
}

func (v *DomainView[T]) DimensionKeys() []string { return v.dimKeys }
func (v *DomainView[T]) MeasureKeys() []string   { return v.measKeys }
