package widget

// Sizing selects how a container allots space to a child along its axis.
type Sizing int

const (
	// SizePack uses the child's natural size.
	SizePack Sizing = iota
	// SizeGiven uses a fixed number of cells.
	SizeGiven
	// SizeWeight shares the remaining space in proportion to Amount.
	SizeWeight
)

// Item is a child of a Pile or Columns.
type Item struct {
	Widget Widget
	Sizing Sizing
	Amount int
}

// Pack lays w out at its natural size.
func Pack(w Widget) Item { return Item{Widget: w, Sizing: SizePack} }

// Given lays w out with exactly n cells.
func Given(n int, w Widget) Item { return Item{Widget: w, Sizing: SizeGiven, Amount: n} }

// Weight lays w out with a share of the remaining space.
func Weight(n int, w Widget) Item {
	if n < 1 {
		n = 1
	}
	return Item{Widget: w, Sizing: SizeWeight, Amount: n}
}

// distribute splits total cells between items, given the fixed demand of
// packed and given items.
func distribute(items []Item, total int, fixed func(i int) int) []int {
	out := make([]int, len(items))
	used := 0
	weights := 0
	for i, it := range items {
		if it.Sizing == SizeWeight {
			weights += it.Amount
			continue
		}
		out[i] = fixed(i)
		used += out[i]
	}
	remaining := total - used
	if remaining < 0 {
		remaining = 0
	}
	if weights == 0 {
		return out
	}
	last := -1
	given := 0
	for i, it := range items {
		if it.Sizing != SizeWeight {
			continue
		}
		out[i] = remaining * it.Amount / weights
		given += out[i]
		last = i
	}
	out[last] += remaining - given
	return out
}

func firstSelectable(items []Item) int {
	for i, it := range items {
		if it.Widget.Selectable() {
			return i
		}
	}
	return 0
}
