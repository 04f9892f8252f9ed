package pangrid

// DefaultThreshold is the intersection ratio at or above which an item is
// treated as intersecting the viewport.
const DefaultThreshold = 0.1

// Intersection is one record of an observer batch.
type Intersection struct {
	Item         *Item
	Ratio        float64
	Intersecting bool
}

type observed struct {
	item  *Item
	known bool
	last  bool
}

// Observer tracks how much of each item's box lies inside the viewport and
// reports membership changes. The first Check after an item is observed
// always reports it.
type Observer struct {
	Threshold float64
	targets   []observed
	batch     []Intersection
}

// NewObserver creates an observer with the given threshold; a non-positive
// threshold uses DefaultThreshold.
func NewObserver(threshold float64) *Observer {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Observer{Threshold: threshold}
}

// Observe adds items to the observed set.
func (o *Observer) Observe(items ...*Item) {
	for _, it := range items {
		o.targets = append(o.targets, observed{item: it})
	}
}

// Len reports the number of observed items.
func (o *Observer) Len() int {
	return len(o.targets)
}

// Forget makes the next Check report id again regardless of change, so a
// consumer that skipped a record can resynchronize.
func (o *Observer) Forget(id string) {
	for i := range o.targets {
		if o.targets[i].item.ID == id {
			o.targets[i].known = false
		}
	}
}

// Check compares every observed item's cell box against root and returns
// the records whose membership changed since the previous Check. World
// transforms must be current. The returned slice is reused by the next call.
func (o *Observer) Check(root Rect) []Intersection {
	o.batch = o.batch[:0]
	for i := range o.targets {
		t := &o.targets[i]
		ratio := intersectionRatio(t.item.Bounds(), root)
		in := ratio > 0 && ratio >= o.Threshold
		if t.known && t.last == in {
			continue
		}
		t.known = true
		t.last = in
		o.batch = append(o.batch, Intersection{Item: t.item, Ratio: ratio, Intersecting: in})
	}
	return o.batch
}

// intersectionRatio returns the fraction of box's area inside root.
func intersectionRatio(box, root Rect) float64 {
	area := box.Area()
	if area <= 0 {
		return 0
	}
	return box.Intersection(root).Area() / area
}
