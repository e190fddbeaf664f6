package tables

import (
	"fmt"
	"sort"

	"github.com/tsawler/pagetree/internal/unionfind"
	"github.com/tsawler/pagetree/model"
)

// GridDetector detects boxes from the grid of levels formed by horizontal
// and vertical rulings
type GridDetector struct {
	config Config
}

// NewGridDetector creates a new grid detector with default settings
func NewGridDetector() *GridDetector {
	return &GridDetector{
		config: DefaultConfig(),
	}
}

// NewGridDetectorWithConfig creates a grid detector with custom settings
func NewGridDetectorWithConfig(config Config) *GridDetector {
	return &GridDetector{
		config: config,
	}
}

// Name returns the detector's identifier ("grid").
func (d *GridDetector) Name() string {
	return "grid"
}

// Configure sets the detector configuration.
func (d *GridDetector) Configure(config Config) error {
	if config.LevelTolerance < 0 || config.CoverageTolerance < 0 || config.MaxRuleThickness < 0 {
		return fmt.Errorf("tables: negative tolerance in %+v", config)
	}
	d.config = config
	return nil
}

// segment is a straight ruling. lo and hi are its extent along the ruling,
// from and to the band it occupies across it.
type segment struct {
	lo, hi   float64
	from, to float64
}

func (s segment) thickness() float64 {
	return s.to - s.from
}

// level is a cluster of overlapping bands on one axis, together with the
// rulings that lie in it
type level struct {
	from, to float64
	rulings  []segment
}

// band is a candidate level interval. ruling is -1 for the end cap of a
// crossing ruling.
type band struct {
	from, to float64
	ruling   int
}

// DetectBoxes returns the boxes formed by the grid components, ordered top
// to bottom and left to right. Components that are neither horizontal nor
// vertical rulings are ignored.
func (d *GridDetector) DetectBoxes(grid []*model.Component) ([]*model.Component, error) {
	horizontals, verticals := d.classify(distinct(grid))
	if len(horizontals) == 0 && len(verticals) == 0 {
		return nil, nil
	}

	// Rows are bounded by horizontal rulings and by the ends of the
	// verticals; columns the other way round.
	ys := d.buildLevels(horizontals, verticals)
	xs := d.buildLevels(verticals, horizontals)
	if len(xs) < 2 || len(ys) < 2 {
		return nil, nil
	}

	cells := &cellGrid{xs: xs, ys: ys, tolerance: d.config.CoverageTolerance}
	var boxes []*model.Component
	for _, r := range cells.regions() {
		var candidates []region
		if r.rectangular() {
			candidates = []region{r}
		} else {
			candidates = r.cells()
		}
		for _, c := range candidates {
			if !cells.enclosed(c) {
				continue
			}
			box, err := model.NewBoxComponent(cells.bbox(c))
			if err != nil {
				return nil, err
			}
			boxes = append(boxes, box)
		}
	}

	sort.SliceStable(boxes, func(i, j int) bool {
		if boxes[i].FromY() != boxes[j].FromY() {
			return boxes[i].FromY() < boxes[j].FromY()
		}
		return boxes[i].FromX() < boxes[j].FromX()
	})
	return boxes, nil
}

// classify splits grid components into horizontal and vertical segments.
// Thick rectangles contribute their four outline edges; thick lines are
// diagonal and ignored.
func (d *GridDetector) classify(grid []*model.Component) (horizontals, verticals []segment) {
	thick := d.config.MaxRuleThickness
	for _, c := range grid {
		if !c.Type().IsGrid() {
			continue
		}
		b := c.BBox()
		w, h := b.Width(), b.Height()
		switch {
		case h <= thick && w > h:
			horizontals = append(horizontals, segment{lo: b.FromX, hi: b.ToX, from: b.FromY, to: b.ToY})
		case w <= thick && h > w:
			verticals = append(verticals, segment{lo: b.FromY, hi: b.ToY, from: b.FromX, to: b.ToX})
		case w > thick && h > thick && c.Type() == model.TypeRect:
			horizontals = append(horizontals,
				segment{lo: b.FromX, hi: b.ToX, from: b.FromY, to: b.FromY},
				segment{lo: b.FromX, hi: b.ToX, from: b.ToY, to: b.ToY})
			verticals = append(verticals,
				segment{lo: b.FromY, hi: b.ToY, from: b.FromX, to: b.FromX},
				segment{lo: b.FromY, hi: b.ToY, from: b.ToX, to: b.ToX})
		}
	}
	return horizontals, verticals
}

// distinct drops rulings that repeat the box and type of an earlier drawn
// ruling. Drawing order is the grid row index; ties keep input order.
func distinct(grid []*model.Component) []*model.Component {
	sorted := make([]*model.Component, len(grid))
	copy(sorted, grid)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Row() < sorted[j].Row()
	})

	type key struct {
		typ  model.ComponentType
		bbox model.BBox
	}
	seen := make(map[key]bool, len(sorted))
	out := sorted[:0]
	for _, c := range sorted {
		k := key{c.Type(), c.BBox()}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
	}
	return out
}

// buildLevels clusters the bands of rulings, plus the end caps of the
// crossing rulings, into ordered disjoint levels
func (d *GridDetector) buildLevels(rulings, crossing []segment) []level {
	bands := make([]band, 0, len(rulings)+2*len(crossing))
	for i, r := range rulings {
		bands = append(bands, band{from: r.from, to: r.to, ruling: i})
	}
	for _, c := range crossing {
		t := c.thickness()
		bands = append(bands,
			band{from: c.lo, to: c.lo + t, ruling: -1},
			band{from: c.hi - t, to: c.hi, ruling: -1})
	}
	if len(bands) == 0 {
		return nil
	}

	sort.SliceStable(bands, func(i, j int) bool {
		if bands[i].from != bands[j].from {
			return bands[i].from < bands[j].from
		}
		return bands[i].to < bands[j].to
	})

	var levels []level
	current := level{from: bands[0].from, to: bands[0].to}
	for i, b := range bands {
		if i > 0 && b.from > current.to+d.config.LevelTolerance {
			levels = append(levels, current)
			current = level{from: b.from, to: b.to}
		}
		if b.to > current.to {
			current.to = b.to
		}
		if b.ruling >= 0 {
			current.rulings = append(current.rulings, rulings[b.ruling])
		}
	}
	return append(levels, current)
}

// region is a rectangle of cells, columns i0..i1 and rows j0..j1 inclusive.
// count is the number of member cells.
type region struct {
	i0, i1, j0, j1 int
	count          int
	members        [][2]int
}

func (r region) rectangular() bool {
	return r.count == (r.i1-r.i0+1)*(r.j1-r.j0+1)
}

func (r region) cells() []region {
	out := make([]region, len(r.members))
	for k, m := range r.members {
		out[k] = region{i0: m[0], i1: m[0], j0: m[1], j1: m[1], count: 1}
	}
	return out
}

// cellGrid holds the levels of both axes. Cell (i, j) lies between
// vertical levels i and i+1 and horizontal levels j and j+1.
type cellGrid struct {
	xs, ys    []level
	tolerance float64
}

func (g *cellGrid) cols() int { return len(g.xs) - 1 }
func (g *cellGrid) rows() int { return len(g.ys) - 1 }

// hCovered reports whether horizontal level j draws the edge over column i
func (g *cellGrid) hCovered(j, i int) bool {
	return g.covers(g.ys[j].rulings, g.xs[i].to, g.xs[i+1].from)
}

// vCovered reports whether vertical level i draws the edge beside row j
func (g *cellGrid) vCovered(i, j int) bool {
	return g.covers(g.xs[i].rulings, g.ys[j].to, g.ys[j+1].from)
}

// covers reports whether any ruling overlaps the open span (from, to) by
// more than the tolerance
func (g *cellGrid) covers(rulings []segment, from, to float64) bool {
	for _, r := range rulings {
		if r.lo < to-g.tolerance && r.hi > from+g.tolerance {
			return true
		}
	}
	return false
}

// regions merges neighbouring cells whose shared edge no ruling covers.
// Regions are returned in order of their first cell, row by row.
func (g *cellGrid) regions() []region {
	cols, rows := g.cols(), g.rows()
	uf := unionfind.New(cols * rows)
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			if j+1 < rows && !g.hCovered(j+1, i) {
				uf.Union(j*cols+i, (j+1)*cols+i)
			}
			if i+1 < cols && !g.vCovered(i+1, j) {
				uf.Union(j*cols+i, j*cols+i+1)
			}
		}
	}

	index := make(map[int]int)
	var regions []region
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			root := uf.Find(j*cols + i)
			k, ok := index[root]
			if !ok {
				k = len(regions)
				index[root] = k
				regions = append(regions, region{i0: i, i1: i, j0: j, j1: j})
			}
			r := &regions[k]
			r.i0, r.i1 = min(r.i0, i), max(r.i1, i)
			r.j0, r.j1 = min(r.j0, j), max(r.j1, j)
			r.count++
			r.members = append(r.members, [2]int{i, j})
		}
	}
	return regions
}

// enclosed reports whether the top and bottom sides of the region are both
// drawn over one column, or the left and right sides over one row. Rules
// that face each other across no common column or row enclose nothing.
func (g *cellGrid) enclosed(r region) bool {
	for i := r.i0; i <= r.i1; i++ {
		if g.hCovered(r.j0, i) && g.hCovered(r.j1+1, i) {
			return true
		}
	}
	for j := r.j0; j <= r.j1; j++ {
		if g.vCovered(r.i0, j) && g.vCovered(r.i1+1, j) {
			return true
		}
	}
	return false
}

// bbox spans from the outer side of the first levels to the outer side of
// the last levels, so boxes include their rulings
func (g *cellGrid) bbox(r region) model.BBox {
	return model.NewBBox(g.xs[r.i0].from, g.ys[r.j0].from, g.xs[r.i1+1].to, g.ys[r.j1+1].to)
}
