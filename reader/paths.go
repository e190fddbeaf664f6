package reader

import (
	"math"

	lpdf "github.com/ledongthuc/pdf"

	"github.com/tsawler/pagetree/model"
)

// pointTolerance is how close two points must be, in points, to count as
// the same corner
const pointTolerance = 0.1

// matrix is an affine transform [a b c d e f] mapping (x, y) to
// (a*x + c*y + e, b*x + d*y + f)
type matrix [6]float64

var identity = matrix{1, 0, 0, 1, 0, 0}

func (m matrix) apply(x, y float64) model.Point {
	return model.Point{X: m[0]*x + m[2]*y + m[4], Y: m[1]*x + m[3]*y + m[5]}
}

// then returns the transform applying m first and n second
func (m matrix) then(n matrix) matrix {
	return matrix{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}

// ruling is a painted segment or rectangle in PDF device space
type ruling struct {
	typ    model.ComponentType
	p1, p2 model.Point
}

// bbox flips a ruling into top-down page space. left and top are the
// MediaBox's minimum X and maximum Y.
func (r ruling) bbox(left, top float64) model.BBox {
	return model.NewBBoxFromPoints(
		model.Point{X: r.p1.X - left, Y: top - r.p1.Y},
		model.Point{X: r.p2.X - left, Y: top - r.p2.Y},
	)
}

// subpath is a run of connected points in device space. curved marks the
// segments that end at a point reached by a Bézier curve.
type subpath struct {
	points []model.Point
	curved []bool
	closed bool
}

// pathWalker follows the path construction and painting operators of a
// content stream and records the rulings that end up painted. Paths that
// are only used for clipping are discarded by their "n" operator.
type pathWalker struct {
	ctm     matrix
	saved   []matrix
	path    []*subpath
	rulings []ruling
}

func newPathWalker() *pathWalker {
	return &pathWalker{ctm: identity}
}

// locateRulings walks the content streams of a page
func locateRulings(contents lpdf.Value) []ruling {
	if contents.Kind() == lpdf.Null {
		return nil
	}
	w := newPathWalker()
	lpdf.Interpret(contents, func(stk *lpdf.Stack, op string) {
		args := make([]float64, stk.Len())
		for i := len(args) - 1; i >= 0; i-- {
			args[i] = stk.Pop().Float64()
		}
		w.op(op, args...)
	})
	return w.rulings
}

// op applies one operator. Operators with the wrong number of operands
// are ignored.
func (w *pathWalker) op(op string, args ...float64) {
	switch op {
	case "q":
		w.saved = append(w.saved, w.ctm)
	case "Q":
		if n := len(w.saved); n > 0 {
			w.ctm = w.saved[n-1]
			w.saved = w.saved[:n-1]
		}
	case "cm":
		if len(args) == 6 {
			w.ctm = matrix{args[0], args[1], args[2], args[3], args[4], args[5]}.then(w.ctm)
		}
	case "m":
		if len(args) == 2 {
			w.moveTo(w.ctm.apply(args[0], args[1]))
		}
	case "l":
		if len(args) == 2 {
			w.lineTo(w.ctm.apply(args[0], args[1]), false)
		}
	case "c":
		if len(args) == 6 {
			w.lineTo(w.ctm.apply(args[4], args[5]), true)
		}
	case "v", "y":
		if len(args) == 4 {
			w.lineTo(w.ctm.apply(args[2], args[3]), true)
		}
	case "h":
		w.closePath()
	case "re":
		if len(args) == 4 {
			x, y, width, height := args[0], args[1], args[2], args[3]
			w.moveTo(w.ctm.apply(x, y))
			w.lineTo(w.ctm.apply(x+width, y), false)
			w.lineTo(w.ctm.apply(x+width, y+height), false)
			w.lineTo(w.ctm.apply(x, y+height), false)
			w.closePath()
		}
	case "S", "B", "B*":
		w.paint(true)
	case "s", "b", "b*":
		w.closePath()
		w.paint(true)
	case "f", "F", "f*":
		w.paint(false)
	case "n":
		w.path = nil
	}
}

func (w *pathWalker) moveTo(p model.Point) {
	w.path = append(w.path, &subpath{points: []model.Point{p}, curved: []bool{false}})
}

func (w *pathWalker) lineTo(p model.Point, curved bool) {
	if len(w.path) == 0 {
		w.moveTo(p)
		return
	}
	sp := w.path[len(w.path)-1]
	sp.points = append(sp.points, p)
	sp.curved = append(sp.curved, curved)
}

func (w *pathWalker) closePath() {
	if len(w.path) > 0 {
		w.path[len(w.path)-1].closed = true
	}
}

// paint records the current path and clears it. Axis-aligned rectangles
// become rect rulings whether filled or stroked; the straight segments of
// other stroked subpaths become line rulings. Filled shapes that are not
// rectangles are ignored.
func (w *pathWalker) paint(stroked bool) {
	for _, sp := range w.path {
		if p1, p2, ok := sp.rectangle(); ok {
			w.rulings = append(w.rulings, ruling{typ: model.TypeRect, p1: p1, p2: p2})
			continue
		}
		if stroked {
			w.strokeSegments(sp)
		}
	}
	w.path = nil
}

func (w *pathWalker) strokeSegments(sp *subpath) {
	points := sp.points
	curved := sp.curved
	if sp.closed {
		points = append(points[:len(points):len(points)], points[0])
		curved = append(curved[:len(curved):len(curved)], false)
	}
	for i := 1; i < len(points); i++ {
		if curved[i] || points[i-1].Distance(points[i]) < pointTolerance {
			continue
		}
		w.rulings = append(w.rulings, ruling{typ: model.TypeLine, p1: points[i-1], p2: points[i]})
	}
}

// rectangle returns opposite corners when the subpath is a closed
// axis-aligned rectangle
func (sp *subpath) rectangle() (model.Point, model.Point, bool) {
	corners := sp.points
	if n := len(corners); n == 5 && corners[0].Distance(corners[4]) < pointTolerance {
		corners = corners[:4]
	} else if n != 4 || !sp.closed {
		return model.Point{}, model.Point{}, false
	}
	for _, c := range sp.curved {
		if c {
			return model.Point{}, model.Point{}, false
		}
	}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%4]
		if math.Abs(a.X-b.X) > pointTolerance && math.Abs(a.Y-b.Y) > pointTolerance {
			return model.Point{}, model.Point{}, false
		}
	}
	return corners[0], corners[2], true
}
