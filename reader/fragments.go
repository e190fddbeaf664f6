package reader

import (
	"math"
	"strings"

	lpdf "github.com/ledongthuc/pdf"

	"github.com/tsawler/pagetree/model"
)

// ascent is the fraction of the font size above the baseline
const ascent = 0.8

// fragment is a run of glyphs in PDF user space: X is the left edge and Y
// the baseline, measured from the bottom of the page.
type fragment struct {
	text     string
	font     string
	size     float64
	x, y     float64
	width    float64
	lastChar float64 // right edge of the last glyph
}

// mergeGlyphs joins consecutive glyphs into fragments. A fragment breaks
// when the font changes, the baseline moves, the pen goes backwards, or the
// gap to the next glyph exceeds FragmentGap font sizes. Gaps wider than
// WordGap font sizes become a single space.
func mergeGlyphs(glyphs []lpdf.Text, config LocatorConfig) []fragment {
	var out []fragment
	var cur *fragment
	flush := func() {
		if cur != nil {
			cur.text = strings.TrimRight(cur.text, " ")
			if strings.TrimSpace(cur.text) != "" {
				out = append(out, *cur)
			}
			cur = nil
		}
	}

	for _, g := range glyphs {
		if g.S == "" || g.FontSize <= 0 || !finite(g.X, g.Y, g.W, g.FontSize) {
			continue
		}
		w := g.W
		if w <= 0 {
			w = 0.5 * g.FontSize
		}

		if cur != nil {
			gap := g.X - cur.lastChar
			switch {
			case g.Font != cur.font || g.FontSize != cur.size,
				math.Abs(g.Y-cur.y) > 0.5*cur.size*(1-ascent),
				gap < -0.5*cur.size,
				gap > config.FragmentGap*cur.size:
				flush()
			case gap > config.WordGap*cur.size && !strings.HasSuffix(cur.text, " ") && g.S != " ":
				cur.text += " "
			}
		}

		if cur == nil {
			if strings.TrimSpace(g.S) == "" {
				continue
			}
			cur = &fragment{font: g.Font, size: g.FontSize, x: g.X, y: g.Y}
		}
		if g.S == " " && strings.HasSuffix(cur.text, " ") {
			cur.lastChar = math.Max(cur.lastChar, g.X+w)
			continue
		}
		cur.text += g.S
		cur.lastChar = math.Max(cur.lastChar, g.X+w)
		cur.width = cur.lastChar - cur.x
	}
	flush()
	return out
}

// bbox flips a fragment into top-down page space. left and top are the
// MediaBox's minimum X and maximum Y.
func (f fragment) bbox(left, top float64) model.BBox {
	fromY := top - (f.y + ascent*f.size)
	return model.NewBBox(f.x-left, fromY, f.x-left+f.width, fromY+f.size)
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
