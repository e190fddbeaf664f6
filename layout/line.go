package layout

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/pagetree/model"
)

const hyphen = "-"

var (
	// reflexivePronoun matches a continuation such as "se," or "se."
	reflexivePronoun = regexp.MustCompile(`(?i)^se[^a-z]`)

	// hyphenNotAfterS matches a line ending in a hyphen not preceded by "s"
	hyphenNotAfterS = regexp.MustCompile(`(?i)[^s]-$`)
)

// LineJoiner turns the text fragments of a page tree into text lines. A
// fragment continues the previous line when both share the same container
// and the fragment either sits on the same line or wraps from it.
//
// A LineJoiner keeps per-page state and is not safe for concurrent use;
// use one joiner per page.
type LineJoiner struct {
	lastContainer *model.Component
	last          *model.Component
	lines         []string

	// interrupted is set when a non-text component was visited after last
	interrupted bool
}

// NewLineJoiner creates a joiner with empty state
func NewLineJoiner() *LineJoiner {
	return &LineJoiner{}
}

// Reset clears the state so the joiner can process another page
func (j *LineJoiner) Reset() {
	j.lastContainer = nil
	j.last = nil
	j.lines = nil
	j.interrupted = false
}

// Lines returns the text lines of a first-level component list, visiting
// every component before its children. The joiner is reset first.
func (j *LineJoiner) Lines(components []*model.Component) []string {
	j.Reset()
	for _, c := range components {
		j.visit(c, nil)
	}
	lines := j.lines
	j.Reset()
	return lines
}

// TextLines returns the text lines of a first-level component list
func TextLines(components []*model.Component) []string {
	return NewLineJoiner().Lines(components)
}

func (j *LineJoiner) visit(c, container *model.Component) {
	if c.IsText() {
		j.add(c, container)
	} else {
		j.interrupted = true
	}
	for _, child := range c.Children() {
		j.visit(child, c)
	}
}

func (j *LineJoiner) add(c, container *model.Component) {
	if container == j.lastContainer && consecutive(j.last, c, container, !j.interrupted) {
		n := len(j.lines) - 1
		j.lines[n] = join(j.lines[n], c.Text())
	} else {
		j.lines = append(j.lines, c.Text())
	}
	j.lastContainer = container
	j.last = c
	j.interrupted = false
}

// consecutive reports whether c2 continues the line of c1 inside container.
// container is nil for first-level fragments. adjacent is false when
// another component lies between the two, which rules out a same-line join.
func consecutive(c1, c2, container *model.Component, adjacent bool) bool {
	if c1 == nil {
		return false
	}
	if adjacent && sameLine(c1, c2) {
		return true
	}
	if container == nil || alignedToCenter(c1, c2, container) {
		return false
	}

	acw1, acw2 := c1.AverageCharacterWidth(), c2.AverageCharacterWidth()
	// The first word of c2, capped at five characters, plus the space
	// before it would not have fit at the end of c1.
	first := c2.Text() + " "
	nextWord := float64(min(5, utf8.RuneCountInString(first[:strings.Index(first, " ")])) + 1)
	reach := c1.ToX() + nextWord*acw1
	gap := c2.FromY() - c1.ToY()

	return reach > container.ToX() &&
		(alignedToRight(c1, c2, container) || c2.FromX()-acw2 < c1.FromX()) &&
		c1.ToX() > c2.FromX() &&
		reach > c2.ToX() &&
		gap < 1.5*math.Max(c1.Height(), c2.Height())
}

// sameLine reports whether c2 follows c1 on the same baseline with at most
// two average characters of space between them
func sameLine(c1, c2 *model.Component) bool {
	if math.Abs(c1.ToY()-c2.ToY()) >= 0.5*math.Min(c1.Height(), c2.Height()) {
		return false
	}
	return c2.FromX() >= c1.FromX() && c2.FromX()-c1.ToX() <= 2*c1.AverageCharacterWidth()
}

// alignedToCenter reports whether both fragments are centred in the
// container with room to spare on either side
func alignedToCenter(c1, c2, container *model.Component) bool {
	return centered(c1, container) && centered(c2, container)
}

func centered(c, container *model.Component) bool {
	offset := c.BBox().Center().X - container.BBox().Center().X
	return math.Abs(offset) < 0.5 && container.Width()-c.Width() > c.AverageCharacterWidth()
}

func alignedToRight(c1, c2, container *model.Component) bool {
	return c1.ToX()+c1.AverageCharacterWidth() > container.ToX() &&
		c2.ToX()+c2.AverageCharacterWidth() > container.ToX()
}

// join appends text2 to text1. A trailing hyphen is dropped, except before
// a hyphenated "se" pronoun, and a space separates anything else.
func join(text1, text2 string) string {
	if !strings.HasSuffix(text1, hyphen) {
		return text1 + " " + text2
	}
	if (strings.EqualFold(text2, "se") || reflexivePronoun.MatchString(removeDiacritics(text2))) &&
		hyphenNotAfterS.MatchString(text1) {
		return text1 + text2
	}
	return strings.TrimSuffix(text1, hyphen) + text2
}

// removeDiacritics strips combining marks after canonical decomposition
func removeDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
