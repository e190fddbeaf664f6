package layout

import (
	"sort"

	"github.com/tsawler/pagetree/model"
)

// MarginDetector finds margin regions on a page. It receives the
// first-level layout components together with the text fragments no
// layout component contains, and returns margin components whose boxes
// are consistent with that geometry. Returned margins carry no children.
type MarginDetector interface {
	DetectMargins(components []*model.Component) ([]*model.Component, error)
}

// MarginConfig holds configuration for band margin detection
type MarginConfig struct {
	// HeaderRegionHeight is the height below the top of the content to
	// consider as header zone
	// Default: 72 points (1 inch)
	HeaderRegionHeight float64

	// FooterRegionHeight is the height above the bottom of the content to
	// consider as footer zone
	// Default: 72 points (1 inch)
	FooterRegionHeight float64

	// MinSeparation is the minimum vertical gap between a margin and the
	// body of the page
	// Default: 12 points
	MinSeparation float64
}

// DefaultMarginConfig returns sensible default configuration
func DefaultMarginConfig() MarginConfig {
	return MarginConfig{
		HeaderRegionHeight: 72.0, // 1 inch
		FooterRegionHeight: 72.0, // 1 inch
		MinSeparation:      12.0,
	}
}

// BandMarginDetector reports the header and footer bands of a page: the
// components at the top (or bottom) of the content that fit in the
// configured zone and are set apart from the rest by a clear gap.
type BandMarginDetector struct {
	config MarginConfig
}

// NewBandMarginDetector creates a new detector with default configuration
func NewBandMarginDetector() *BandMarginDetector {
	return &BandMarginDetector{
		config: DefaultMarginConfig(),
	}
}

// NewBandMarginDetectorWithConfig creates a detector with custom configuration
func NewBandMarginDetectorWithConfig(config MarginConfig) *BandMarginDetector {
	return &BandMarginDetector{
		config: config,
	}
}

// DetectMargins returns at most a header margin followed by a footer margin
func (d *BandMarginDetector) DetectMargins(components []*model.Component) ([]*model.Component, error) {
	if len(components) < 2 {
		return nil, nil
	}

	header := d.headerBand(components)
	footer := d.footerBand(components)

	// A band holding everything is the body, and a page too short to tell
	// header from footer keeps only the header.
	if len(header) == len(components) {
		header = nil
	}
	if len(footer) == len(components) || overlaps(header, footer) {
		footer = nil
	}

	var margins []*model.Component
	for _, band := range [][]*model.Component{header, footer} {
		if len(band) == 0 {
			continue
		}
		margin, err := model.NewMarginComponent(envelope(band))
		if err != nil {
			return nil, err
		}
		margins = append(margins, margin)
	}
	return margins, nil
}

// headerBand collects components from the top while they end inside the
// header zone, and keeps them if the next component starts clearly below.
func (d *BandMarginDetector) headerBand(components []*model.Component) []*model.Component {
	sorted := make([]*model.Component, len(components))
	copy(sorted, components)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FromY() < sorted[j].FromY()
	})

	limit := sorted[0].FromY() + d.config.HeaderRegionHeight
	bottom := sorted[0].FromY()
	k := 0
	for k < len(sorted) && sorted[k].ToY() <= limit {
		if sorted[k].ToY() > bottom {
			bottom = sorted[k].ToY()
		}
		k++
	}
	if k == 0 || k == len(sorted) {
		return sorted[:k]
	}
	for _, rest := range sorted[k:] {
		if rest.FromY()-bottom < d.config.MinSeparation {
			return nil
		}
	}
	return sorted[:k]
}

// footerBand mirrors headerBand from the bottom of the content
func (d *BandMarginDetector) footerBand(components []*model.Component) []*model.Component {
	sorted := make([]*model.Component, len(components))
	copy(sorted, components)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ToY() > sorted[j].ToY()
	})

	limit := sorted[0].ToY() - d.config.FooterRegionHeight
	top := sorted[0].ToY()
	k := 0
	for k < len(sorted) && sorted[k].FromY() >= limit {
		if sorted[k].FromY() < top {
			top = sorted[k].FromY()
		}
		k++
	}
	if k == 0 || k == len(sorted) {
		return sorted[:k]
	}
	for _, rest := range sorted[k:] {
		if top-rest.ToY() < d.config.MinSeparation {
			return nil
		}
	}
	return sorted[:k]
}

// NoMarginDetector never reports margins
type NoMarginDetector struct{}

// DetectMargins returns no margins
func (NoMarginDetector) DetectMargins([]*model.Component) ([]*model.Component, error) {
	return nil, nil
}

func envelope(components []*model.Component) model.BBox {
	b := components[0].BBox()
	for _, c := range components[1:] {
		b = b.Union(c.BBox())
	}
	return b
}

func overlaps(a, b []*model.Component) bool {
	seen := make(map[*model.Component]bool, len(a))
	for _, c := range a {
		seen[c] = true
	}
	for _, c := range b {
		if seen[c] {
			return true
		}
	}
	return false
}
