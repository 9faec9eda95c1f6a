package layout

import (
	"math"

	"github.com/gogpu/pageview/geom"
)

// FitPolicy determines how an intrinsic page size maps to its on-screen size
// at zoom 1.
type FitPolicy uint8

const (
	// FitWidth fits the widest page to the view width.
	FitWidth FitPolicy = iota
	// FitHeight fits the tallest page to the view height.
	FitHeight
	// FitBoth fits the largest page entirely inside the view.
	FitBoth
)

func (p FitPolicy) String() string {
	switch p {
	case FitHeight:
		return "height"
	case FitBoth:
		return "both"
	default:
		return "width"
	}
}

// ParseFitPolicy parses "width", "height" or "both".
func ParseFitPolicy(s string) (FitPolicy, bool) {
	switch s {
	case "width":
		return FitWidth, true
	case "height":
		return FitHeight, true
	case "both":
		return FitBoth, true
	}
	return FitWidth, false
}

// sizeCalculator fits pages to the view according to a FitPolicy.
//
// Unless fitEachPage is set, only the widest and tallest pages are fitted to
// the view; every other page is scaled by the same ratio so relative page
// sizes are preserved.
type sizeCalculator struct {
	policy      FitPolicy
	view        geom.Size
	fitEachPage bool

	optimalMaxWidth  geom.SizeF
	optimalMaxHeight geom.SizeF
	widthRatio       float64
	heightRatio      float64
}

func newSizeCalculator(policy FitPolicy, maxWidth, maxHeight, view geom.Size, fitEachPage bool) *sizeCalculator {
	c := &sizeCalculator{
		policy:      policy,
		view:        view,
		fitEachPage: fitEachPage,
	}
	c.calculateMaxPages(maxWidth, maxHeight)
	return c
}

func (c *sizeCalculator) calculateMaxPages(maxWidth, maxHeight geom.Size) {
	vw, vh := float64(c.view.Width), float64(c.view.Height)
	switch c.policy {
	case FitHeight:
		c.optimalMaxHeight = fitHeight(maxHeight, vh)
		c.heightRatio = ratio(c.optimalMaxHeight.Height, maxHeight.Height)
		c.optimalMaxWidth = fitHeight(maxWidth, float64(maxWidth.Height)*c.heightRatio)
	case FitBoth:
		localMaxWidth := fitBoth(maxWidth, vw, vh)
		localWidthRatio := ratio(localMaxWidth.Width, maxWidth.Width)
		c.optimalMaxHeight = fitBoth(maxHeight, float64(maxHeight.Width)*localWidthRatio, vh)
		c.heightRatio = ratio(c.optimalMaxHeight.Height, maxHeight.Height)
		c.optimalMaxWidth = fitBoth(maxWidth, vw, float64(maxWidth.Height)*c.heightRatio)
		c.widthRatio = ratio(c.optimalMaxWidth.Width, maxWidth.Width)
	default:
		c.optimalMaxWidth = fitWidth(maxWidth, vw)
		c.widthRatio = ratio(c.optimalMaxWidth.Width, maxWidth.Width)
		c.optimalMaxHeight = fitWidth(maxHeight, float64(maxHeight.Width)*c.widthRatio)
	}
}

// calculate returns the fitted size of one page at zoom 1.
func (c *sizeCalculator) calculate(page geom.Size) geom.SizeF {
	if page.IsZero() {
		return geom.SizeF{}
	}
	maxWidth := float64(page.Width) * c.widthRatio
	maxHeight := float64(page.Height) * c.heightRatio
	if c.fitEachPage {
		maxWidth = float64(c.view.Width)
		maxHeight = float64(c.view.Height)
	}
	switch c.policy {
	case FitHeight:
		return fitHeight(page, maxHeight)
	case FitBoth:
		return fitBoth(page, maxWidth, maxHeight)
	default:
		return fitWidth(page, maxWidth)
	}
}

func fitWidth(page geom.Size, maxWidth float64) geom.SizeF {
	if page.IsZero() {
		return geom.SizeF{}
	}
	r := float64(page.Width) / float64(page.Height)
	return geom.SizeF{Width: maxWidth, Height: math.Floor(maxWidth / r)}
}

func fitHeight(page geom.Size, maxHeight float64) geom.SizeF {
	if page.IsZero() {
		return geom.SizeF{}
	}
	r := float64(page.Height) / float64(page.Width)
	return geom.SizeF{Width: math.Floor(maxHeight / r), Height: maxHeight}
}

func fitBoth(page geom.Size, maxWidth, maxHeight float64) geom.SizeF {
	if page.IsZero() {
		return geom.SizeF{}
	}
	r := float64(page.Width) / float64(page.Height)
	w := maxWidth
	h := math.Floor(maxWidth / r)
	if h > maxHeight {
		h = maxHeight
		w = math.Floor(maxHeight * r)
	}
	return geom.SizeF{Width: w, Height: h}
}

func ratio(fitted float64, original int) float64 {
	if original <= 0 {
		return 0
	}
	return fitted / float64(original)
}
