package game

import "fmt"

// Board geometry. These mirror the client CSS; positions seeded here line
// up with the client's initial render.
const (
	boardWidth  = 850
	boardHeight = 650

	dotCount       = 6
	dotSize        = 20
	dotMargin      = 10
	dotLeftOffset  = 10
	dotRightOffset = boardWidth - dotSize - dotLeftOffset

	hexCount     = 10
	hexInitValue = 20

	squareRowLen = 5
	squareMargin = 10

	imageCount      = 14
	imageWidth      = 20
	imageHeight     = 34
	imageMargin     = 10
	imageLeftOffset = dotRightOffset - imageWidth - imageMargin

	cImageLeftOffset = imageLeftOffset - imageWidth - imageMargin

	gImageCount      = 10
	gImageSize       = 50
	gImageMargin     = imageMargin
	gImageLeftOffset = cImageLeftOffset - gImageSize - gImageMargin

	csImageCount      = 7
	csImageWidth      = 136
	csImageHeight     = 70
	csImageMargin     = imageMargin
	csImageLeftOffset = dotLeftOffset

	dImageCount  = 3
	dImageSize   = 50
	dImageMargin = imageMargin
)

// squareShape describes one counter in the double counter row. Each row
// entry starts at its maximum value.
type squareShape struct {
	clip string
	max  int
}

var squareShapes = []squareShape{
	{clip: "triangle", max: 4},
	{clip: "square", max: 6},
	{clip: "square", max: 6},
	{clip: "square", max: 6},
	{clip: "square", max: 6},
	{clip: "square", max: 6},
	{clip: "hexagon", max: 8},
	{clip: "diamond", max: 10},
	{clip: "decagon", max: 12},
}

// layerNames is the canonical layer order, used for join snapshots so every
// client sees the same message sequence.
var layerNames = []string{
	"dots", "hexes", "squares", "images",
	"c-images", "g-images", "cs-images", "d-images",
}

// seedLayers builds all eight positioned-object layers with their initial
// deterministic placement.
//
// Postcondition: Returns layers in layerNames order; lengths are fixed for
// the session's lifetime.
func seedLayers() []*Layer {
	return []*Layer{
		newLayer("dots", false, seedDots()),
		newLayer("hexes", true, seedHexes()),
		newLayer("squares", true, seedSquares()),
		newLayer("images", false, seedColumn(imageCount, imageHeight, imageMargin, imageLeftOffset)),
		newLayer("c-images", false, seedColumn(imageCount, imageHeight, imageMargin, cImageLeftOffset)),
		newLayer("g-images", false, seedColumn(gImageCount, gImageSize, gImageMargin, gImageLeftOffset)),
		newLayer("cs-images", false, seedColumn(csImageCount, csImageHeight, csImageMargin, csImageLeftOffset)),
		newLayer("d-images", false, seedDImages()),
	}
}

// seedDots stacks the marker dots in the right-hand column.
func seedDots() []Object {
	totalH := dotCount*dotSize + (dotCount-1)*dotMargin
	startY := float64(boardHeight-totalH) - 100
	objs := make([]Object, 0, dotCount)
	for i := 0; i < dotCount; i++ {
		objs = append(objs, Object{
			X: dotRightOffset,
			Y: startY + float64(i*(dotSize+dotMargin)),
		})
	}
	return objs
}

// seedHexes stacks the hex counters upward in the right-hand column, each
// starting at its initial value.
func seedHexes() []Object {
	totalH := dotCount*dotSize + (dotCount-1)*dotMargin
	startY := float64(boardHeight-totalH) - 135
	objs := make([]Object, 0, hexCount)
	for i := 0; i < hexCount; i++ {
		objs = append(objs, Object{
			X:     dotRightOffset,
			Y:     startY - float64(i*(dotSize+dotMargin)),
			Value: hexInitValue,
		})
	}
	return objs
}

// seedSquares lays out two identical counter rows (top and bottom edge of
// the board), every counter showing its maximum. The diamond counter's
// value is a zero-padded string so the client renders two digits.
func seedSquares() []Object {
	count := len(squareShapes)
	totalW := count*dotSize + (count-1)*squareMargin
	startX := float64(boardWidth-totalW) / 2
	topY := float64(dotMargin)
	botY := float64(boardHeight - dotMargin - dotSize)

	makeRow := func(y float64) []Object {
		row := make([]Object, 0, count)
		for i, s := range squareShapes {
			var val any = s.max
			if s.clip == "diamond" {
				val = fmt.Sprintf("%02d", s.max)
			}
			row = append(row, Object{
				X:     startX + float64(i*(dotSize+squareMargin)),
				Y:     y,
				Value: val,
			})
		}
		return row
	}

	return append(makeRow(topY), makeRow(botY)...)
}

// seedColumn stacks count objects of the given height vertically centered
// at the given x offset. Shared by the three vertical image columns.
func seedColumn(count, height, margin, leftOffset int) []Object {
	totalH := count*height + (count-1)*margin
	startY := float64(boardHeight-totalH) / 2
	objs := make([]Object, 0, count)
	for i := 0; i < count; i++ {
		objs = append(objs, Object{
			X: float64(leftOffset),
			Y: startY + float64(i*(height+margin)),
		})
	}
	return objs
}

// seedDImages centers a short horizontal row just above the bottom counter
// row.
func seedDImages() []Object {
	totalW := dImageCount*dImageSize + (dImageCount-1)*dImageMargin
	startX := float64(boardWidth-totalW) / 2
	squares := seedSquares()
	bottomY := squares[len(squares)-squareRowLen].Y
	y := bottomY - dImageSize - dImageMargin
	objs := make([]Object, 0, dImageCount)
	for i := 0; i < dImageCount; i++ {
		objs = append(objs, Object{
			X: startX + float64(i*(dImageSize+dImageMargin)),
			Y: y,
		})
	}
	return objs
}
