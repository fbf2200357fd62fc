//go:build js
// +build js

package web

// Theme holds the visual styling of the page.
var Theme = struct {
	// Scan overlay
	SampleStroke      string
	SampleStrokeWidth int

	// Canvas
	CanvasScale float64 // Display size relative to the image

	// Panel
	PanelBackground string
	PanelBorder     string
	PanelText       string
	PanelFont       string

	// Status overlay
	OverlayBackground string
	OverlayText       string
	OverlayFont       string
}{
	SampleStroke:      "#f6f2f0",
	SampleStrokeWidth: 2,

	CanvasScale: 0.75,

	PanelBackground: "rgba(20, 20, 30, 0.92)",
	PanelBorder:     "#f6f2f0",
	PanelText:       "#f6f2f0",
	PanelFont:       "12px 'Courier New', monospace",

	OverlayBackground: "rgba(0, 0, 0, 0.7)",
	OverlayText:       "#00ff00",
	OverlayFont:       "11px monospace",
}
