// Package chart implements the drawing back ends of the wind rose.
//
// Both Canvas (a terminal raster) and Vector (PNG and SVG through
// go-chart) implement rose.Renderer, so a chart is composed with rose.Draw
// and then rendered. Export picks a back end by format name.
package chart
