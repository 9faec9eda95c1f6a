// Package tiling maps a viewport onto the page tiles that must be resident.
//
// Every page is divided into a grid whose cells cover a fixed on-screen
// pixel footprint (TileSize) at the current zoom, so small pages get fewer,
// relatively larger cells. For a viewport the Calculator returns, per visible
// page, the inclusive (row, col) sub-rectangle of that grid intersecting the
// viewport extended by a preload margin. Plan flattens the ranges into Parts,
// the page-relative bounds and render sizes the render worker needs.
//
// Calculator is a pure function of its inputs: the same viewport and layout
// always yield the same list.
package tiling
