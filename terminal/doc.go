// Package terminal presents rendered frames on a tcell screen using half-block cells
// and forwards keyboard and resize events to the host loop
package terminal
