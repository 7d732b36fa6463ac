// Package ctrltypes holds the wire types shared between the control
// server and its client.
package ctrltypes

import "fmt"

// Error is the problem-JSON shape the control server renders for any
// failed request.
type Error struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%d %s", e.Status, e.Title)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.Title, e.Detail)
}

// Profile is one configuration slot as reported by the profile routes.
type Profile struct {
	Index      int    `json:"index"`
	ReportRate uint16 `json:"reportRate"`
	DPI        uint16 `json:"dpi"`
	Current    bool   `json:"current,omitempty"`
}

// Firmware is the firmware identification reported by fw/show.
type Firmware struct {
	Entity   string `json:"entity"`
	Entities int    `json:"entities"`
	Version  string `json:"version"`
}
