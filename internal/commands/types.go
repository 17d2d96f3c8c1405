package commands

import (
	"fmt"
	"strings"
)

// Mount names a pipette mount on the gantry.
type Mount string

const (
	MountLeft  Mount = "left"
	MountRight Mount = "right"
)

// ParseMount accepts "left" or "right", case-insensitively.
func ParseMount(value string) (Mount, error) {
	mount := Mount(strings.ToLower(strings.TrimSpace(value)))
	if err := mount.validate("parse mount"); err != nil {
		return "", err
	}
	return mount, nil
}

func (m Mount) validate(operation string) error {
	switch m {
	case MountLeft, MountRight:
		return nil
	default:
		return invalid(operation, "mount must be left or right, got %q", string(m))
	}
}

// Axis is a gantry axis accepted by MoveRelative.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
	AxisZ Axis = "z"
)

// Origin anchors a well offset.
type Origin string

const (
	OriginTop     Origin = "top"
	OriginDefault Origin = "default"
)

// Offset is an XYZ displacement in millimetres.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Coordinates is an absolute deck position in millimetres.
type Coordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Lowered returns the same position dz millimetres further down.
func (c Coordinates) Lowered(dz float64) Coordinates {
	return Coordinates{X: c.X, Y: c.Y, Z: c.Z - dz}
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", c.X, c.Y, c.Z)
}

// WellLocation positions the pipette relative to a well.
type WellLocation struct {
	Origin Origin `json:"origin"`
	Offset Offset `json:"offset"`
}

// topOf builds a fresh top-origin well location for each call.
func topOf(offset Offset) WellLocation {
	return WellLocation{Origin: OriginTop, Offset: offset}
}

// Well identifies a well within loaded labware plus an offset from its top.
type Well struct {
	LabwareID string
	WellName  string
	Offset    Offset
}

func (w Well) validate(operation string) error {
	if err := requireID(operation, "labware id", w.LabwareID); err != nil {
		return err
	}
	return requireID(operation, "well name", w.WellName)
}

// wellParams is the labware/well block shared by well-targeted commands.
type wellParams struct {
	LabwareID    string       `json:"labwareId"`
	WellName     string       `json:"wellName"`
	WellLocation WellLocation `json:"wellLocation"`
}

func (w Well) params() wellParams {
	return wellParams{
		LabwareID:    w.LabwareID,
		WellName:     w.WellName,
		WellLocation: topOf(w.Offset),
	}
}
