package main

import (
	"strings"

	"github.com/spf13/cobra"

	"otctl/internal/commands"
	"otctl/internal/services"
)

type offsetFlags struct {
	x, y, z float64
}

func (o *offsetFlags) register(cmd *cobra.Command, prefix, what string) {
	name := func(axis string) string {
		if prefix == "" {
			return "offset-" + axis
		}
		return prefix + "-offset-" + axis
	}
	cmd.Flags().Float64Var(&o.x, name("x"), 0, what+" X offset (mm)")
	cmd.Flags().Float64Var(&o.y, name("y"), 0, what+" Y offset (mm)")
	cmd.Flags().Float64Var(&o.z, name("z"), 0, what+" Z offset (mm)")
}

func (o offsetFlags) offset() commands.Offset {
	return commands.Offset{X: o.x, Y: o.y, Z: o.z}
}

type wellFlags struct {
	labware string
	well    string
	offset  offsetFlags
}

func (w *wellFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&w.labware, "labware", "", "Labware id")
	cmd.Flags().StringVar(&w.well, "well", "", "Well name (e.g. A1)")
	w.offset.register(cmd, "", "Well")
}

func (w wellFlags) set() bool {
	return strings.TrimSpace(w.labware) != "" || strings.TrimSpace(w.well) != ""
}

func (w wellFlags) target() commands.Well {
	return commands.Well{
		LabwareID: strings.TrimSpace(w.labware),
		WellName:  strings.TrimSpace(w.well),
		Offset:    w.offset.offset(),
	}
}

type coordinateFlags struct {
	x, y, z float64
}

func (c *coordinateFlags) register(cmd *cobra.Command, what string) {
	cmd.Flags().Float64Var(&c.x, "x", 0, what+" X coordinate (mm)")
	cmd.Flags().Float64Var(&c.y, "y", 0, what+" Y coordinate (mm)")
	cmd.Flags().Float64Var(&c.z, "z", 0, what+" Z coordinate (mm)")
}

func (c coordinateFlags) coordinates() commands.Coordinates {
	return commands.Coordinates{X: c.x, Y: c.y, Z: c.z}
}

// requireFlags fails when any of the named flags was not given.
func requireFlags(cmd *cobra.Command, names ...string) error {
	var missing []string
	for _, name := range names {
		if !cmd.Flags().Changed(name) {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return services.Invalid("otctl", cmd.CommandPath(), "missing required flags: %s", strings.Join(missing, ", "))
	}
	return nil
}
