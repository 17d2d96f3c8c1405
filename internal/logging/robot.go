package logging

// Keys for robot-side values that show up across commands and transfers.
const (
	FieldCommandStatus = "command_status"
	FieldMount         = "mount"
	FieldVolume        = "volume_ul"
)

// RunID tags a record with the run a command targets.
func RunID(id string) Attr { return String(FieldRunID, id) }

// CommandID tags a record with the robot-assigned command id.
func CommandID(id string) Attr { return String(FieldCommandID, id) }

// CommandStatus records the status the robot reported for a command.
func CommandStatus(status string) Attr { return String(FieldCommandStatus, status) }

// Mount records a pipette mount.
func Mount(mount string) Attr { return String(FieldMount, mount) }

// Volume records a liquid volume in microlitres.
func Volume(ul float64) Attr { return Float64(FieldVolume, ul) }

// Well records a labware/well pair under key as "labware/well".
func Well(key, labwareID, wellName string) Attr {
	return String(key, labwareID+"/"+wellName)
}
