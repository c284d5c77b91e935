package gcode

type ModalGroup byte

const (
	ModalGroupNone ModalGroup = iota
	ModalGroupNonModal
	ModalGroupMotion
	ModalGroupPlaneSelection
	ModalGroupDistanceMode
	ModalGroupArcDistanceMode
	ModalGroupFeedRateMode
	ModalGroupUnits
	ModalGroupCutterCompensationMode
	ModalGroupToolLength
	ModalGroupCannedCyclesMode
	ModalGroupCoordinateSystem
	ModalGroupControlMode
	ModalGroupSpindleMode
	ModalGroupLatheDiameterMode
	ModalGroupStopping
	ModalGroupToolChange
	ModalGroupSpindle
	ModalGroupCoolant
	ModalGroupOverride
	ModalGroupFeedRate
	ModalGroupSpindleSpeed
	ModalGroupTool
	ModalGroupUserDefined
	ModalGroupOther

	modalGroupCount
)

var modalGroupNames = [...]string{
	ModalGroupNone:                   "none",
	ModalGroupNonModal:               "nonmodal",
	ModalGroupMotion:                 "motion",
	ModalGroupPlaneSelection:         "plane-selection",
	ModalGroupDistanceMode:           "distance-mode",
	ModalGroupArcDistanceMode:        "arc-distance-mode",
	ModalGroupFeedRateMode:           "feed-rate-mode",
	ModalGroupUnits:                  "units",
	ModalGroupCutterCompensationMode: "cutter-compensation",
	ModalGroupToolLength:             "tool-length",
	ModalGroupCannedCyclesMode:       "canned-cycle",
	ModalGroupCoordinateSystem:       "coordinate-system",
	ModalGroupControlMode:            "control-mode",
	ModalGroupSpindleMode:            "spindle-speed-mode",
	ModalGroupLatheDiameterMode:      "lathe-diameter",
	ModalGroupStopping:               "program-flow",
	ModalGroupToolChange:             "tool-change",
	ModalGroupSpindle:                "spindle",
	ModalGroupCoolant:                "coolant",
	ModalGroupOverride:               "override",
	ModalGroupFeedRate:               "feed-rate",
	ModalGroupSpindleSpeed:           "spindle-speed",
	ModalGroupTool:                   "tool",
	ModalGroupUserDefined:            "user-defined",
	ModalGroupOther:                  "other",
}

func (g ModalGroup) String() string {
	if int(g) < len(modalGroupNames) {
		return modalGroupNames[g]
	}
	return "unknown"
}

// IsModal reports whether instructions of the group persist in a Mode.
func (g ModalGroup) IsModal() bool {
	switch g {
	case ModalGroupNone, ModalGroupNonModal, ModalGroupOther:
		return false
	}
	return g < modalGroupCount
}
