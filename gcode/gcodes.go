package gcode

import "strconv"

// Execution order within a block, following the LinuxCNC order of
// execution.
const (
	priorityFeedRateMode  = 30
	priorityFeedRate      = 40
	prioritySpindleSpeed  = 50
	priorityTool          = 60
	priorityIO            = 70
	priorityToolChange    = 80
	prioritySpindle       = 90
	priorityCoolant       = 110
	priorityOverride      = 120
	PriorityUserDefined   = 130
	priorityDwell         = 140
	priorityPlane         = 150
	priorityUnits         = 160
	priorityCutterComp    = 170
	priorityToolLength    = 180
	priorityCoordSystem   = 190
	priorityPathControl   = 200
	priorityDistance      = 210
	priorityReturnMode    = 220
	priorityOffsets       = 230
	priorityMachineCoords = 240
	priorityCancelMotion  = 241
	priorityMotion        = 242
	priorityStopping      = 250
)

const (
	axisParams   = "XYZABCUVW"
	cannedParams = "XYZUVW"
)

func gk(n float64) Key { return Word{W: 'G', Arg: n}.Key() }
func mk(n float64) Key { return Word{W: 'M', Arg: n}.Key() }

func builtinKinds() []*Kind {
	kinds := []*Kind{
		// motion
		{Name: "rapid move", Key: gk(0), Group: ModalGroupMotion, Params: axisParams, Priority: priorityMotion, Motion: MotionRapid, Apply: (*Machine).applyMotion},
		{Name: "linear move", Key: gk(1), Group: ModalGroupMotion, Params: axisParams, Priority: priorityMotion, Motion: MotionLinear, Apply: (*Machine).applyMotion},
		{Name: "arc move clockwise", Key: gk(2), Group: ModalGroupMotion, Params: axisParams + "IJKRP", Priority: priorityMotion, Motion: MotionArc, Clockwise: true, Apply: (*Machine).applyMotion},
		{Name: "arc move counter-clockwise", Key: gk(3), Group: ModalGroupMotion, Params: axisParams + "IJKRP", Priority: priorityMotion, Motion: MotionArc, Apply: (*Machine).applyMotion},
		{Name: "cubic spline", Key: gk(5), Group: ModalGroupMotion, Params: axisParams + "IJPQ", Priority: priorityMotion, Motion: MotionLinear, Apply: (*Machine).applyMotion},
		{Name: "quadratic spline", Key: gk(5.1), Group: ModalGroupMotion, Params: axisParams + "IJ", Priority: priorityMotion, Motion: MotionLinear, Apply: (*Machine).applyMotion},
		{Name: "nurbs block start", Key: gk(5.2), Group: ModalGroupMotion, Params: axisParams + "PL", Priority: priorityMotion, Motion: MotionLinear, Apply: (*Machine).applyMotion},
		{Name: "nurbs block end", Key: gk(5.3), Group: ModalGroupMotion, Priority: priorityMotion},
		{Name: "spindle synchronized motion", Key: gk(33), Group: ModalGroupMotion, Params: axisParams + "K", Priority: priorityMotion, Motion: MotionLinear, Apply: (*Machine).applyMotion},
		{Name: "rigid tapping", Key: gk(33.1), Group: ModalGroupMotion, Params: axisParams + "K", Priority: priorityMotion, Motion: MotionLinear, Apply: (*Machine).applyMotion},
		{Name: "straight probe", Key: gk(38.2), Group: ModalGroupMotion, Params: axisParams, Priority: priorityMotion, Motion: MotionLinear, Apply: (*Machine).applyMotion},
		{Name: "straight probe", Key: gk(38.3), Group: ModalGroupMotion, Params: axisParams, Priority: priorityMotion, Motion: MotionLinear, Apply: (*Machine).applyMotion},
		{Name: "straight probe", Key: gk(38.4), Group: ModalGroupMotion, Params: axisParams, Priority: priorityMotion, Motion: MotionLinear, Apply: (*Machine).applyMotion},
		{Name: "straight probe", Key: gk(38.5), Group: ModalGroupMotion, Params: axisParams, Priority: priorityMotion, Motion: MotionLinear, Apply: (*Machine).applyMotion},
		{Name: "cancel canned cycle", Key: gk(80), Group: ModalGroupNonModal, Priority: priorityCancelMotion, Apply: (*Machine).applyCancelMotion},

		// canned cycles
		{Name: "drilling cycle", Key: gk(81), Group: ModalGroupMotion, Params: cannedParams + "RL", ModalParams: "ZR", Priority: priorityMotion, Motion: MotionCannedCycle, Apply: (*Machine).applyMotion},
		{Name: "drilling cycle with dwell", Key: gk(82), Group: ModalGroupMotion, Params: cannedParams + "RLP", ModalParams: "ZRP", Priority: priorityMotion, Motion: MotionCannedCycle, Apply: (*Machine).applyMotion},
		{Name: "peck drilling cycle", Key: gk(83), Group: ModalGroupMotion, Params: cannedParams + "RLQ", ModalParams: "ZRQ", Priority: priorityMotion, Motion: MotionCannedCycle, Apply: (*Machine).applyMotion},
		{Name: "chip breaking cycle", Key: gk(73), Group: ModalGroupMotion, Params: cannedParams + "RLQ", ModalParams: "ZRQ", Priority: priorityMotion, Motion: MotionCannedCycle, Apply: (*Machine).applyMotion},
		{Name: "boring cycle", Key: gk(85), Group: ModalGroupMotion, Params: cannedParams + "RLP", ModalParams: "ZRP", Priority: priorityMotion, Motion: MotionCannedCycle, Apply: (*Machine).applyMotion},
		{Name: "boring cycle with dwell", Key: gk(89), Group: ModalGroupMotion, Params: cannedParams + "RLP", ModalParams: "ZRP", Priority: priorityMotion, Motion: MotionCannedCycle, Apply: (*Machine).applyMotion},
		{Name: "threading cycle", Key: gk(76), Group: ModalGroupMotion, Params: "XZPIJRKQHLE", Priority: priorityMotion, Motion: MotionLinear, Apply: (*Machine).applyMotion},

		{Name: "dwell", Key: gk(4), Group: ModalGroupNonModal, Params: "P", Priority: priorityDwell, Motion: MotionDwell, Apply: (*Machine).applyDwell},

		{Name: "return to initial level", Key: gk(98), Group: ModalGroupCannedCyclesMode, Priority: priorityReturnMode},
		{Name: "return to R level", Key: gk(99), Group: ModalGroupCannedCyclesMode, Priority: priorityReturnMode},

		// distance
		{Name: "absolute distance mode", Key: gk(90), Group: ModalGroupDistanceMode, Priority: priorityDistance},
		{Name: "incremental distance mode", Key: gk(91), Group: ModalGroupDistanceMode, Priority: priorityDistance},
		{Name: "absolute arc distance mode", Key: gk(90.1), Group: ModalGroupArcDistanceMode, Priority: priorityDistance},
		{Name: "incremental arc distance mode", Key: gk(91.1), Group: ModalGroupArcDistanceMode, Priority: priorityDistance},
		{Name: "lathe diameter mode", Key: gk(7), Group: ModalGroupLatheDiameterMode, Priority: priorityDistance},
		{Name: "lathe radius mode", Key: gk(8), Group: ModalGroupLatheDiameterMode, Priority: priorityDistance},

		// feed rate mode
		{Name: "inverse time feed mode", Key: gk(93), Group: ModalGroupFeedRateMode, Priority: priorityFeedRateMode},
		{Name: "units per minute feed mode", Key: gk(94), Group: ModalGroupFeedRateMode, Priority: priorityFeedRateMode},
		{Name: "units per revolution feed mode", Key: gk(95), Group: ModalGroupFeedRateMode, Priority: priorityFeedRateMode},

		// units
		{Name: "inches", Key: gk(20), Group: ModalGroupUnits, Priority: priorityUnits},
		{Name: "millimeters", Key: gk(21), Group: ModalGroupUnits, Priority: priorityUnits},

		// plane selection
		{Name: "select XY plane", Key: gk(17), Group: ModalGroupPlaneSelection, Priority: priorityPlane},
		{Name: "select ZX plane", Key: gk(18), Group: ModalGroupPlaneSelection, Priority: priorityPlane},
		{Name: "select YZ plane", Key: gk(19), Group: ModalGroupPlaneSelection, Priority: priorityPlane},
		{Name: "select UV plane", Key: gk(17.1), Group: ModalGroupPlaneSelection, Priority: priorityPlane},
		{Name: "select WU plane", Key: gk(18.1), Group: ModalGroupPlaneSelection, Priority: priorityPlane},
		{Name: "select VW plane", Key: gk(19.1), Group: ModalGroupPlaneSelection, Priority: priorityPlane},

		// cutter radius compensation
		{Name: "cutter compensation off", Key: gk(40), Group: ModalGroupCutterCompensationMode, Priority: priorityCutterComp},
		{Name: "cutter compensation left", Key: gk(41), Group: ModalGroupCutterCompensationMode, Params: "D", Priority: priorityCutterComp},
		{Name: "cutter compensation right", Key: gk(42), Group: ModalGroupCutterCompensationMode, Params: "D", Priority: priorityCutterComp},
		{Name: "dynamic cutter compensation left", Key: gk(41.1), Group: ModalGroupCutterCompensationMode, Params: "DL", Priority: priorityCutterComp},
		{Name: "dynamic cutter compensation right", Key: gk(42.1), Group: ModalGroupCutterCompensationMode, Params: "DL", Priority: priorityCutterComp},

		// tool length offset
		{Name: "tool length offset", Key: gk(43), Group: ModalGroupToolLength, Params: "H", Priority: priorityToolLength},
		{Name: "dynamic tool length offset", Key: gk(43.1), Group: ModalGroupToolLength, Params: axisParams, Priority: priorityToolLength},
		{Name: "apply additional tool length offset", Key: gk(43.2), Group: ModalGroupToolLength, Params: "H", Priority: priorityToolLength},
		{Name: "cancel tool length offset", Key: gk(49), Group: ModalGroupToolLength, Priority: priorityToolLength},

		// path control
		{Name: "exact path mode", Key: gk(61), Group: ModalGroupControlMode, Priority: priorityPathControl},
		{Name: "exact stop mode", Key: gk(61.1), Group: ModalGroupControlMode, Priority: priorityPathControl},
		{Name: "path blending", Key: gk(64), Group: ModalGroupControlMode, Params: "PQ", Priority: priorityPathControl},

		// spindle speed mode
		{Name: "constant surface speed", Key: gk(96), Group: ModalGroupSpindleMode, Params: "DS", Priority: prioritySpindle},
		{Name: "RPM mode", Key: gk(97), Group: ModalGroupSpindleMode, Priority: prioritySpindle},

		// non-modal
		{Name: "set offsets", Key: gk(10), Group: ModalGroupNonModal, Params: axisParams + "LPRIJQ", Priority: priorityOffsets, Apply: (*Machine).applySetOffsets},
		{Name: "go to predefined position", Key: gk(28), Group: ModalGroupNonModal, Params: axisParams, Priority: priorityOffsets, Apply: (*Machine).applyGoHome},
		{Name: "set predefined position", Key: gk(28.1), Group: ModalGroupNonModal, Priority: priorityOffsets, Apply: (*Machine).applySetHome},
		{Name: "go to second predefined position", Key: gk(30), Group: ModalGroupNonModal, Params: axisParams, Priority: priorityOffsets, Apply: (*Machine).applyGoHome},
		{Name: "set second predefined position", Key: gk(30.1), Group: ModalGroupNonModal, Priority: priorityOffsets, Apply: (*Machine).applySetHome},
		{Name: "move in machine coordinates", Key: gk(53), Group: ModalGroupNonModal, Priority: priorityMachineCoords, Apply: (*Machine).applyMachineCoords},
		{Name: "coordinate system offset", Key: gk(92), Group: ModalGroupNonModal, Params: axisParams, Priority: priorityOffsets, Apply: (*Machine).applyTempOffset},
		{Name: "reset coordinate system offsets", Key: gk(92.1), Group: ModalGroupNonModal, Priority: priorityOffsets, Apply: (*Machine).applyTempOffset},
		{Name: "suspend coordinate system offsets", Key: gk(92.2), Group: ModalGroupNonModal, Priority: priorityOffsets, Apply: (*Machine).applyTempOffset},
		{Name: "restore coordinate system offsets", Key: gk(92.3), Group: ModalGroupNonModal, Priority: priorityOffsets, Apply: (*Machine).applyTempOffset},

		// program flow
		{Name: "pause", Key: mk(0), Group: ModalGroupStopping, Priority: priorityStopping},
		{Name: "optional pause", Key: mk(1), Group: ModalGroupStopping, Priority: priorityStopping},
		{Name: "end program", Key: mk(2), Group: ModalGroupStopping, Priority: priorityStopping, Apply: (*Machine).applyEndProgram},
		{Name: "end program and rewind", Key: mk(30), Group: ModalGroupStopping, Priority: priorityStopping, Apply: (*Machine).applyEndProgram},
		{Name: "pallet change pause", Key: mk(60), Group: ModalGroupStopping, Priority: priorityStopping},

		// spindle
		{Name: "start spindle clockwise", Key: mk(3), Group: ModalGroupSpindle, Priority: prioritySpindle},
		{Name: "start spindle counter-clockwise", Key: mk(4), Group: ModalGroupSpindle, Priority: prioritySpindle},
		{Name: "stop spindle", Key: mk(5), Group: ModalGroupSpindle, Priority: prioritySpindle},
		{Name: "orient spindle", Key: mk(19), Group: ModalGroupSpindle, Params: "RQP", Priority: prioritySpindle},

		// coolant
		{Name: "mist coolant on", Key: mk(7), Group: ModalGroupCoolant, Priority: priorityCoolant},
		{Name: "flood coolant on", Key: mk(8), Group: ModalGroupCoolant, Priority: priorityCoolant},
		{Name: "coolant off", Key: mk(9), Group: ModalGroupCoolant, Priority: priorityCoolant},

		// tool change
		{Name: "tool change", Key: mk(6), Group: ModalGroupToolChange, Params: "T", Priority: priorityToolChange, Apply: (*Machine).applyToolChange},
		{Name: "set current tool", Key: mk(61), Group: ModalGroupToolChange, Params: "Q", Priority: priorityToolChange, Apply: (*Machine).applyToolChange},

		// overrides
		{Name: "enable speed and feed overrides", Key: mk(48), Group: ModalGroupOverride, Priority: priorityOverride},
		{Name: "disable speed and feed overrides", Key: mk(49), Group: ModalGroupOverride, Priority: priorityOverride},
		{Name: "feed override control", Key: mk(50), Group: ModalGroupOverride, Params: "P", Priority: priorityOverride},
		{Name: "spindle speed override control", Key: mk(51), Group: ModalGroupOverride, Params: "P", Priority: priorityOverride},
		{Name: "adaptive feed control", Key: mk(52), Group: ModalGroupOverride, Params: "P", Priority: priorityOverride},
		{Name: "feed stop control", Key: mk(53), Group: ModalGroupOverride, Params: "P", Priority: priorityOverride},

		// digital and analog I/O
		{Name: "digital output on synchronized", Key: mk(62), Group: ModalGroupNonModal, Params: "P", Priority: priorityIO},
		{Name: "digital output off synchronized", Key: mk(63), Group: ModalGroupNonModal, Params: "P", Priority: priorityIO},
		{Name: "digital output on", Key: mk(64), Group: ModalGroupNonModal, Params: "P", Priority: priorityIO},
		{Name: "digital output off", Key: mk(65), Group: ModalGroupNonModal, Params: "P", Priority: priorityIO},
		{Name: "wait on input", Key: mk(66), Group: ModalGroupNonModal, Params: "PELQ", Priority: priorityIO},
		{Name: "analog output synchronized", Key: mk(67), Group: ModalGroupNonModal, Params: "EQ", Priority: priorityIO},
		{Name: "analog output", Key: mk(68), Group: ModalGroupNonModal, Params: "EQ", Priority: priorityIO},

		// feed, speed and tool selection
		{Name: "feed rate", Key: Key{Letter: 'F'}, AnyValue: true, Group: ModalGroupFeedRate, Priority: priorityFeedRate},
		{Name: "spindle speed", Key: Key{Letter: 'S'}, AnyValue: true, Group: ModalGroupSpindleSpeed, Priority: prioritySpindleSpeed},
		{Name: "select tool", Key: Key{Letter: 'T'}, AnyValue: true, Group: ModalGroupTool, Priority: priorityTool},
	}

	// work coordinate systems G54..G59.3
	for i, n := range []float64{54, 55, 56, 57, 58, 59, 59.1, 59.2, 59.3} {
		kinds = append(kinds, &Kind{
			Name:     "select coordinate system " + strconv.Itoa(i+1),
			Key:      gk(n),
			Group:    ModalGroupCoordinateSystem,
			Priority: priorityCoordSystem,
		})
	}

	return kinds
}
