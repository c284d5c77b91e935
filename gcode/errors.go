package gcode

import (
	"fmt"
	"strings"
)

// UnsupportedInstructionError reports words that resolve to no known
// instruction, or parameters that cannot be assigned in the current mode.
type UnsupportedInstructionError struct {
	Words []Word

	// Mode is the machine mode at the time, empty when raised by the parser.
	Mode string
}

func (e *UnsupportedInstructionError) Error() string {
	var codes, params []string
	for _, w := range e.Words {
		if w.isInstruction() {
			codes = append(codes, w.String())
		} else {
			params = append(params, w.String())
		}
	}
	var parts []string
	if len(codes) > 0 {
		parts = append(parts, "unsupported gcode(s) "+strings.Join(codes, " "))
	}
	if len(params) > 0 {
		parts = append(parts, "modal parameter(s) "+strings.Join(params, " ")+" cannot be assigned")
	}
	msg := strings.Join(parts, "; ")
	if e.Mode != "" {
		msg += " (machine mode: " + e.Mode + ")"
	}
	return msg
}

// GeometricValidationError reports an arc whose geometry does not close.
type GeometricValidationError struct {
	GCode     *GCode
	Reason    string
	R1, R2    float64
	Tolerance float64
}

func (e *GeometricValidationError) Error() string {
	msg := e.Reason
	if e.GCode != nil {
		msg = e.GCode.String() + ": " + msg
	}
	if e.R1 != 0 || e.R2 != 0 {
		msg += fmt.Sprintf(" (start radius %g, end radius %g, tolerance %g)", e.R1, e.R2, e.Tolerance)
	}
	return msg
}

// ModalConflictError reports two instructions of one block claiming the
// same modal group.
type ModalConflictError struct {
	Group  ModalGroup
	GCodes []*GCode
}

func (e *ModalConflictError) Error() string {
	words := make([]string, len(e.GCodes))
	for i, g := range e.GCodes {
		words[i] = g.Word.String()
	}
	return fmt.Sprintf("multiple words from %s modal group: %s", e.Group, strings.Join(words, ", "))
}

// LineError attaches the physical line to an error.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
