package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/mastercactapus/gcsim/gcode"
	"github.com/mastercactapus/gcsim/probe"
)

type probeReport struct {
	Program string      `json:"program"`
	State   gcode.State `json:"state"`
	Bounds  *bounds     `json:"bounds,omitempty"`
}

// probe generates a probing program from form values, simulates it from
// the machine origin and returns both.
func (a *api) probe(w http.ResponseWriter, req *http.Request) {
	var err error
	var opt probe.GridOptions
	opt.ZeroZAxis = req.FormValue("zeroZAxis") == "1"

	parse := func(param string) (val float64) {
		if err != nil {
			return 0
		}
		val, err = strconv.ParseFloat(req.FormValue(param), 64)
		return val
	}
	opt.FeedRate = parse("feedRate")
	opt.MaxTravel = parse("maxZTravel")

	grid := req.FormValue("grid") == "1"
	if grid {
		opt.DistanceX = parse("xDist")
		opt.DistanceY = parse("yDist")
		opt.Granularity = parse("granularity")
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := a.profile.NewMachine()
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	start := m.AbsPos()

	var blocks []*gcode.Block
	if grid {
		seq, err := opt.Sequence(start, start.Z)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		blocks = append(opt.Quick(start), seq...)
	} else {
		blocks = opt.Program(start)
	}

	lines := probe.Lines(blocks)
	for i, l := range lines {
		err = m.ProcessLine(l)
		if err != nil {
			log.Printf("ERROR: probe grid=%t: %+v", grid, err)
			http.Error(w, (&gcode.LineError{Line: i + 1, Text: l.String(), Err: err}).Error(), 500)
			return
		}
	}

	var rep probeReport
	for _, l := range lines {
		rep.Program += l.String() + "\n"
	}
	rep.State = m.State()
	if min, max, ok := m.Bounds(); ok {
		rep.Bounds = &bounds{Min: min, Max: max}
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(rep)
	if err != nil {
		log.Println("ERROR: encode:", err)
	}
}
