package main

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/websocket"

	"github.com/mastercactapus/gcsim/coord"
	"github.com/mastercactapus/gcsim/gcode"
	"github.com/mastercactapus/gcsim/meshlevel"
)

type lineReport struct {
	Line  int            `json:"line"`
	Block string         `json:"block"`
	Error string         `json:"error,omitempty"`
	Abs   coord.Position `json:"abs"`
}

type bounds struct {
	Min coord.Position `json:"min"`
	Max coord.Position `json:"max"`
}

type simulateReport struct {
	Lines  []lineReport `json:"lines"`
	Errors int          `json:"errors"`
	State  gcode.State  `json:"state"`
	Bounds *bounds      `json:"bounds,omitempty"`
}

// simulateProgram runs every line on m. A failed block leaves the
// machine unchanged and is reported; simulation continues with the next
// line.
func simulateProgram(m *gcode.Machine, lines []*gcode.Line) simulateReport {
	var rep simulateReport
	for i, l := range lines {
		if l.Block == nil {
			continue
		}
		lr := lineReport{Line: i + 1, Block: l.Block.String()}
		err := m.ProcessLine(l)
		if err != nil {
			lr.Error = err.Error()
			rep.Errors++
		}
		lr.Abs = m.AbsPos()
		rep.Lines = append(rep.Lines, lr)
	}
	rep.State = m.State()
	if min, max, ok := m.Bounds(); ok {
		rep.Bounds = &bounds{Min: min, Max: max}
	}
	return rep
}

func (a *api) simulate(w http.ResponseWriter, req *http.Request) {
	text, code, err := a.program(req)
	if err != nil {
		http.Error(w, err.Error(), code)
		return
	}
	m, err := a.profile.NewMachine()
	if err != nil {
		log.Printf("ERROR: new machine: %+v", err)
		http.Error(w, err.Error(), 500)
		return
	}

	lines, err := gcode.ParseConcurrent(req.Context(), text, 0, gcode.ParseOptions{
		Registry:        m.Registry(),
		AllowUnresolved: true,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rep := simulateProgram(m, lines)
	a.publish(rep.State)

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(rep)
	if err != nil {
		log.Println("ERROR: encode:", err)
	}
}

// level rewrites a program to follow the probed surface stored in
// grid.json, relative to the first probe point.
func (a *api) level(w http.ResponseWriter, req *http.Request) {
	ok, gridName := safePath(a.dataDir, "grid.json")
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	data, err := os.ReadFile(gridName)
	if os.IsNotExist(err) {
		http.Error(w, "no probe grid", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("ERROR: read '%s': %+v", gridName, err)
		http.Error(w, err.Error(), 500)
		return
	}
	var points []coord.Point
	err = json.Unmarshal(data, &points)
	if err == nil && len(points) == 0 {
		err = errors.New("empty probe grid")
	}
	if err != nil {
		http.Error(w, "grid.json: "+err.Error(), http.StatusInternalServerError)
		return
	}
	mesh, err := meshlevel.NewMesh(meshlevel.OffsetFrom(points[0].Z, points))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	granularity := 1.0
	if s := req.URL.Query().Get("granularity"); s != "" {
		granularity, err = strconv.ParseFloat(s, 64)
		if err != nil || granularity <= 0 {
			http.Error(w, "invalid granularity", http.StatusBadRequest)
			return
		}
	}

	text, code, err := a.program(req)
	if err != nil {
		http.Error(w, err.Error(), code)
		return
	}
	m, err := a.profile.NewMachine()
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	lines, err := gcode.ParseConcurrent(req.Context(), text, 0, gcode.ParseOptions{Registry: m.Registry()})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	lvl, err := meshlevel.New(meshlevel.Config{
		ZOffsetter:  mesh,
		Granularity: granularity,
		Machine:     m,
		Reader:      &gcode.LinesReader{Lines: lines},
	})
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	// read fully first so a failure can still be reported
	var out []*gcode.Line
	for {
		l, err := lvl.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		out = append(out, l)
	}

	w.Header().Set("Content-Type", "text/plain")
	_, err = io.Copy(w, gcode.NewBuffer(&gcode.LinesReader{Lines: out}))
	if err != nil {
		log.Println("ERROR: write:", err)
	}
}

type sessionReply struct {
	State *gcode.State `json:"state,omitempty"`
	Error string       `json:"error,omitempty"`
}

// session runs a live simulation: each text message is a program line,
// answered with the resulting state or an error. Every connection has its
// own machine.
func (a *api) session(w http.ResponseWriter, req *http.Request) {
	m, err := a.profile.NewMachine()
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	ws, err := a.upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Println("ERROR: upgrade:", err)
		return
	}
	defer ws.Close()

	opt := gcode.ParseOptions{Registry: m.Registry(), AllowUnresolved: true}
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("ERROR: read:", err)
			}
			return
		}

		var reply sessionReply
		l, err := gcode.ParseLineWith(string(data), opt)
		if err == nil {
			err = m.ProcessLine(l)
		}
		if err != nil {
			reply.Error = err.Error()
		} else {
			s := m.State()
			reply.State = &s
			a.publish(s)
		}

		err = ws.WriteJSON(reply)
		if err != nil {
			log.Println("ERROR: send:", err)
			return
		}
	}
}
