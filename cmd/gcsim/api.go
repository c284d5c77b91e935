package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/mastercactapus/gcsim/profile"
)

type api struct {
	http.Handler
	profile  *profile.Profile
	dataDir  string
	sse      *sse.Server
	upgrader websocket.Upgrader
}

func newAPI(p *profile.Profile, dir string) *api {
	r := mux.NewRouter()

	a := &api{
		Handler: r,
		profile: p,
		dataDir: dir,
		sse: sse.NewServer(&sse.Options{
			Logger: log.New(io.Discard, "", 0),
		}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	fs := http.FileServer(http.Dir(dir))
	r.Methods("GET").PathPrefix("/data/").Handler(http.StripPrefix("/data", fs))
	r.Methods("PUT").Path("/data/{name:.+}").HandlerFunc(a.putFile)
	r.Methods("DELETE").Path("/data/{name:.+}").HandlerFunc(a.deleteFile)

	r.Methods("POST").Path("/api/simulate").HandlerFunc(a.simulate)
	r.Methods("POST").Path("/api/level").HandlerFunc(a.level)
	r.Methods("POST").Path("/api/probe").HandlerFunc(a.probe)

	r.PathPrefix("/events/").Handler(a.sse)
	r.Path("/ws").HandlerFunc(a.session)

	return a
}

func safePath(base, name string) (bool, string) {
	if filepath.Separator != '/' && strings.ContainsRune(name, filepath.Separator) {
		log.Println("invalid path '" + name + "'")
		return false, ""
	}
	dir := string(base)
	if dir == "" {
		dir = "."
	}
	fullName := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+name)))
	return true, fullName
}

// publish sends v to SSE clients listening on /events/state.
func (a *api) publish(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("ERROR: marshal json: %+v", err)
		return
	}
	a.sse.SendMessage("/events/state", sse.SimpleMessage(string(data)))
}

// program returns the request body, or the stored file named by the
// file query parameter.
func (a *api) program(req *http.Request) (string, int, error) {
	name := req.URL.Query().Get("file")
	if name == "" {
		data, err := io.ReadAll(req.Body)
		if err != nil {
			return "", http.StatusBadRequest, err
		}
		return string(data), 0, nil
	}

	ok, name := safePath(a.dataDir, name)
	if !ok {
		return "", http.StatusBadRequest, os.ErrInvalid
	}
	data, err := os.ReadFile(name)
	if os.IsNotExist(err) {
		return "", http.StatusNotFound, err
	}
	if err != nil {
		return "", http.StatusInternalServerError, err
	}
	return string(data), 0, nil
}

func (a *api) putFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, mux.Vars(req)["name"])
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	os.MkdirAll(filepath.Dir(name), 0755)
	f, err := os.Create(name)
	if err != nil {
		log.Printf("ERROR: create '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
	defer f.Close()
	_, err = io.Copy(f, req.Body)
	if err != nil {
		log.Printf("ERROR: write '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
}

func (a *api) deleteFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, mux.Vars(req)["name"])
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	err := os.Remove(name)
	if os.IsNotExist(err) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("ERROR: delete '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
}
