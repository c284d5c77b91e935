package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/mastercactapus/gcsim/profile"
)

func main() {
	log.SetFlags(log.Lshortfile)

	addr := flag.String("addr", ":9091", "Address to bind the gcsim server to.")
	dir := flag.String("dir", "./data", "Data directory to use.")
	profilePath := flag.String("profile", "", "Machine profile (HCL) to simulate. Defaults to a GRBL controller.")
	flag.Parse()

	p := profile.Default()
	if *profilePath != "" {
		var err error
		p, err = profile.Load(*profilePath)
		if err != nil {
			log.Fatal(err)
		}
	}
	// fail early on a profile that cannot build a machine
	_, err := p.NewMachine()
	if err != nil {
		log.Fatal(err)
	}

	api := newAPI(p, *dir)

	err = http.ListenAndServe(*addr, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		log.Printf("%s %s - %s", req.Method, req.URL.Path, req.RemoteAddr)
		api.ServeHTTP(w, req)
	}))
	if err != nil {
		log.Fatal(err)
	}
}
