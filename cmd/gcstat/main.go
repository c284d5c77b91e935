package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/mastercactapus/gcsim/gcode"
	"github.com/mastercactapus/gcsim/profile"
)

func main() {
	log.SetFlags(log.Lshortfile)

	profilePath := flag.String("profile", "", "Machine profile (HCL). Defaults to a GRBL controller.")
	ignore := flag.Bool("ignore-invalid", false, "Skip unknown instructions and unassignable modal parameters.")
	workers := flag.Int("workers", 0, "Parser goroutines, 0 for one per CPU.")
	flag.Parse()

	p := profile.Default()
	if *profilePath != "" {
		var err error
		p, err = profile.Load(*profilePath)
		if err != nil {
			log.Fatal(err)
		}
	}
	if *ignore {
		p.Machine.IgnoreInvalidModal = true
	}

	in := io.Reader(os.Stdin)
	if name := flag.Arg(0); name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}

	err := run(context.Background(), in, os.Stdout, p, *workers)
	if err != nil {
		log.Fatal(err)
	}
}

// run simulates the program read from r and writes its statistics to w.
func run(ctx context.Context, r io.Reader, w io.Writer, p *profile.Profile, workers int) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m, err := p.NewMachine()
	if err != nil {
		return err
	}

	lines, err := gcode.ParseConcurrent(ctx, string(data), workers, gcode.ParseOptions{
		Registry:        m.Registry(),
		AllowUnresolved: true,
	})
	if err != nil {
		return err
	}
	for i, l := range lines {
		err = m.ProcessLine(l)
		if err != nil {
			return &gcode.LineError{Line: i + 1, Text: l.Text, Err: err}
		}
	}

	return writeStats(w, m, len(lines))
}

func writeStats(w io.Writer, m *gcode.Machine, lines int) error {
	s := m.State()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "lines\t%d\n", lines)
	fmt.Fprintf(tw, "mode\t%s\n", s.Mode)
	fmt.Fprintf(tw, "coordinate system\t%d\n", s.CoordSystem)
	fmt.Fprintf(tw, "machine position\t%s\n", s.Abs)
	fmt.Fprintf(tw, "work position\t%s\n", s.Work)
	fmt.Fprintf(tw, "tool\t%d\n", s.Tool)
	if min, max, ok := m.Bounds(); ok {
		fmt.Fprintf(tw, "bounds min\t%s\n", min)
		fmt.Fprintf(tw, "bounds max\t%s\n", max)
	}
	fmt.Fprintf(tw, "distance\t%.3f mm\n", s.Distance)
	fmt.Fprintf(tw, "travel\t%.3f mm\n", s.Travel)
	fmt.Fprintf(tw, "time\t%s\n", s.Elapsed.Round(time.Millisecond))
	return tw.Flush()
}
