package gcode

import (
	"context"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

func Parse(data string) ([]*Line, error) {
	r := NewParser(strings.NewReader(data), ParseOptions{})
	var lines []*Line
	for {
		l, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}

func MustParse(data string) []*Line {
	l, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return l
}

// ParseConcurrent parses every line of data using up to workers
// goroutines (NumCPU when workers <= 0). Lines are returned in program
// order, identical to what Parser yields.
func ParseConcurrent(ctx context.Context, data string, workers int, opt ParseOptions) ([]*Line, error) {
	texts := strings.Split(data, "\n")
	if len(texts) > 0 && texts[len(texts)-1] == "" {
		texts = texts[:len(texts)-1]
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	lines := make([]*Line, len(texts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, s := range texts {
		i, s := i, strings.TrimRight(s, "\r")
		g.Go(func() error {
			err := ctx.Err()
			if err != nil {
				return err
			}
			l, err := ParseLineWith(s, opt)
			if err != nil {
				return &LineError{Line: i + 1, Text: s, Err: err}
			}
			lines[i] = l
			return nil
		})
	}
	err := g.Wait()
	if err != nil {
		return nil, err
	}

	// the macro region depends on every preceding line
	p := &Parser{}
	for _, l := range lines {
		p.markMacro(l)
	}
	return lines, nil
}
