package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/bitflood/bitplane"
	"github.com/lixenwraith/bitflood/config"
	"github.com/lixenwraith/bitflood/flood"
)

var errMismatch = errors.New("fill results disagree")

// result is one measured fill
type result struct {
	fill    *bitplane.Plane
	stats   flood.Stats
	elapsed time.Duration
}

// measure runs a batch fill, or an incremental one through a session
func measure(a flood.Algorithm, occ *bitplane.Plane, x, y int, incremental bool) (result, error) {
	r := result{fill: bitplane.MustNew(occ.Dim())}

	start := time.Now()
	if incremental {
		s, err := flood.NewSession(a, occ, r.fill)
		if err != nil {
			return r, err
		}
		s.Start(x, y)
		s.Run()
		r.stats = s.Stats()
	} else {
		n, err := flood.Fill(a, occ, r.fill, x, y)
		if err != nil {
			return r, err
		}
		r.stats.Filled = n
	}
	r.elapsed = time.Since(start)
	return r, nil
}

// setup parses flags, starts logging and builds the occupancy plane
func setup(f *planeFlags, args []string) (config.Config, *bitplane.Plane, func(), error) {
	cfg, err := f.parse(args)
	if err != nil {
		return cfg, nil, func() {}, err
	}

	logFile := config.SetupLogging(toolName, cfg.Debug)
	done := func() {
		if logFile != nil {
			logFile.Close()
		}
	}

	occ, err := config.BuildPlane(cfg)
	if err != nil {
		done()
		return cfg, nil, func() {}, err
	}
	return cfg, occ, done, nil
}

func cmdRun(args []string, out io.Writer) error {
	f := newPlaneFlags("run")
	incremental := f.fs.Bool("incremental", false, "drive the fill one step at a time")
	show := f.fs.Bool("show", false, "print the plane with filled cells marked")

	cfg, occ, done, err := setup(f, args)
	if err != nil {
		return err
	}
	defer done()

	a, _ := cfg.Algo()
	r, err := measure(a, occ, cfg.SeedX, cfg.SeedY, *incremental)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: filled %d of %d occupied cells in %dus\n",
		a, r.stats.Filled, occ.Count(), r.elapsed.Microseconds())
	if *incremental {
		fmt.Fprintf(out, "steps %d, examined %d, max depth %d\n",
			r.stats.Steps, r.stats.Examined, r.stats.MaxDepth)
	}
	if *show {
		fmt.Fprint(out, bitplane.Render(occ, r.fill, nil))
	}
	return nil
}

func cmdCompare(args []string, out io.Writer) error {
	f := newPlaneFlags("compare")
	incremental := f.fs.Bool("incremental", false, "compare incremental runs with step counters")

	cfg, occ, done, err := setup(f, args)
	if err != nil {
		return err
	}
	defer done()

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tFILLED\tMICROS\tSTEPS\tEXAMINED\tMAX DEPTH")

	var ref *result
	agree := true
	for _, a := range flood.Algorithms() {
		if !a.Supports(cfg.Dim) {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t-\n", a)
			continue
		}
		r, err := measure(a, occ, cfg.SeedX, cfg.SeedY, *incremental)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\n", a, r.stats.Filled, r.elapsed.Microseconds(),
			r.stats.Steps, r.stats.Examined, r.stats.MaxDepth)

		if ref == nil {
			ref = &r
		} else if !ref.fill.Equal(r.fill) {
			agree = false
		}
	}
	tw.Flush()

	if !agree {
		return errMismatch
	}
	return nil
}

func cmdVerify(args []string, out io.Writer) error {
	f := newPlaneFlags("verify")

	cfg, occ, done, err := setup(f, args)
	if err != nil {
		return err
	}
	defer done()

	want := flood.Reachable(occ, cfg.SeedX, cfg.SeedY)
	failed := 0
	for _, a := range flood.Algorithms() {
		if !a.Supports(cfg.Dim) {
			fmt.Fprintf(out, "%-16s skipped (dim %d)\n", a, cfg.Dim)
			continue
		}
		for _, incremental := range []bool{false, true} {
			mode := "batch"
			if incremental {
				mode = "incremental"
			}
			r, err := measure(a, occ, cfg.SeedX, cfg.SeedY, incremental)
			if err != nil {
				return err
			}
			status := "ok"
			if !r.fill.Equal(want) || r.stats.Filled != want.Count() {
				status = fmt.Sprintf("MISMATCH (%d filled, %d reachable)", r.stats.Filled, want.Count())
				failed++
			}
			fmt.Fprintf(out, "%-16s %-11s %s\n", a, mode, status)
		}
	}

	if failed > 0 {
		return errors.Wrapf(errMismatch, "%d runs", failed)
	}
	return nil
}

func cmdSave(args []string, out io.Writer) error {
	f := newPlaneFlags("save")

	cfg, occ, done, err := setup(f, args)
	if err != nil {
		return err
	}
	defer done()

	store := cfg.Store()
	if err := store.Save(cfg.PlaneName, occ); err != nil {
		return err
	}
	fmt.Fprintf(out, "saved %dx%d %s plane (%d occupied) to %s\n",
		cfg.Dim, cfg.Dim, cfg.Pattern, occ.Count(), store.FilePath(cfg.PlaneName))
	return nil
}

func cmdShow(args []string, out io.Writer) error {
	f := newPlaneFlags("show")
	cfg, err := f.parse(args)
	if err != nil {
		return err
	}
	if logFile := config.SetupLogging(toolName, cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	occ, err := cfg.Store().Load(cfg.PlaneName, cfg.Dim)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %dx%d, %d occupied, %d regions\n",
		cfg.PlaneName, cfg.Dim, cfg.Dim, occ.Count(), flood.Regions(occ))
	fmt.Fprint(out, occ)
	return nil
}

func cmdList(args []string, out io.Writer) error {
	f := newPlaneFlags("list")
	cfg, err := f.parse(args)
	if err != nil {
		return err
	}

	names, err := cfg.Store().List()
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Fprintln(out, n)
	}
	return nil
}

func cmdExport(args []string, out io.Writer) error {
	f := newPlaneFlags("export")
	path := f.fs.String("out", "plane.bmp", "output BMP path")
	scale := f.fs.Int("scale", 4, "pixels per cell")
	withFill := f.fs.Bool("fill", true, "fill from the seed before exporting")

	cfg, occ, done, err := setup(f, args)
	if err != nil {
		return err
	}
	defer done()

	if *scale < 1 {
		return errors.Errorf("scale %d must be positive", *scale)
	}

	var fill *bitplane.Plane
	if *withFill {
		a, _ := cfg.Algo()
		r, err := measure(a, occ, cfg.SeedX, cfg.SeedY, false)
		if err != nil {
			return err
		}
		fill = r.fill
	}

	if err := writeBMP(*path, planeImage(occ, fill, *scale)); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s (%dx%d px)\n", *path, cfg.Dim**scale, cfg.Dim**scale)
	return nil
}

func cmdInit(args []string, out io.Writer) error {
	f := newPlaneFlags("init")
	path := f.fs.String("out", "bitflood.toml", "config file to write")

	cfg, err := f.parse(args)
	if err != nil {
		return err
	}
	if err := cfg.Save(*path); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s\n", *path)
	return nil
}
