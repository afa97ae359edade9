package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/lixenwraith/bitflood/config"
)

const toolName = "floodctl"

type command struct {
	run   func(args []string, out io.Writer) error
	brief string
}

var commands = map[string]command{
	"run":     {cmdRun, "fill from the seed and report counts"},
	"compare": {cmdCompare, "run every algorithm on the same plane"},
	"verify":  {cmdVerify, "check every algorithm against a breadth-first reference"},
	"save":    {cmdSave, "generate a plane and store it"},
	"show":    {cmdShow, "print a stored plane"},
	"list":    {cmdList, "list stored planes"},
	"export":  {cmdExport, "write a plane and its fill as a BMP image"},
	"init":    {cmdInit, "write a default config file"},
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	name := os.Args[1]
	if name == "help" || name == "-h" || name == "-help" {
		usage(os.Stdout)
		return
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n\n", toolName, name)
		usage(os.Stderr)
		os.Exit(2)
	}

	if err := cmd.run(os.Args[2:], os.Stdout); err != nil {
		if err == flag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "%s %s: %v\n", toolName, name, err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s <command> [flags]\n\nCommands:\n", toolName)
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "  %-8s %s\n", n, commands[n].brief)
	}
	fmt.Fprintf(w, "\nRun '%s <command> -h' for command flags.\n", toolName)
}

// planeFlags binds the config fields shared by every command. Flags override
// the config file only when given on the command line.
type planeFlags struct {
	fs *flag.FlagSet

	configPath string
	dim        int
	algorithm  string
	pattern    string
	density    float64
	noiseSeed  int64
	braiding   float64
	seedX      int
	seedY      int
	dir        string
	name       string
	debug      bool
}

func newPlaneFlags(cmd string) *planeFlags {
	def := config.Default()
	f := &planeFlags{fs: flag.NewFlagSet(toolName+" "+cmd, flag.ContinueOnError)}

	f.fs.StringVar(&f.configPath, "config", "", "TOML config file")
	f.fs.IntVar(&f.dim, "dim", def.Dim, "plane side, a power of two in [8, 4096]")
	f.fs.StringVar(&f.algorithm, "algo", def.Algorithm, "algorithm: dfs, span, simul")
	f.fs.StringVar(&f.pattern, "pattern", def.Pattern, "occupancy pattern: empty, full, checker, worst, noise, frame, maze, file")
	f.fs.Float64Var(&f.density, "density", def.Density, "noise pattern density [0.0 - 1.0]")
	f.fs.Int64Var(&f.noiseSeed, "noise-seed", def.NoiseSeed, "random seed for noise and maze patterns")
	f.fs.Float64Var(&f.braiding, "braid", def.Braiding, "maze braiding factor [0.0 - 1.0]")
	f.fs.IntVar(&f.seedX, "x", def.SeedX, "fill seed column")
	f.fs.IntVar(&f.seedY, "y", def.SeedY, "fill seed row")
	f.fs.StringVar(&f.dir, "dir", def.PlaneDir, "plane store directory")
	f.fs.StringVar(&f.name, "name", def.PlaneName, "stored plane name")
	f.fs.BoolVar(&f.debug, "debug", def.Debug, "write logs to "+config.LogDir+"/"+config.LogFileName(toolName))
	return f
}

func (f *planeFlags) parse(args []string) (config.Config, error) {
	if err := f.fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return cfg, err
		}
	}

	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "dim":
			cfg.Dim = f.dim
		case "algo":
			cfg.Algorithm = f.algorithm
		case "pattern":
			cfg.Pattern = f.pattern
		case "density":
			cfg.Density = f.density
		case "noise-seed":
			cfg.NoiseSeed = f.noiseSeed
		case "braid":
			cfg.Braiding = f.braiding
		case "x":
			cfg.SeedX = f.seedX
		case "y":
			cfg.SeedY = f.seedY
		case "dir":
			cfg.PlaneDir = f.dir
		case "name":
			cfg.PlaneName = f.name
		case "debug":
			cfg.Debug = f.debug
		}
	})

	return cfg, cfg.Validate()
}
