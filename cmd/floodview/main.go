package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/bitflood/config"
)

const toolName = "floodview"

var (
	configFlag  = flag.String("config", "", "TOML config file")
	dimFlag     = flag.Int("dim", 0, "plane side, overrides config")
	algoFlag    = flag.String("algo", "", "algorithm: dfs, span, simul")
	patternFlag = flag.String("pattern", "", "initial occupancy pattern")
	stepFlag    = flag.Bool("step", false, "start in step mode")
	muteFlag    = flag.Bool("mute", false, "disable the completion tone")
	debugFlag   = flag.Bool("debug", false, "write logs to "+config.LogDir+"/"+config.LogFileName(toolName))
)

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			return cfg, err
		}
	}

	if *dimFlag != 0 {
		cfg.Dim = *dimFlag
	}
	if *algoFlag != "" {
		cfg.Algorithm = *algoFlag
	}
	if *patternFlag != "" {
		cfg.Pattern = *patternFlag
	}
	if *stepFlag {
		cfg.StepMode = true
	}
	if *muteFlag {
		cfg.Sound = false
	}
	if *debugFlag {
		cfg.Debug = true
	}
	return cfg, cfg.Validate()
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", toolName, err)
		os.Exit(2)
	}

	if logFile := config.SetupLogging(toolName, cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	// Panic Recovery: restore the terminal before reporting
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mFLOODVIEW CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	screen.EnableMouse()
	screen.HideCursor()

	sound := NewSound(cfg.Sound)
	defer sound.Close()

	v, err := NewViewer(screen, cfg, sound)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "%s: %v\n", toolName, err)
		os.Exit(1)
	}

	run(v, cfg.FrameDuration())
	screen.Fini()
}

// run polls input on its own goroutine and redraws once per frame
func run(v *Viewer, frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	v.draw()
	for {
		select {
		case ev := <-eventChan:
			if !v.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			v.tick()
			v.draw()
		}
	}
}
