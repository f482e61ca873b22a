// Command surfacesim runs a level headless and writes a per-tick CSV trace.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/milk9111/loopdeloop/config"
	"github.com/milk9111/loopdeloop/level"
	"github.com/milk9111/loopdeloop/trace"
)

func main() {
	levelName := flag.String("level", "loop.yaml", "level file in levels/")
	tuningPath := flag.String("tuning", "", "tuning yaml laid over the embedded defaults")
	ticks := flag.Int("ticks", 0, "ticks to run, 0 uses the level's tick count")
	out := flag.String("out", "", "trace csv path, - for stdout, empty for none")
	debug := flag.Bool("debug", false, "log state changes")
	events := flag.Bool("events", true, "log script events")
	flag.Parse()

	if err := run(*levelName, *tuningPath, *out, *ticks, *debug, *events); err != nil {
		log.Fatal(err)
	}
}

func run(levelName, tuningPath, out string, ticks int, debug, logEvents bool) error {
	tuning, err := config.LoadTuning(tuningPath)
	if err != nil {
		return err
	}
	tuning.Debug = tuning.Debug || debug

	lvl, err := level.Load(levelName, tuning)
	if err != nil {
		return err
	}

	var sink io.Writer
	switch out {
	case "":
	case "-":
		sink = os.Stdout
	default:
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("surfacesim: create %s: %w", out, err)
		}
		defer f.Close()
		sink = f
	}
	rec := trace.NewRecorder(sink)
	lvl.World.AddSystem(rec)

	if ticks <= 0 {
		ticks = lvl.Spec.Ticks
	}
	for i := 0; i < ticks; i++ {
		lvl.Step()
		events := lvl.World.Events().Drain()
		if !logEvents {
			continue
		}
		for _, ev := range events {
			log.Printf("surfacesim: tick %d %s %+v", ev.Tick, ev.Type, ev.Data)
		}
	}

	for _, name := range lvl.Actors() {
		log.Printf("surfacesim: %s", trace.Summarize(rec.Rows(), name))
	}
	return nil
}
