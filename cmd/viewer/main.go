package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	levelName := flag.String("level", "loop.yaml", "level file in levels/")
	tuningPath := flag.String("tuning", "", "tuning yaml laid over the embedded defaults")
	debug := flag.Bool("debug", false, "log state changes")
	zoom := flag.Float64("zoom", 1.5, "initial zoom")
	replay := flag.Bool("replay", false, "drive actors from the level's input timeline instead of the keyboard")
	watch := flag.Bool("watch", true, "reload level, tuning and scripts when they change on disk")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("loopdeloop")

	v, err := newViewer(*levelName, *tuningPath, *debug, *replay, *zoom, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer v.Close()

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
