package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wingchase/internal/audio"
	"github.com/vovakirdan/wingchase/internal/core"
)

var (
	simLevel   levelFlags
	flagTicks  int
	flagHold   []string
	flagLookDX float32
	flagLookDY float32
	flagQuiet  bool
)

var simCmd = &cobra.Command{
	Use:   "sim [level]",
	Short: "Run a level headless with scripted input",
	Long: `Simulate a level without a terminal UI. Every tick lasts 1/fps seconds.
The --hold directions are pressed before the first tick and never released.
--look-dx and --look-dy turn the camera every tick, in window heights.

The run stops on a win or a loss, or after --ticks ticks.

Examples:
  wingchase sim
  wingchase sim --hold up --ticks 600
  wingchase sim courtyard --hold up,left --look-dx 0.01 --difficulty hard`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSim,
}

func init() {
	simLevel.register(simCmd)
	simCmd.Flags().IntVar(&flagTicks, "ticks", 600, "Maximum number of ticks")
	simCmd.Flags().StringSliceVar(&flagHold, "hold", nil, "Directions held for the whole run: up, down, left, right")
	simCmd.Flags().Float32Var(&flagLookDX, "look-dx", 0, "Horizontal look per tick")
	simCmd.Flags().Float32Var(&flagLookDY, "look-dy", 0, "Vertical look per tick")
	simCmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Do not log audio cues")
}

func runSim(cmd *cobra.Command, args []string) {
	if flagFPS <= 0 {
		exitf("--fps must be positive")
	}
	held, err := parseDirections(flagHold)
	if err != nil {
		exitf("%v", err)
	}

	loaded, err := simLevel.load(args)
	if err != nil {
		exitf("%v", err)
	}
	logger, err := newLogger(os.Stderr, "sim")
	if err != nil {
		exitf("%v", err)
	}

	var sink audio.Sink = audio.NopSink{}
	if !flagQuiet {
		sink = audio.NewLogSink(logger)
	}
	mode, err := newMode(loaded, sink, audio.SynthBank(), logger)
	if err != nil {
		exitf("%v", err)
	}
	defer mode.Close()

	// Pointer motion is measured in window heights.
	const windowH = 1
	for _, d := range held {
		mode.HandleEvent(core.KeyDownEvent(d), windowH)
	}
	looking := flagLookDX != 0 || flagLookDY != 0
	if looking {
		mode.HandleEvent(core.Event{Kind: core.EventPointerDown}, windowH)
	}

	dt := 1 / float32(flagFPS)
	for i := 0; i < flagTicks && !mode.Terminal(); i++ {
		if looking {
			mode.HandleEvent(core.MotionEvent(flagLookDX, flagLookDY), windowH)
		}
		mode.Update(dt)
	}

	eye := mode.Camera().Position()
	fmt.Printf("level:    %s\n", loaded.Info.ID)
	fmt.Printf("state:    %s\n", mode.State())
	fmt.Printf("ticks:    %d\n", mode.Ticks())
	fmt.Printf("elapsed:  %.3fs\n", mode.Elapsed())
	fmt.Printf("camera:   (%.2f, %.2f, %.2f)\n", eye.X(), eye.Y(), eye.Z())
	fmt.Printf("goal:     %.2f away\n", mode.Goal().Position().Sub(eye).Len())
	for _, h := range mode.Hazards() {
		fmt.Printf("%-9s %.2f away\n", h.Node.Name+":", h.Position().Sub(eye).Len())
	}
	fmt.Println(mode.Status())
}

func parseDirections(names []string) ([]core.Direction, error) {
	var dirs []core.Direction
	for _, n := range names {
		found := false
		for _, d := range core.Directions {
			if strings.EqualFold(n, d.String()) {
				dirs = append(dirs, d)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown direction %q (expected up, down, left or right)", n)
		}
	}
	return dirs, nil
}
