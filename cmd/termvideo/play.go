package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	termvideo "github.com/danielgatis/go-termvideo"
)

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Play a terminal video",
	Long: `Play a colored ASCII video in the current terminal.

Frames can be rescaled with an explicit --scale factor or fitted to the
terminal with --fit. Ctrl-C stops playback and restores the terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

var (
	playLoop    bool
	playScale   float64
	playFit     bool
	playNoClear bool
)

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().BoolVarP(&playLoop, "loop", "l", false, "loop playback")
	playCmd.Flags().Float64VarP(&playScale, "scale", "s", 1.0, "scale factor (<1 downscale, >1 upscale); ignored with --fit")
	playCmd.Flags().BoolVarP(&playFit, "fit", "f", false, "scale to fit the current terminal")
	playCmd.Flags().BoolVar(&playNoClear, "no-clear", false, "do not clear the screen at start")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Config file supplies defaults; explicit flags win.
	if !cmd.Flags().Changed("loop") && cfg.Loop {
		playLoop = true
	}
	if !cmd.Flags().Changed("scale") && cfg.Scale > 0 {
		playScale = cfg.Scale
	}
	if !cmd.Flags().Changed("fit") && cfg.Fit {
		playFit = true
	}

	video, err := termvideo.LoadVideo(args[0])
	if err != nil {
		return err
	}

	if playFit && !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "Warning: stdout is not a terminal; --fit uses the 80x24 fallback")
	}

	opts := []termvideo.Option{termvideo.WithScale(playScale)}
	if playLoop {
		opts = append(opts, termvideo.WithLoop())
	}
	if playFit {
		opts = append(opts, termvideo.WithFit())
	}
	if playNoClear {
		opts = append(opts, termvideo.WithNoClear())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return termvideo.NewPlayer(video, opts...).Play(ctx)
}
