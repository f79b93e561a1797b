package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	termvideo "github.com/danielgatis/go-termvideo"
)

var convertCmd = &cobra.Command{
	Use:   "convert <cast> <out>",
	Short: "Convert an asciicast v2 recording into a terminal video",
	Long: `Replay an asciicast v2 recording through a headless terminal and
sample the screen at a fixed frame rate, writing a terminal video JSON
document.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

var convertFPS float64

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().Float64Var(&convertFPS, "fps", 0, "sampling frame rate (default from config, then 30)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if !cmd.Flags().Changed("fps") && cfg.FPS > 0 {
		convertFPS = cfg.FPS
	}

	in, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening cast: %w", err)
	}
	defer in.Close()

	video, err := termvideo.ConvertCast(in, &termvideo.ConvertOptions{FPS: convertFPS})
	if err != nil {
		return err
	}

	out, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	if err := enc.Encode(video); err != nil {
		return fmt.Errorf("writing video: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Wrote %d frames to %s\n", len(video.Frames), args[1])
	return nil
}
