package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "termvideo",
	Short: "Play and convert colored ASCII terminal videos",
	Long: `termvideo plays pre-recorded colored ASCII videos in your terminal,
converts asciicast recordings into the video format, and exports frames
as PNG images or whole videos as animated GIFs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
