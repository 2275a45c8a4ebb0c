package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	romPath  string
	cartPath string
	ticks    int
	pngOut   string
	expect   string
	trace    bool
)

// rootCmd runs a ROM headlessly for a fixed tick count and reports the
// final framebuffer checksum; it takes no subcommands since a
// conformance run has only one thing to do.
var rootCmd = &cobra.Command{
	Use:   "cocorun",
	Short: "headless ROM conformance runner",
	RunE:  runE,
}

func init() {
	rootCmd.Flags().StringVar(&romPath, "rom", "", "path to system ROM image (required)")
	rootCmd.Flags().StringVar(&cartPath, "cart", "", "optional cartridge ROM image")
	rootCmd.Flags().IntVar(&ticks, "ticks", 5_000_000, "machine ticks to run")
	rootCmd.Flags().StringVar(&pngOut, "outpng", "", "write final framebuffer to PNG at path")
	rootCmd.Flags().StringVar(&expect, "expect", "", "assert framebuffer CRC32 (hex)")
	rootCmd.Flags().BoolVar(&trace, "trace", false, "print PC/mnemonic each tick")
	rootCmd.MarkFlagRequired("rom")
}

// Execute runs cocorun according to the user's flags.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
