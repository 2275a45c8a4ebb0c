package main

import (
	"fmt"
	"os"

	"github.com/cocoemu/dragon64/internal/hostui"
	"github.com/spf13/cobra"
)

var (
	romPath  string
	cartPath string
	title    string
	scale    int
)

// runCmd opens a window and runs a ROM image.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run a ROM in a window",
	RunE:  runE,
}

func init() {
	runCmd.Flags().StringVar(&romPath, "rom", "", "path to system ROM image (required)")
	runCmd.Flags().StringVar(&cartPath, "cart", "", "optional cartridge ROM image")
	runCmd.Flags().StringVar(&title, "title", "dragon64", "window title")
	runCmd.Flags().IntVar(&scale, "scale", 3, "window scale factor")
	runCmd.MarkFlagRequired("rom")
}

func runE(cmd *cobra.Command, args []string) error {
	rom, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("read rom: %w", err)
	}
	var cart []byte
	if cartPath != "" {
		cart, err = os.ReadFile(cartPath)
		if err != nil {
			return fmt.Errorf("read cart: %w", err)
		}
	}

	app := hostui.NewApp(hostui.Config{Title: title, Scale: scale}, rom, cart)
	return app.Run()
}
