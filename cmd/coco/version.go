package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const currentReleaseVersion = "v0.1.0"

// versionCmd prints the installed coco version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the installed coco version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(currentReleaseVersion)
	},
}
