package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wingchase/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available levels",
	Long:  `Shows a list of all levels built into wingchase.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	levels := registry.List()

	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
		maxTitleLen = max(maxTitleLen, len(l.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Description")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----------")

	for _, l := range levels {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, l.ID, maxTitleLen, l.Title, l.Description)
	}

	fmt.Println()
	fmt.Println("Run 'wingchase play <id>' to play a level.")
}
