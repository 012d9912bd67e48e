package main

import (
	"context"
	"fmt"
	"time"

	"github.com/WasmEdge/wasmedgeup/internal/api"
)

// listTimeout bounds the remote tag enumeration.
const listTimeout = 30 * time.Second

// runList handles the `wasmedgeup list` subcommand
func runList(args []string) error {
	showHelp := false
	showAll := false

	for _, arg := range args {
		switch arg {
		case "--help", "-h":
			showHelp = true
		case "--all":
			showAll = true
		default:
			return fmt.Errorf("unknown option: %s\nRun 'wasmedgeup list --help' for usage", arg)
		}
	}

	if showHelp {
		printListHelp()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
	defer cancel()

	versions, err := api.NewClient().Releases(ctx)
	if err != nil {
		return err
	}

	count := 0
	for _, version := range versions {
		if !showAll && version.Prerelease() != "" {
			continue
		}
		fmt.Println(version)
		count++
	}
	if count == 0 {
		fmt.Println("No published releases found.")
	}
	return nil
}

func printListHelp() {
	fmt.Println("Usage: wasmedgeup list [options]")
	fmt.Println()
	fmt.Println("List published release versions, newest first.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("      --all    Include pre-release versions")
	fmt.Println("  -h, --help   Show this help")
}
