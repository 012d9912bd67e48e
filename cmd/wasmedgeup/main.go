package main

import (
	"fmt"
	"os"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

func main() {
	// Handle subcommands
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version":
			fmt.Printf("wasmedgeup %s\n", Version)
			return
		case "install":
			// Handle wasmedgeup install subcommand
			if err := runInstall(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "uninstall":
			// Handle wasmedgeup uninstall subcommand
			if err := runUninstall(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "list":
			// Handle wasmedgeup list subcommand
			if err := runList(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "help", "--help", "-h":
			printHelp()
			return
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n", os.Args[1])
			fmt.Fprintln(os.Stderr, "Run 'wasmedgeup help' for usage")
			os.Exit(1)
		}
	}

	printHelp()
}

func printHelp() {
	fmt.Println("wasmedgeup - WasmEdge runtime installer")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  wasmedgeup install <version>   Install a WasmEdge release (\"latest\" or e.g. 0.14.1)")
	fmt.Println("  wasmedgeup uninstall           Remove an installed runtime")
	fmt.Println("  wasmedgeup list                List published release versions")
	fmt.Println("  wasmedgeup --version           Show version information")
	fmt.Println()
	fmt.Println("Run 'wasmedgeup <command> --help' for command options.")
}
