package main

import (
	"fmt"

	"github.com/WasmEdge/wasmedgeup/internal/api"
	"github.com/WasmEdge/wasmedgeup/internal/installer"
	"github.com/WasmEdge/wasmedgeup/internal/shell"
)

// runUninstall handles the `wasmedgeup uninstall` subcommand
func runUninstall(args []string) error {
	showHelp := false
	verbose := false
	installRoot := ""

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--help", "-h":
			showHelp = true
		case "--verbose", "-v":
			verbose = true
		case "--path", "-p":
			i++
			if i >= len(args) {
				return fmt.Errorf("%s requires a directory argument", arg)
			}
			installRoot = args[i]
		default:
			return fmt.Errorf("unknown option: %s\nRun 'wasmedgeup uninstall --help' for usage", arg)
		}
	}

	if showHelp {
		printUninstallHelp()
		return nil
	}

	if installRoot == "" {
		root, err := defaultInstallRoot()
		if err != nil {
			return err
		}
		installRoot = root
	}

	manager := installer.NewManager(api.NewClient(), shell.NewRegistrar(), installer.WithLogger(newLogger(verbose)))
	if err := manager.Uninstall(installRoot); err != nil {
		return err
	}

	fmt.Printf("Removed WasmEdge from %s\n", installRoot)
	return nil
}

func printUninstallHelp() {
	fmt.Println("Usage: wasmedgeup uninstall [options]")
	fmt.Println()
	fmt.Println("Remove an installed runtime and its PATH registration.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -p, --path <dir>   Install root to remove (default: ~/.wasmedge)")
	fmt.Println("  -v, --verbose      Enable debug logging")
	fmt.Println("  -h, --help         Show this help")
}
