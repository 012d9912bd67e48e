package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/WasmEdge/wasmedgeup/internal/api"
	"github.com/WasmEdge/wasmedgeup/internal/installer"
	"github.com/WasmEdge/wasmedgeup/internal/platform"
	"github.com/WasmEdge/wasmedgeup/internal/shell"
)

// installTimeout bounds a whole install run, download included.
const installTimeout = 15 * time.Minute

// runInstall handles the `wasmedgeup install <version>` subcommand
func runInstall(args []string) error {
	// Parse flags
	showHelp := false
	noProgress := false
	verbose := false
	installRoot := ""
	tmpDir := ""
	osOverride := ""
	archOverride := ""

	var versionToken string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--help", "-h":
			showHelp = true
		case "--no-progress":
			noProgress = true
		case "--verbose", "-v":
			verbose = true
		case "--path", "-p":
			i++
			if i >= len(args) {
				return fmt.Errorf("%s requires a directory argument", arg)
			}
			installRoot = args[i]
		case "--tmpdir", "-t":
			i++
			if i >= len(args) {
				return fmt.Errorf("%s requires a directory argument", arg)
			}
			tmpDir = args[i]
		case "--os", "-o":
			i++
			if i >= len(args) {
				return fmt.Errorf("%s requires an operating system argument", arg)
			}
			osOverride = args[i]
		case "--arch", "-a":
			i++
			if i >= len(args) {
				return fmt.Errorf("%s requires an architecture argument", arg)
			}
			archOverride = args[i]
		default:
			if len(arg) > 0 && arg[0] != '-' && versionToken == "" {
				versionToken = arg
			} else {
				return fmt.Errorf("unknown option: %s\nRun 'wasmedgeup install --help' for usage", arg)
			}
		}
	}

	if showHelp {
		printInstallHelp()
		return nil
	}
	if versionToken == "" {
		return errors.New("install requires a version argument (\"latest\" or e.g. 0.14.1)\nRun 'wasmedgeup install --help' for usage")
	}

	if installRoot == "" {
		root, err := defaultInstallRoot()
		if err != nil {
			return err
		}
		installRoot = root
	}
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}

	ctx, cancel := context.WithTimeout(context.Background(), installTimeout)
	defer cancel()

	target, err := resolvePlatform(ctx, osOverride, archOverride)
	if err != nil {
		return err
	}

	logger := newLogger(verbose)

	var progress api.ProgressFunc
	if !noProgress {
		progress = progressPrinter()
	}

	manager := installer.NewManager(api.NewClient(), shell.NewRegistrar(), installer.WithLogger(logger))

	fmt.Printf("Installing WasmEdge %s for %s/%s...\n", versionToken, target.OS, target.Arch)
	result, err := manager.Install(ctx, installer.Config{
		Version:     versionToken,
		InstallRoot: installRoot,
		TmpDir:      tmpDir,
		Platform:    target,
		Progress:    progress,
	})
	if err != nil {
		// Registration is the final stage; when it alone fails the
		// runtime is installed and usable, so say so before exiting
		// non-zero.
		if result != nil {
			fmt.Printf("WasmEdge %s installed to %s\n", result.Version, result.InstallRoot)
			fmt.Fprintln(os.Stderr, "PATH registration failed; add the following directory to PATH manually:")
			fmt.Fprintf(os.Stderr, "  %s\n", result.BinDir)
		}
		return err
	}

	fmt.Printf("WasmEdge %s installed to %s\n", result.Version, result.InstallRoot)
	fmt.Println("Restart your shell or re-source its startup file to pick up PATH changes.")
	return nil
}

func printInstallHelp() {
	fmt.Println("Usage: wasmedgeup install [options] <version>")
	fmt.Println()
	fmt.Println("Install a WasmEdge release. <version> is \"latest\" or an explicit")
	fmt.Println("semantic version such as 0.14.1 (a leading \"v\" is accepted).")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -p, --path <dir>     Install root (default: ~/.wasmedge)")
	fmt.Println("  -t, --tmpdir <dir>   Staging directory (default: system temp)")
	fmt.Println("  -o, --os <name>      Target OS: linux, darwin, windows (default: detected)")
	fmt.Println("  -a, --arch <name>    Target arch: x86_64, aarch64 (default: detected)")
	fmt.Println("      --no-progress    Suppress the download progress indicator")
	fmt.Println("  -v, --verbose        Enable debug logging")
	fmt.Println("  -h, --help           Show this help")
}

// defaultInstallRoot is ~/.wasmedge.
func defaultInstallRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine home directory: %w", err)
	}
	return filepath.Join(home, ".wasmedge"), nil
}

// resolvePlatform combines host detection with any --os/--arch
// overrides. Distro information only applies when the target OS is the
// detected one.
func resolvePlatform(ctx context.Context, osOverride, archOverride string) (platform.Info, error) {
	detected, err := platform.NewDetector().Detect(ctx)
	if err != nil {
		return platform.Info{}, err
	}

	target := detected
	if osOverride != "" {
		targetOS, err := platform.ParseOS(osOverride)
		if err != nil {
			return platform.Info{}, err
		}
		target.OS = targetOS
		if targetOS != detected.OS {
			target.Distro = nil
		}
	}
	if archOverride != "" {
		targetArch, err := platform.ParseArch(archOverride)
		if err != nil {
			return platform.Info{}, err
		}
		target.Arch = targetArch
	}
	return target, nil
}

// newLogger builds the pipeline logger. Structured detail only shows up
// with --verbose; normal runs speak through the plain messages printed
// by the subcommands.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// progressPrinter renders cumulative download progress on stderr.
func progressPrinter() api.ProgressFunc {
	return func(downloaded, total int64) {
		if total > 0 {
			fmt.Fprintf(os.Stderr, "\rDownloading... %3d%%", downloaded*100/total)
			if downloaded >= total {
				fmt.Fprintln(os.Stderr)
			}
			return
		}
		fmt.Fprintf(os.Stderr, "\rDownloading... %d bytes", downloaded)
	}
}
