package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	if os.Args[1] == "-h" || os.Args[1] == "--help" || os.Args[1] == "help" {
		printUsage()
		os.Exit(0)
	}
	if os.Args[1] == "--version" {
		fmt.Println(versionLine())
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runCmd(os.Args[2:]))
	case "validate", "check":
		os.Exit(validateCmd(os.Args[2:]))
	case "capture":
		os.Exit(captureCmd(os.Args[2:]))
	case "version":
		fmt.Println(versionLine())
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`clickflow

Usage:
  clickflow <command> [flags]

Commands:
  run          Run an automation profile
  validate     Check a profile without running it
  capture      Capture screen coordinates by clicking
  version      Show the version number
  help         Show this message

Examples:
  # Run the default profile once
  clickflow run

  # Run a named profile for 10 cycles, re-running on edits
  clickflow run -profile macros/login.json -loops 10 -watch

  # Build a step interactively
  clickflow capture -name "open menu"

Notes:
  - The failsafe aborts a run when the pointer reaches a screen corner.
  - Press the stop key (f6 by default) or Ctrl+C to stop a run.

Run 'clickflow <command> -h' for details.`)
}
