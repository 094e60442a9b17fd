package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/clickflow/clickflow/internal/capture"
	"github.com/clickflow/clickflow/internal/config"
)

func captureCmd(args []string) int {
	fs := flag.NewFlagSet("capture", flag.ExitOnError)
	name := fs.String("name", "new step", "Name for the generated step")
	action := fs.String("action", "left_click", "Action kind for the generated step")
	timeout := fs.Float64("timeout", 30, "Seconds to wait for a click (0 waits forever)")
	fs.Parse(args)

	kind := config.ActionKind(*action)
	if !kind.Valid() {
		fmt.Fprintf(os.Stderr, "unknown action kind %q\n", *action)
		return 1
	}

	fmt.Println("Click anywhere to capture the position...")

	x, y, err := capture.WaitForClick(time.Duration(*timeout * float64(time.Second)))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	step := config.Step{Name: *name, Action: kind, X: x, Y: y}
	data, err := json.MarshalIndent(step, "", "    ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("Captured (%d, %d). Add this to your profile's steps:\n\n%s\n", x, y, data)
	return 0
}
