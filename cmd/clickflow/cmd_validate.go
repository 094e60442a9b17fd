package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/clickflow/clickflow/internal/config"
)

func validateCmd(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	profilePath := fs.String("profile", "clickflow_default.json", "Path to the profile file")
	fs.Parse(args)

	path := *profilePath
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	loader := config.NewLoader(filepath.Dir(path))
	profile, err := loader.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := config.ValidateProfile(profile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("%s: ok (%d steps)\n", path, len(profile.Steps))
	return 0
}
