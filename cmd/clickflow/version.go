package main

import (
	"fmt"
	"runtime/debug"
	"strings"
)

var version = "dev"

var commit = "none"

var date = "unknown"

func versionLine() string {
	if version != "dev" {
		return fmt.Sprintf("clickflow version %s", version)
	}

	c := strings.TrimSpace(commit)
	d := strings.TrimSpace(date)

	if (c == "" || c == "none") || (d == "" || d == "unknown") {
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, s := range bi.Settings {
				switch s.Key {
				case "vcs.revision":
					if (c == "" || c == "none") && strings.TrimSpace(s.Value) != "" {
						c = strings.TrimSpace(s.Value)
					}
				case "vcs.time":
					if (d == "" || d == "unknown") && strings.TrimSpace(s.Value) != "" {
						d = strings.TrimSpace(s.Value)
					}
				}
			}
		}
	}

	if c != "" && c != "none" {
		if len(c) > 7 {
			c = c[:7]
		}
	}

	if (c == "" || c == "none") && (d == "" || d == "unknown") {
		return "clickflow version dev"
	}
	if c == "" || c == "none" {
		return fmt.Sprintf("clickflow version dev (built %s)", d)
	}
	if d == "" || d == "unknown" {
		return fmt.Sprintf("clickflow version dev (commit %s)", c)
	}
	return fmt.Sprintf("clickflow version dev (commit %s, built %s)", c, d)
}
