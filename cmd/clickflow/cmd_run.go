package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/clickflow/clickflow/internal/banner"
	"github.com/clickflow/clickflow/internal/capture"
	"github.com/clickflow/clickflow/internal/config"
	"github.com/clickflow/clickflow/internal/engine"
	"github.com/clickflow/clickflow/internal/input"
	"github.com/clickflow/clickflow/internal/logger"
	"github.com/clickflow/clickflow/internal/status"
	"github.com/clickflow/clickflow/internal/tracker"
)

func runCmd(args []string) int {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	profilePath := fs.String("profile", "clickflow_default.json", "Path to the profile file")
	loops := fs.Int("loops", 1, "Number of cycles to run")
	logFile := fs.String("log-file", "", "Append logs to this file")
	debug := fs.Bool("debug", false, "Verbose logging instead of the progress display")
	stopKey := fs.String("stop-key", "f6", "Global hotkey that stops the run")
	stateDir := fs.String("state-dir", ".clickflow", "Directory for run state and the lock file")
	watch := fs.Bool("watch", false, "Keep running, re-running on profile edits")
	fs.Parse(args)

	if *loops < 1 {
		fmt.Fprintln(os.Stderr, "loops must be at least 1")
		return 1
	}

	loader := config.NewLoader(filepath.Dir(*profilePath))
	profile, err := loader.LoadAndValidate(*profilePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	log, display, closeLog, err := buildLogger(*debug, *logFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeLog()

	sess := engine.NewSession(input.NewRobot(), log)
	if display != nil {
		sess.SetStatusWriter(display)
	}

	if err := os.MkdirAll(*stateDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create state directory: %v\n", err)
		return 1
	}
	trk := tracker.NewWriter(*stateDir)
	runID := tracker.NewRunID()
	releaseLock, err := trk.AcquireLock(runID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() { _ = releaseLock() }()
	sess.EnableRunTracking(runID, *stateDir)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *stopKey != "" {
		go capture.ListenKey(ctx, *stopKey, sess.Stop)
	}

	b := banner.New()
	b.Print(*profilePath, profile, *loops)

	exit := runSession(ctx, sess, profile, *loops)
	if !*watch {
		return exit
	}
	return watchAndRerun(ctx, sess, log, loader, *profilePath, *loops, exit)
}

func runSession(ctx context.Context, sess *engine.Session, profile *config.Profile, loops int) int {
	stats, err := sess.Run(ctx, profile, loops)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if stats.FailedRuns > 0 {
		return 1
	}
	return 0
}

// watchAndRerun blocks on profile edits and re-runs the session each time the
// target profile is rewritten with valid contents.
func watchAndRerun(ctx context.Context, sess *engine.Session, log logger.Logger, loader *config.Loader, profilePath string, loops, exit int) int {
	watcher, err := config.NewWatcher(loader, filepath.Dir(profilePath))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := watcher.Start(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer watcher.Stop()

	target := filepath.Base(profilePath)
	log.Info("Watching for profile changes", logger.F("profile", profilePath))

	for {
		select {
		case <-ctx.Done():
			return exit
		case ev, ok := <-watcher.Events():
			if !ok {
				return exit
			}
			if ev.Path != "" && filepath.Base(ev.Path) != target {
				continue
			}
			if ev.Error != nil {
				log.Warn("Profile change ignored", logger.F("error", ev.Error))
				continue
			}
			if ev.Profile == nil {
				continue
			}
			if err := config.ValidateProfile(ev.Profile); err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			log.Info("Profile changed, re-running", logger.F("profile", ev.Path))
			exit = runSession(ctx, sess, ev.Profile, loops)
		}
	}
}

// buildLogger assembles the run loggers. In debug mode everything goes to
// stdout and the progress display is disabled so the two don't fight over the
// terminal.
func buildLogger(debug bool, logFile string) (logger.Logger, *status.Writer, func(), error) {
	var logs []logger.Logger
	var display *status.Writer

	if debug {
		logs = append(logs, logger.NewStdoutLogger(logger.LevelDebug))
	} else {
		display = status.New()
	}

	closeLog := func() {}
	if logFile != "" {
		fl, err := logger.NewFileLogger(logFile, logger.LevelDebug)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logs = append(logs, fl)
		closeLog = func() { _ = fl.Close() }
	}

	switch len(logs) {
	case 0:
		return logger.NewNoopLogger(), display, closeLog, nil
	case 1:
		return logs[0], display, closeLog, nil
	default:
		return logger.NewMultiLogger(logs...), display, closeLog, nil
	}
}
