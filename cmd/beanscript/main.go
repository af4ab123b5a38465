package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/beanscript-lang/beanscript/internal/blog"
	"github.com/beanscript-lang/beanscript/internal/doctor"
	"github.com/beanscript-lang/beanscript/internal/driver"
	"github.com/beanscript-lang/beanscript/internal/dsl"
	"github.com/beanscript-lang/beanscript/internal/events"
	"github.com/beanscript-lang/beanscript/internal/inspect"
	"github.com/beanscript-lang/beanscript/internal/keycatalog"
	"github.com/beanscript-lang/beanscript/internal/lock"
	"github.com/beanscript-lang/beanscript/internal/runtime"
	"github.com/beanscript-lang/beanscript/internal/scheduler"
	"github.com/beanscript-lang/beanscript/internal/status"
)

const version = "0.1.0"

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "doctor":
			os.Exit(runDoctor(os.Args[2:]))
		case "inspect":
			os.Exit(runInspect(os.Args[2:]))
		case "version":
			fmt.Printf("beanscript version %s\n", version)
			os.Exit(0)
		case "help", "--help", "-h":
			printUsage()
			os.Exit(0)
		}
	}
	os.Exit(runStart(os.Args[1:]))
}

func printUsage() {
	fmt.Print(`beanscript - synthetic keystroke scheduler

Usage:
  beanscript [flags] [script.bs]     run a script (discovers a .bs file if omitted)
  beanscript doctor [script.bs]      validate a script without running it
  beanscript inspect [script.bs]     dump the compiled instruction table
  beanscript version                 show version information

Flags:
  -log-level LEVEL     DEBUG, INFO, WARN, ERROR (default INFO)
  -tick-interval MS     scheduler tick interval in milliseconds (default 10)
  -status              enable the read-only status HTTP server
  -status-listen ADDR   status server listen address (default 127.0.0.1:7890)
`)
}

// resolveScript loads, parses and resolves a .bs file. When validateKeys is
// set, an unknown key name is returned as an error; otherwise key names are
// left for the doctor to report. args holds the positional script path, if
// any.
func resolveScript(args []string, validateKeys bool) (*dsl.Result, *keycatalog.Catalog, error) {
	path, err := discoverScript(args)
	if err != nil {
		return nil, nil, err
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %q: %w", path, err)
	}

	lines, err := dsl.Parse(string(text))
	if err != nil {
		return nil, nil, err
	}

	catalog := keycatalog.New()
	if validateKeys {
		if err := dsl.ValidateButtons(lines, catalog); err != nil {
			return nil, nil, err
		}
	}

	result, err := dsl.Resolve(lines)
	if err != nil {
		return nil, nil, err
	}

	return result, catalog, nil
}

// discoverScript returns args[0] if present, otherwise the first .bs file
// found in the current working directory.
func discoverScript(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}

	entries, err := os.ReadDir(".")
	if err != nil {
		return "", fmt.Errorf("scan working directory: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".bs" {
			return e.Name(), nil
		}
	}
	return "", fmt.Errorf("no script path given and no .bs file found in the working directory")
}

func runDoctor(args []string) int {
	result, catalog, err := resolveScript(args, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	r := doctor.New(result.Table, catalog).Validate()
	fmt.Print(doctor.FormatHuman(r))
	if !r.Valid {
		return 1
	}
	return 0
}

func runInspect(args []string) int {
	result, _, err := resolveScript(args, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	dump, err := inspect.Build(result.Table, result.Schedulers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	fmt.Print(dump.Human())
	return 0
}

func runStart(args []string) int {
	var logLevel, statusListen, scriptArg string
	var tickIntervalMs int
	var enableStatus bool

	fs := newFlagSet("beanscript")
	fs.StringVar(&logLevel, "log-level", "INFO", "log level")
	fs.IntVar(&tickIntervalMs, "tick-interval", 10, "scheduler tick interval in milliseconds")
	fs.BoolVar(&enableStatus, "status", false, "enable the read-only status HTTP server")
	fs.StringVar(&statusListen, "status-listen", "127.0.0.1:7890", "status server listen address")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() > 0 {
		scriptArg = fs.Arg(0)
	}

	blog.Setup(logLevel)
	logger := blog.WithComponent("main")

	path, err := discoverScript([]string{scriptArg})
	if err != nil {
		logger.Error("script discovery failed", "error", err)
		return 1
	}
	logger.Info("beanscript starting", "version", version, "script", path)

	scriptLock, err := lock.AcquireScriptLock(path)
	if err != nil {
		logger.Error("failed to acquire script lock", "error", err)
		return 2
	}
	defer scriptLock.Release()

	text, err := os.ReadFile(path)
	if err != nil {
		logger.Error("failed to read script", "error", err)
		return 1
	}

	lines, err := dsl.Parse(string(text))
	if err != nil {
		logger.Error("parse failed", "error", err)
		return 1
	}

	catalog := keycatalog.New()
	if err := dsl.ValidateButtons(lines, catalog); err != nil {
		logger.Error("key validation failed", "error", err)
		return 1
	}

	result, err := dsl.Resolve(lines)
	if err != nil {
		logger.Error("resolve failed", "error", err)
		return 1
	}

	if r := doctor.New(result.Table, catalog).Validate(); !r.Valid {
		fmt.Fprint(os.Stderr, doctor.FormatHuman(r))
		return 1
	}

	runID := uuid.NewString()
	logger = blog.WithRun(runID)

	hub := events.NewHub(256)
	sink := driver.NewSupervisedSink(driver.NewLogSink(logger), hub, logger)
	source := realSource{}

	rt := &runtime.Runtime{
		Table:   result.Table,
		Catalog: catalog,
		Driver:  sink,
		Source:  source,
		Sleep:   runtime.RealSleeper{},
		Events:  hub,
		Logger:  logger,
		RunID:   runID,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mgr := scheduler.New(scheduler.Config{
		Table:    result.Table,
		Clock:    realClock{},
		Source:   source,
		Exec:     rt.Execute,
		Events:   hub,
		Logger:   logger,
		Interval: time.Duration(tickIntervalMs) * time.Millisecond,
	}, result.Schedulers)
	rt.Schedulers = mgr
	mgr.Start(ctx)
	defer mgr.Stop()

	errCh := make(chan error, 1)
	if enableStatus {
		statusServer := status.New(status.Config{Listen: statusListen}, result.Table, result.Schedulers, hub, logger)
		go func() {
			if err := statusServer.Start(ctx); err != nil && err != context.Canceled {
				errCh <- fmt.Errorf("status server: %w", err)
			}
		}()
		logger.Info("status server enabled", "listen", statusListen)
	}

	for _, id := range result.Table.ExecutionList() {
		if err := executeTopLevel(ctx, rt, id.ID); err != nil {
			logger.Error("execution failed", "instruction", id.ID, "error", err)
			return 1
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("beanscript running (press Ctrl+C to stop)")
	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig)
	case err := <-errCh:
		logger.Error("component failed", "error", err)
		cancel()
		return 1
	}

	return 0
}

func executeTopLevel(ctx context.Context, rt *runtime.Runtime, id string) error {
	if err := rt.Execute(ctx, id); err != nil {
		return fmt.Errorf("execute %q: %w", id, err)
	}
	return nil
}

type realClock struct{}

func (realClock) NowMillis() int64 { return time.Now().UnixMilli() }

type realSource struct{}

func (realSource) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return rand.IntN(n)
}
