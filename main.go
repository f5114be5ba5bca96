// syshealth samples host metrics on a fixed interval, derives
// throughput rates from cumulative counters, classifies each metric
// into health bands and tracks short-term trends. By default it runs a
// live terminal dashboard; with -once it prints a single report.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pulseview/syshealth/alerter"
	"github.com/pulseview/syshealth/config"
	"github.com/pulseview/syshealth/engine"
	"github.com/pulseview/syshealth/logger"
	"github.com/pulseview/syshealth/models"
	"github.com/pulseview/syshealth/probe"
	"github.com/pulseview/syshealth/ui"
)

// Application ties the engine, alerter and presentation together.
type Application struct {
	config  *config.Config
	log     *logger.Logger
	engine  *engine.Engine
	alerter *alerter.Alerter

	results chan *models.Result
	cancel  context.CancelFunc
}

func main() {
	configPath := flag.String("config", "", "path to config file (default: user config dir)")
	debug := flag.Bool("debug", false, "enable debug logging")
	once := flag.Bool("once", false, "run a single sampling pass, print a report and exit")
	interval := flag.Duration("interval", 0, "override the sampling interval")
	flag.Parse()

	app, err := newApplication(*configPath, *debug, *interval)
	if err != nil {
		fmt.Fprintf(os.Stderr, "syshealth: %v\n", err)
		os.Exit(1)
	}
	defer app.shutdown()

	if *once {
		if err := app.runOnce(); err != nil {
			fmt.Fprintf(os.Stderr, "syshealth: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := app.run(); err != nil {
		app.log.Errorf("Application error: %v", err)
		os.Exit(1)
	}
}

func newApplication(configPath string, debug bool, interval time.Duration) (*Application, error) {
	if configPath == "" {
		if p, err := config.GetDefaultConfigPath(); err == nil {
			configPath = p
		}
	}

	mgr := config.GetManager()
	if err := mgr.Load(configPath); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg := mgr.Get()
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "syshealth: config: %v\n", e)
		}
		return nil, fmt.Errorf("invalid configuration")
	}

	if interval > 0 {
		cfg.Monitoring.Interval = interval
	}
	if debug {
		cfg.Logging.Level = "debug"
	}

	configDir, err := config.GetConfigDir()
	if err != nil {
		configDir = "."
	}

	log := logger.Get()
	if err := log.Init(&cfg.Logging, configDir); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	eng := engine.New(probe.NewSystem(), engine.Config{
		Interval:        cfg.Monitoring.Interval,
		HistoryCapacity: cfg.Monitoring.HistoryCapacity,
		WindowCapacity:  cfg.Monitoring.WindowCapacity,
		Thresholds:      thresholdTable(&cfg.Thresholds),
		EnableProcesses: cfg.Monitoring.EnableProcesses,
		TopProcessCount: cfg.Monitoring.TopProcessCount,
		EnableBattery:   cfg.Monitoring.EnableBattery,
	})

	app := &Application{
		config: cfg,
		log:    log,
		engine: eng,
	}

	if cfg.Alerts.Enabled {
		app.alerter = alerter.New(&cfg.Alerts)
	}

	return app, nil
}

// thresholdTable maps the file-format cutoffs onto the engine's
// classification table.
func thresholdTable(tc *config.ThresholdsConfig) engine.Table {
	toThresholds := func(c config.Cutoffs) engine.Thresholds {
		return engine.Thresholds{Caution: c.Caution, Warning: c.Warning, Critical: c.Critical}
	}
	return engine.Table{
		models.KindCPU:         toThresholds(tc.CPU),
		models.KindMemory:      toThresholds(tc.Memory),
		models.KindDisk:        toThresholds(tc.Disk),
		models.KindTemperature: toThresholds(tc.Temperature),
		models.KindBattery:     toThresholds(tc.Battery),
	}
}

// run starts the periodic engine and blocks inside the terminal
// dashboard until the user quits or a signal arrives.
func (a *Application) run() error {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	// Each completed cycle is logged and checked for alerts off the
	// sampling path.
	a.results = make(chan *models.Result, 8)
	a.engine.Subscribe(a.results)
	go a.consumeResults()

	if err := a.engine.Start(ctx); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	program := tea.NewProgram(ui.NewDashboard(a.engine), tea.WithAltScreen())

	go func() {
		<-sigCh
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

// runOnce primes the counters with one pass, waits long enough for a
// measurable delta, then samples again and prints the report.
func (a *Application) runOnce() error {
	if _, err := a.engine.RunCycle(); err != nil {
		return err
	}
	time.Sleep(time.Second)

	result, err := a.engine.RunCycle()
	if err != nil {
		return err
	}
	fmt.Print(ui.Report(result))
	return nil
}

func (a *Application) consumeResults() {
	for r := range a.results {
		a.log.LogResult(r)
		if a.alerter != nil {
			a.alerter.Check(r)
		}
	}
}

func (a *Application) shutdown() {
	if a.cancel != nil {
		a.cancel()
	}
	a.engine.Stop()
	if a.results != nil {
		a.engine.Unsubscribe(a.results)
		close(a.results)
	}
	a.log.Close()
}
