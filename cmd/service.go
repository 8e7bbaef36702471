package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/inovacc/diarypush/internal/application"
	"github.com/inovacc/diarypush/internal/config"
	"github.com/inovacc/diarypush/internal/schedule"
	"github.com/kardianos/service"
	"github.com/spf13/cobra"
)

var (
	serviceStart     bool
	serviceStop      bool
	serviceInstall   bool
	serviceUninstall bool
	serviceStatus    bool
	serviceRun       bool
)

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Publish the diary every day as a system service",
	Long: `Install, uninstall, start, stop, or check the status of the diarypush
background service. The service runs "diarypush service --run", which publishes
the diary once a day at the time configured in [schedule] at (default 08:00).

On Windows, this creates/manages a Windows Service.
On Linux/macOS, this creates/manages a systemd/launchd service.

Set a log file (--log-file or [log] file) before installing; the service has
no terminal to write to.`,
	Args: cobra.NoArgs,
	RunE: runService,
}

func init() {
	rootCmd.AddCommand(serviceCmd)
	serviceCmd.Flags().BoolVar(&serviceStart, "start", false, "Start the diarypush service")
	serviceCmd.Flags().BoolVar(&serviceStop, "stop", false, "Stop the diarypush service")
	serviceCmd.Flags().BoolVar(&serviceInstall, "install", false, "Install diarypush as a system service")
	serviceCmd.Flags().BoolVar(&serviceUninstall, "uninstall", false, "Uninstall the diarypush system service")
	serviceCmd.Flags().BoolVar(&serviceStatus, "status", false, "Check diarypush service status")
	serviceCmd.Flags().BoolVar(&serviceRun, "run", false, "Run the daily scheduler in the foreground (used by the service manager)")
}

// program implements service.Interface
type program struct {
	cfg    *config.Config
	logger *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

func (p *program) Start(s service.Service) error {
	at, err := p.cfg.ScheduleClock()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})

	daily := &schedule.Daily{
		At:     at,
		Logger: p.logger,
		Job: func(ctx context.Context) error {
			_, err := publishOnce(ctx, p.cfg, runOptions{trigger: triggerService}, p.logger)
			return err
		},
	}

	// Start should not block. Do the actual work async.
	go func() {
		defer close(p.done)

		if err := daily.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			p.logger.Error("scheduler stopped", "error", err)
		}
	}()

	p.logger.Info("service started", "schedule", p.cfg.ScheduleAt, "workdir", p.cfg.WorkDir)

	return nil
}

func (p *program) Stop(s service.Service) error {
	if p.cancel == nil {
		return nil
	}

	p.cancel()

	// Stop should not block for long; a run in flight gets a few seconds.
	select {
	case <-p.done:
	case <-time.After(5 * time.Second):
		p.logger.Warn("scheduler did not stop in time")
	}

	p.logger.Info("service stopped")

	return nil
}

// serviceArguments pins the resolved configuration into the service command
// line; the service manager starts it with a different user and environment.
func serviceArguments(c *config.Config) []string {
	args := []string{"service", "--run", "--workdir", c.WorkDir}

	if c.Source != "" {
		args = append(args, "--config", c.Source)
	}

	if c.Branch != "" {
		args = append(args, "--branch", c.Branch)
	}

	if c.RemoteURL != "" {
		args = append(args, "--remote-url", c.RemoteURL)
	}

	if c.HistoryPath != "" {
		args = append(args, "--history", c.HistoryPath)
	}

	if c.LogFile != "" {
		args = append(args, "--log-file", c.LogFile)
	}

	if c.StrictPrune {
		args = append(args, "--strict-prune")
	}

	if c.Verbose {
		args = append(args, "--verbose")
	}

	return args
}

func newService(c *config.Config, logger *slog.Logger) (service.Service, error) {
	svcConfig := &service.Config{
		Name:        application.ServiceName,
		DisplayName: "DiaryPush Daily Diary Publisher",
		Description: "Writes a dated diary entry every day and pushes it to a git remote",
		Arguments:   serviceArguments(c),
	}

	return service.New(&program{cfg: c, logger: logger}, svcConfig)
}

func runService(cmd *cobra.Command, args []string) error {
	// Count how many flags are set
	flagCount := 0
	for _, set := range []bool{serviceStart, serviceStop, serviceInstall, serviceUninstall, serviceStatus, serviceRun} {
		if set {
			flagCount++
		}
	}

	if flagCount == 0 {
		return fmt.Errorf("please specify one of: --start, --stop, --install, --uninstall, --status, --run")
	}

	if flagCount > 1 {
		return fmt.Errorf("please specify only one operation at a time")
	}

	s, err := newService(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	// Handle the requested operation
	switch {
	case serviceRun:
		return s.Run()
	case serviceInstall:
		return installService(s)
	case serviceUninstall:
		return uninstallService(s)
	case serviceStart:
		return startService(s)
	case serviceStop:
		return stopService(s)
	case serviceStatus:
		return statusService(s)
	}

	return nil
}

func installService(s service.Service) error {
	fmt.Printf("Installing %s service...\n", application.ServiceName)
	fmt.Printf("Working directory: %s\n", cfg.WorkDir)
	fmt.Printf("Daily at: %s\n", cfg.ScheduleAt)

	if cfg.LogFile == "" {
		fmt.Println(warnStyle.Render("Warning: no log file configured, service output may be lost"))
	}

	if err := s.Install(); err != nil {
		return fmt.Errorf("failed to install service: %w", err)
	}

	fmt.Println(okStyle.Render("✓ Service installed successfully!"))
	fmt.Println("\nTo start the service, run:")
	fmt.Println("  diarypush service --start")

	return nil
}

func uninstallService(s service.Service) error {
	fmt.Printf("Uninstalling %s service...\n", application.ServiceName)

	// Try to stop first
	_ = s.Stop()

	if err := s.Uninstall(); err != nil {
		return fmt.Errorf("failed to uninstall service: %w", err)
	}

	fmt.Println(okStyle.Render("✓ Service uninstalled successfully!"))

	return nil
}

func startService(s service.Service) error {
	fmt.Printf("Starting %s service...\n", application.ServiceName)

	if err := s.Start(); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}

	fmt.Println(okStyle.Render("✓ Service started successfully!"))

	return nil
}

func stopService(s service.Service) error {
	fmt.Printf("Stopping %s service...\n", application.ServiceName)

	if err := s.Stop(); err != nil {
		return fmt.Errorf("failed to stop service: %w", err)
	}

	fmt.Println(okStyle.Render("✓ Service stopped successfully!"))

	return nil
}

func statusService(s service.Service) error {
	status, err := s.Status()
	if err != nil {
		if errors.Is(err, service.ErrNotInstalled) {
			fmt.Println("Service Status: Not installed")
			return nil
		}

		return fmt.Errorf("failed to get service status: %w", err)
	}

	fmt.Printf("Service Status: ")

	switch status {
	case service.StatusRunning:
		fmt.Println(okStyle.Render("Running ✓"))
	case service.StatusStopped:
		fmt.Println("Stopped")
	case service.StatusUnknown:
		fmt.Println("Unknown")
	default:
		fmt.Printf("%v\n", status)
	}

	return nil
}
