package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/grlm/internal/config"
	"github.com/rileyhilliard/grlm/internal/errors"
	"github.com/rileyhilliard/grlm/internal/logger"
	"github.com/rileyhilliard/grlm/internal/metrics"
	"github.com/rileyhilliard/grlm/internal/monitor"
	"github.com/rileyhilliard/grlm/internal/ratelimit"
)

// runMonitor starts the poller and renderer and blocks until the user quits
// or the process is signalled.
func (a *app) runMonitor(cmd *cobra.Command) error {
	if err := a.resolvePassword(cmd); err != nil {
		return err
	}

	mc, err := a.cfg.MonitorConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fullScreen := !a.plain && writerIsTerminal(out)

	log, closeLog, err := buildLogger(a.cfg, cmd.ErrOrStderr(), fullScreen)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()
	prev := logger.Default()
	logger.SetDefault(log)
	defer logger.SetDefault(prev)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := newClient(a.cfg, mc.Resource)
	opts := []monitor.Option{monitor.WithLogger(log)}

	var metricsErr chan error
	if a.cfg.MetricsAddr != "" {
		var state atomic.Pointer[monitor.State]
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts = append(opts,
			monitor.WithObserver(metrics.NewCollector(reg, mc.Resource)),
			monitor.WithStateHook(func(s *monitor.State) { state.Store(s) }),
		)

		metricsErr = make(chan error, 1)
		handler := metrics.NewRouter(reg, func() error { return health(state.Load()) })
		go func() {
			err := metrics.Serve(ctx, a.cfg.MetricsAddr, handler, log)
			if err != nil {
				stop()
			}
			metricsErr <- err
		}()
	}

	if fullScreen {
		err = runFullScreen(ctx, stop, mc, client, opts)
	} else {
		inPlace := writerIsTerminal(out)
		err = monitor.Start(ctx, mc, client, monitor.NewLineDisplay(out, inPlace), opts...)
		if inPlace {
			fmt.Fprintln(out)
		}
	}
	if err != nil {
		return err
	}

	if metricsErr != nil {
		stop()
		return <-metricsErr
	}
	return nil
}

// runFullScreen runs the Bubble Tea program on the main goroutine and the
// monitor beside it. Quitting the program cancels the monitor.
func runFullScreen(ctx context.Context, stop context.CancelFunc, mc monitor.Config, client *ratelimit.Client, opts []monitor.Option) error {
	program := tea.NewProgram(monitor.NewModel(), tea.WithAltScreen(), tea.WithContext(ctx))

	display := monitor.NewTeaDisplay(program)
	go display.Run(ctx)

	done := make(chan error, 1)
	go func() {
		err := monitor.Start(ctx, mc, client, display, opts...)
		if err != nil {
			stop()
		}
		done <- err
	}()

	_, runErr := program.Run()
	stop()
	startErr := <-done

	if runErr != nil && !stderrors.Is(runErr, tea.ErrProgramKilled) {
		return errors.WrapWithCode(runErr, errors.ErrConfig,
			"The terminal UI stopped unexpectedly",
			"Try --plain for a single status line")
	}
	return startErr
}

// health fails until the first successful fetch and whenever the latest
// fetch failed.
func health(s *monitor.State) error {
	if s == nil {
		return stderrors.New("monitor not started")
	}
	st := s.Status()
	if st.LastError != nil {
		return st.LastError
	}
	if st.LastSuccess.IsZero() {
		return stderrors.New("no successful fetch yet")
	}
	return nil
}

// newClient builds the API client for cfg.
func newClient(cfg *config.Config, resource ratelimit.Resource) *ratelimit.Client {
	return ratelimit.NewClient(
		ratelimit.WithBaseURL(cfg.APIURL),
		ratelimit.WithResource(resource),
		ratelimit.WithUserAgent("grlm/"+version),
	)
}

// buildLogger picks the log sink: the --log-file if set, nothing while the
// full-screen UI owns the terminal, stderr otherwise.
func buildLogger(cfg *config.Config, stderr io.Writer, fullScreen bool) (logger.Logger, func() error, error) {
	opts := logger.Options{Name: "grlm", Debug: cfg.Debug}

	if cfg.LogFile != "" {
		l, closeFn, err := logger.NewFileLogger(cfg.LogFile, opts)
		if err != nil {
			return nil, nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Can't open log file "+cfg.LogFile,
				"Check the directory exists and is writable")
		}
		return l, closeFn, nil
	}

	if fullScreen {
		return logger.Noop(), func() error { return nil }, nil
	}

	l := logger.NewZapLogger(stderr, opts)
	return l, l.Sync, nil
}
