package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-fortune/internal/calendar"
	"github.com/tartampluch/go-fortune/internal/config"
	"github.com/tartampluch/go-fortune/internal/server"
	"github.com/tartampluch/go-fortune/internal/ui"
	"gopkg.in/natefinch/lumberjack.v2"
)

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
func main() {
	os.Exit(runMain())
}

// runMain wires signal handling and executes the command tree.
// Returns config.ExitCodeSuccess on success, config.ExitCodeError on failure.
func runMain() int {
	// Create a root context that cancels on SIGINT (Ctrl+C) or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(calendar.RealClock{}).ExecuteContext(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

// newRootCmd builds the command tree. Without a subcommand the GUI is launched.
func newRootCmd(clock calendar.Clock) *cobra.Command {
	var debugMode bool

	root := &cobra.Command{
		Use:           config.CommandName,
		Short:         config.CmdShortRoot,
		Version:       config.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// CLI tools keep stdout for their output.
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), debugMode))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGUI(cmd.Context(), debugMode)
		},
	}
	root.SetVersionTemplate(fmt.Sprintf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	))
	root.PersistentFlags().BoolVar(&debugMode, config.FlagDebug, false, config.FlagDescDebug)

	root.AddCommand(newDaysCmd(clock), newFormatCmd())
	return root
}

// runGUI initializes the Fyne application, wires dependencies, and starts the UI loop.
func runGUI(ctx context.Context, debugMode bool) error {
	settings, err := config.LoadSettings(config.EnvFileName)
	if err != nil {
		return err
	}

	logCloser := setupLogging(debugMode, settings)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	logStartupInfo()

	a := app.NewWithID(config.AppID)

	// Record the version for potential migration logic in future updates.
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	port := a.Preferences().StringWithFallback(config.PrefPreviewPort, settings.PreviewPort)
	srv := server.NewPreviewServer(port)

	gui := ui.NewFortuneApp(a, ctx, srv, settings)

	// Lifecycle Bridge:
	// Watch for context cancellation to quit the UI gracefully.
	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	// Blocks until the form window closes.
	gui.Run()

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return nil
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// newLogger returns a JSON logger at info level, or debug level with source positions.
func newLogger(w io.Writer, debugMode bool) *slog.Logger {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}))
}

// setupLogging sends the default logger to stdout and a rotating file in the user's cache directory.
func setupLogging(debugMode bool, s config.Settings) io.Closer {
	writers := []io.Writer{os.Stdout}

	var rotator *lumberjack.Logger
	if logPath, err := getLogFilePath(); err == nil {
		rotator = &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    s.LogMaxSize,
			MaxBackups: s.LogMaxBackups,
			MaxAge:     s.LogMaxAge,
			LocalTime:  s.LogLocalTime,
		}
		writers = append(writers, rotator)
	} else {
		fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, config.LogFileName, err)
	}

	slog.SetDefault(newLogger(io.MultiWriter(writers...), debugMode))

	if rotator == nil {
		return nil
	}
	return rotator
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Ensure the directory exists with restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
