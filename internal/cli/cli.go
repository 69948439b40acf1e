// Package cli parses command-line arguments into an app configuration.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/framegridgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("framegridgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
framegridgo - A frame-driven media compositing engine.

Usage:
  framegridgo [options] [COMPOSITION_PATH]

Arguments:
  COMPOSITION_PATH
    Path to a composition .hcl file.

Options:
`)
		flagSet.PrintDefaults()
	}

	compositionFlag := flagSet.String("composition", "", "Path to the composition file.")
	cFlag := flagSet.String("c", "", "Path to the composition file (shorthand).")
	modulesPathFlag := flagSet.String("modules-path", "modules", "Path to the directory containing effect manifests.")
	framesFlag := flagSet.Int("frames", 0, "Number of frames to run. 0 runs until interrupted.")
	fpsFlag := flagSet.Float64("fps", 60, "Frame rate of the wall-clock frame provider.")
	seekFlag := flagSet.String("seek", "", "Seek to this time in seconds before playback starts.")
	telemetryFlag := flagSet.String("telemetry-url", "", "socket.io endpoint for playback-state telemetry. Empty disables.")
	watchFlag := flagSet.Bool("watch", false, "Reload the composition when its file changes.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *compositionFlag != "" {
		path = *compositionFlag
	} else if *cFlag != "" {
		path = *cFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Composition path determined.", "path", path)

	if path == "" {
		slog.Debug("No composition path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *fpsFlag <= 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid fps: must be greater than 0"}
	}
	if *framesFlag < 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid frames: must not be negative"}
	}

	cfg, err := app.NewConfig(app.Config{
		CompositionPath: path,
		ModulesPath:     *modulesPathFlag,
		Frames:          *framesFlag,
		FPS:             *fpsFlag,
		Seek:            *seekFlag,
		TelemetryURL:    *telemetryFlag,
		Watch:           *watchFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return cfg, false, nil
}
