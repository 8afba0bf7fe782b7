package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/easywork/internal/app"
)

// ExitError carries a specific process exit code alongside its message.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// Parse processes command-line arguments into an *app.Config. The second
// return value reports whether the caller should exit cleanly (help was
// requested, or no graph path was given) without treating it as an error.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("easywork", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
easywork - a dataflow execution graph runtime.

Usage:
  easywork [options] [GRAPH_PATH]

Arguments:
  GRAPH_PATH
    Path to an .hcl file describing the graph's nodes and edges.

Options:
`)
		flagSet.PrintDefaults()
	}

	graphFlag := flagSet.String("graph", "", "Path to the graph definition file.")
	gFlag := flagSet.String("g", "", "Path to the graph definition file (shorthand).")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Log level: 'debug', 'info', 'warn', or 'error'.")
	workersFlag := flagSet.Int("workers", 0, "Number of concurrent workers for the executor. 0 selects the default.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := ""
	switch {
	case *graphFlag != "":
		path = *graphFlag
	case *gFlag != "":
		path = *gFlag
	case flagSet.NArg() > 0:
		path = flagSet.Arg(0)
	}

	if path == "" {
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
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	cfg, err := app.NewConfig(app.Config{
		GraphPath:       path,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: *healthPortFlag,
		WorkerCount:     *workersFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return cfg, false, nil
}
