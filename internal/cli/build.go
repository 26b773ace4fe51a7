package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"lectern/internal/build"
	"lectern/internal/config"
	"lectern/internal/ui/live"
)

// runBuild builds the handler for the build command.
func runBuild(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to project file (default: ./lectern.yml)")
		uiMode := flags.String("ui", "auto", "Console UI mode: auto, live, or plain")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		resolved, err := resolveConfigPath(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Build failed: %v\n", err)
			return ExitError
		}
		cfg, err := config.Load(resolved)
		if err != nil {
			fmt.Fprintf(stderr, "Build failed:\n%s\n", err.Error())
			return ExitError
		}

		decision, err := resolveUIMode(*uiMode, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		opts := build.Options{
			Config: cfg,
			Root:   config.RootFromConfigPath(resolved),
		}

		var controller *live.Controller
		if decision.useLive {
			controller = live.Start(stdout, live.Options{})
			opts.Observer = controller
			opts.Logger = zerolog.Nop()
		} else {
			opts.Logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr}).With().Timestamp().Logger()
		}

		result, err := build.Run(context.Background(), opts)
		controller.Close()
		controller.Wait()
		if err != nil {
			fmt.Fprintf(stderr, "Build failed: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Built %d pages, %d questions (%s)\n",
			len(result.Pages), result.Questions, result.Duration.Round(time.Millisecond))
		if len(result.Warnings) > 0 {
			fmt.Fprintf(stdout, "%d warnings:\n", len(result.Warnings))
			for _, warning := range result.Warnings {
				fmt.Fprintf(stdout, "  %s\n", warning)
			}
		}
		return ExitOK
	}
}
