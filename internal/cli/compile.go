package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slidedeck/internal/config"
	"github.com/matzehuels/slidedeck/pkg/errors"
	"github.com/matzehuels/slidedeck/pkg/pipeline"
	"github.com/matzehuels/slidedeck/pkg/watch"
)

// runCompile compiles source once, or keeps recompiling it with --watch.
func (c *CLI) runCompile(cmd *cobra.Command, source string) error {
	cfg, err := c.loadConfig(cmd, source)
	if err != nil {
		return err
	}

	ctx := withLogger(cmd.Context(), c.Logger)
	runner := pipeline.NewRunner(c.Logger)

	if !c.flags.watch {
		res, err := compile(ctx, runner, cfg, source)
		if err != nil {
			return err
		}
		printResult(res)
		printNextStep("Preview", appName+" serve "+source)
		return nil
	}

	compileAndReport(ctx, runner, cfg, source)
	if err := watchAndCompile(ctx, runner, cfg, source); err != nil {
		return err
	}
	return ctx.Err()
}

// compile runs one compile of source with cfg.
func compile(ctx context.Context, runner *pipeline.Runner, cfg config.Config, source string) (*pipeline.Result, error) {
	opts := cfg.PipelineOptions(source)
	opts.Logger = loggerFromContext(ctx)
	return runner.Compile(ctx, opts)
}

// compileAndReport compiles and prints the outcome. Failures are reported
// rather than returned so a watch session survives a broken save.
func compileAndReport(ctx context.Context, runner *pipeline.Runner, cfg config.Config, source string) bool {
	prog := newProgress(loggerFromContext(ctx))
	res, err := compile(ctx, runner, cfg, source)
	if err != nil {
		if ctx.Err() == nil {
			printError("Compile failed: %s", describe(err))
		}
		return false
	}
	printResult(res)
	prog.done("Compiled " + source)
	return true
}

// watchAndCompile recompiles source on every debounced change until ctx is
// cancelled.
func watchAndCompile(ctx context.Context, runner *pipeline.Runner, cfg config.Config, source string) error {
	logger := loggerFromContext(ctx)
	w, err := watch.New(source,
		watch.WithDebounce(cfg.Debounce.Duration),
		watch.WithLogger(logger),
		watch.WithErrorHandler(func(err error) {
			printWarning("Watch: %s", errors.UserMessage(err))
		}),
	)
	if err != nil {
		return err
	}

	printInfo("Watching %s (Ctrl+C to stop)", w.Path())
	return w.Run(ctx, func(ctx context.Context) {
		compileAndReport(ctx, runner, cfg, source)
	})
}

// describe renders err for a status line.
func describe(err error) string {
	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) {
		return stageErr.Error()
	}
	return errors.UserMessage(err)
}
