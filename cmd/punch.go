package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/Tiliavir/punch/internal/config"
	"github.com/Tiliavir/punch/internal/logger"
	"github.com/Tiliavir/punch/internal/model"
	"github.com/Tiliavir/punch/internal/report"
	"github.com/Tiliavir/punch/internal/storage"
	"github.com/Tiliavir/punch/internal/timecalc"
)

// options holds one invocation's inputs.
type options struct {
	ConfigPath string
	LogLevel   string
	Format     string
	// Arg is the positional argument, nil when none was given.
	Arg   *string
	Clock timecalc.Clock
}

// run loads the report, records a new event when an argument was given and
// prints the result to out.
func run(ctx context.Context, opts options, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if err := applyLogLevel(cfg.LogLevel, opts.LogLevel); err != nil {
		return err
	}

	render, err := rendererFor(opts.Format)
	if err != nil {
		return err
	}

	ctx = logger.WithName(ctx, "punch")
	store := storage.New(cfg.ReportPath)

	res, err := store.Load(ctx)
	if err != nil {
		return err
	}
	r := report.New(res.Events, opts.Clock)

	if opts.Arg != nil {
		e := r.AddEvent(model.KindFromArg(*opts.Arg))
		if err := store.Save(ctx, r); err != nil {
			return err
		}
		logger.InfoKV(ctx, "event recorded", "kind", e.Kind.String(), "time", e.Time.Format(model.Layout))
	}

	return render(out, buildView(r))
}

// applyLogLevel sets the global level; the flag wins over configuration.
func applyLogLevel(fromConfig, fromFlag string) error {
	name := fromConfig
	if fromFlag != "" {
		name = fromFlag
	}
	if name == "" {
		return nil
	}
	lvl, ok := logger.ParseLogLevel(name)
	if !ok {
		return fmt.Errorf("invalid --log-level %q", name)
	}
	logger.SetLevel(lvl)
	return nil
}
