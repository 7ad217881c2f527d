package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/chazu/mathgen/pkg/engine"
	"github.com/chazu/mathgen/pkg/params"
	"github.com/chazu/mathgen/pkg/preset"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	configPath string
	presetName string
	dbPath     string
	logLevel   string
	mapLimit   float64
	overrides  map[string]string

	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "mathgen",
		Short:         "Fractal terrain field evaluator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), opts.logLevel)
			if err != nil {
				return err
			}
			opts.logger = logger.With("run", uuid.NewString())
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "configuration file (.toml, .yaml, .json or .zy script)")
	pf.StringVarP(&opts.presetName, "preset", "p", "", "load the configuration from a stored preset")
	pf.StringVar(&opts.dbPath, "db", "mathgen.db", "preset database path")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.Float64Var(&opts.mapLimit, "map-limit", params.DefaultMapLimit, "world coordinate limit used by size defaults")
	pf.StringToStringVar(&opts.overrides, "set", nil,
		"override configuration keys (key=value,...); give center its own flag, as in --set center=1,2,3; "+
			"overriding a preset's generator keeps only the fields it set away from its defaults")

	root.AddCommand(
		newGenerateCmd(opts),
		newParamsCmd(opts),
		newCheckCmd(opts),
		newKindsCmd(),
		newPresetCmd(opts),
	)
	return root
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// rawConfiguration loads the configuration named by the flags: a preset,
// a config file or script, or nothing. --set overrides are applied last.
func (o *options) rawConfiguration(ctx context.Context) (params.RawConfiguration, error) {
	raw := params.RawConfiguration{}

	switch {
	case o.presetName != "" && o.configPath != "":
		return nil, fmt.Errorf("--preset and --config are mutually exclusive")

	case o.presetName != "":
		store, err := preset.Open(o.dbPath)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		rec, err := store.Get(o.presetName)
		if err != nil {
			return nil, err
		}
		raw = params.Encode(rec.Parameters)
		if g, ok := o.overrides[params.KeyGenerator]; ok && g != rec.Generator {
			raw = o.resolver().EncodeChanges(rec.Parameters)
		}

	case strings.EqualFold(filepath.Ext(o.configPath), ".zy"):
		cfg, evalErrs, err := engine.NewEngine().EvaluateFile(ctx, o.configPath)
		if err != nil {
			return nil, err
		}
		if len(evalErrs) > 0 {
			for _, e := range evalErrs {
				o.logger.Error("script error", "file", o.configPath, "line", e.Line, "message", e.Message)
			}
			return nil, fmt.Errorf("%s: %w", o.configPath, evalErrs[0])
		}
		raw = cfg

	case o.configPath != "":
		cfg, err := params.LoadFile(o.configPath)
		if err != nil {
			return nil, err
		}
		raw = cfg
	}

	for k, v := range o.overrides {
		raw[k] = v
	}
	return raw, nil
}

func (o *options) resolver() params.Resolver {
	return params.Resolver{MapLimit: o.mapLimit}
}

// parameters resolves the configuration and logs lint findings.
func (o *options) parameters(ctx context.Context) (params.Parameters, error) {
	raw, err := o.rawConfiguration(ctx)
	if err != nil {
		return params.Parameters{}, err
	}
	p := o.resolver().Resolve(raw)
	for _, f := range params.Lint(p) {
		o.logger.Warn("degenerate parameter", "field", f.Field, "message", f.Message)
	}
	o.logger.Debug("resolved parameters",
		"generator", p.Kind.String(),
		"size", p.Size,
		"scale", p.Scale,
		"distance", p.Distance,
		"iterations", p.Iterations,
		"invert", p.Invert,
	)
	return p, nil
}
