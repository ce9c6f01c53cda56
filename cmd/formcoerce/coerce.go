package main

import (
	"context"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	formcoerce "github.com/reoring/formcoerce"
	"github.com/reoring/formcoerce/codec"
)

type coerceFlags struct {
	schema schemaFlags
	config string
	meta   bool
	wire   bool
	indent bool
}

func newCoerceCmd() *cobra.Command {
	var f coerceFlags
	cmd := &cobra.Command{
		Use:   "coerce [flags] INPUT...",
		Short: "Coerce JSON records of raw form values",
		Long: "Reads each INPUT (a JSON record of raw form values, \"-\" for stdin) and prints\n" +
			"one coerced JSON document per input, in argument order.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCoerce(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), f, args)
		},
	}
	f.schema.register(cmd)
	cmd.Flags().StringVar(&f.config, "config", "", "YAML options file (overrides FORMCOERCE_* variables)")
	cmd.Flags().BoolVar(&f.meta, "meta", false, "print presence metadata alongside each value")
	cmd.Flags().BoolVar(&f.wire, "wire", false, "print coerced values re-encoded as raw form text")
	cmd.Flags().BoolVar(&f.indent, "indent", false, "indent JSON output")
	return cmd
}

func loadOptions(path string) (formcoerce.Options, error) {
	if path == "" {
		return formcoerce.OptionsFromEnv()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return formcoerce.Options{}, fmt.Errorf("read config: %w", err)
	}
	return formcoerce.LoadOptionsYAML(data)
}

func runCoerce(ctx context.Context, stdin io.Reader, out io.Writer, f coerceFlags, inputs []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opt, err := loadOptions(f.config)
	if err != nil {
		return err
	}
	shape, err := f.schema.load(ctx)
	if err != nil {
		return err
	}
	c := formcoerce.New(opt)
	logger.Debug("coercing inputs",
		zap.Int("count", len(inputs)),
		zap.Stringer("compositeEmpty", opt.CompositeEmpty),
		zap.Bool("fillAbsent", opt.FillAbsent))

	raws := make([]any, len(inputs))
	for i, name := range inputs {
		if raws[i], err = readInput(stdin, name); err != nil {
			return err
		}
	}

	results := make([]any, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	for i := range inputs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d := c.CoerceWithMeta(raws[i], shape)
			if d.Omitted {
				logger.Debug("root value omitted", zap.String("input", inputs[i]))
			}
			if f.wire && !d.Omitted {
				d.Value = codec.Encode(d.Value)
			}
			results[i] = renderResult(d, f.meta)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	if f.indent {
		enc.SetIndent("", "  ")
	}
	for i, r := range results {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("write result for %s: %w", inputs[i], err)
		}
	}
	return nil
}

func readInput(stdin io.Reader, name string) (any, error) {
	var r io.Reader = stdin
	if name != "-" {
		file, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer file.Close()
		r = file
	}
	var v any
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return nil, fmt.Errorf("decode input %s: %w", name, err)
	}
	return v, nil
}
