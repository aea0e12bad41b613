package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arloliu/mdarr/array"
	"github.com/arloliu/mdarr/format"
	"github.com/arloliu/mdarr/runtime"
)

const envPrefix = "MDARR"

// cli holds the configuration shared by all subcommands.
type cli struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}
	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "mdarr",
		Short:         "Work with packed multi-dimensional array values",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringP("type", "t", "i32", "element type: i32, i64, f32, f64 or string")
	flags.String("compression", "none", "datum compression: none, zstd, s2 or lz4")
	flags.Int("max-dims", array.DefaultMaxDimensions, "maximum literal nesting depth")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	_ = c.v.BindPFlags(flags)

	root.AddCommand(
		c.parseCmd(),
		c.printCmd(),
		c.sliceCmd(),
		c.subscriptCmd(),
		c.appendCmd(),
		c.addCmd(),
		c.jsonCmd(),
	)

	return root
}

func (c *cli) elementType() (format.ElementType, error) {
	return format.ParseElementType(c.v.GetString("type"))
}

func (c *cli) runtime(cmd *cobra.Command) (*runtime.Runtime, error) {
	compression, err := format.ParseCompressionType(c.v.GetString("compression"))
	if err != nil {
		return nil, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.v.GetString("log-level"))); err != nil {
		return nil, err
	}

	return runtime.New(
		runtime.WithLogger(runtime.NewTextLogger(cmd.ErrOrStderr(), level)),
		runtime.WithCompression(compression),
		runtime.WithParseOptions(array.WithMaxDimensions(c.v.GetInt("max-dims"))),
	)
}

// literals parses every argument as a literal of the configured type.
func (c *cli) literals(cmd *cobra.Command, args []string) (*runtime.Runtime, []runtime.Value, error) {
	rt, err := c.runtime(cmd)
	if err != nil {
		return nil, nil, err
	}
	t, err := c.elementType()
	if err != nil {
		return nil, nil, err
	}

	values := make([]runtime.Value, len(args))
	for i, text := range args {
		if values[i], err = rt.FromLiteral(text, t); err != nil {
			return nil, nil, err
		}
	}

	return rt, values, nil
}

func printValue(cmd *cobra.Command, rt *runtime.Runtime, v runtime.Value) error {
	text, err := rt.Print(v)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)

	return nil
}
