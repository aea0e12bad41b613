package main

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arloliu/mdarr/array"
	"github.com/arloliu/mdarr/convert"
	"github.com/arloliu/mdarr/runtime"
)

func (c *cli) parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse LITERAL",
		Short: "Parse a literal and emit it as a base64 datum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, values, err := c.literals(cmd, args)
			if err != nil {
				return err
			}

			data, err := rt.EncodeDatum(values[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), base64.StdEncoding.EncodeToString(data))

			return nil
		},
	}
}

func (c *cli) printCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print DATUM",
		Short: "Print a base64 datum as a literal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := c.runtime(cmd)
			if err != nil {
				return err
			}

			data, err := base64.StdEncoding.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("decode datum: %w", err)
			}
			v, err := rt.DecodeDatum(data)
			if err != nil {
				return err
			}

			return printValue(cmd, rt, v)
		},
	}
}

func (c *cli) sliceCmd() *cobra.Command {
	var lower, upper, dim int

	cmd := &cobra.Command{
		Use:   "slice LITERAL",
		Short: "Keep positions [lower, upper] of one dimension",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, values, err := c.literals(cmd, args)
			if err != nil {
				return err
			}

			out, err := rt.Slice(values[0], lower, upper, dim)
			if err != nil {
				return err
			}

			return printValue(cmd, rt, out)
		},
	}
	cmd.Flags().IntVar(&lower, "lower", 1, "first kept position, 1-based")
	cmd.Flags().IntVar(&upper, "upper", 1, "last kept position, 1-based")
	cmd.Flags().IntVar(&dim, "dim", 1, "dimension to slice, 1-based")

	return cmd
}

func (c *cli) subscriptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subscript LITERAL POS",
		Short: "Print the item at a 1-based position of the first dimension",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("position %q: %w", args[1], err)
			}

			rt, values, err := c.literals(cmd, args[:1])
			if err != nil {
				return err
			}

			item, err := rt.Subscript(values[0], pos)
			if err != nil {
				return err
			}

			switch item.Kind {
			case array.ItemScalar:
				fmt.Fprintln(cmd.OutOrStdout(), item.Scalar.String())
			case array.ItemArray:
				text, err := array.Print(item.Array)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
			default:
				fmt.Fprintln(cmd.OutOrStdout(), item.Kind.String())
			}

			return nil
		},
	}
}

func (c *cli) appendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "append LEFT RIGHT",
		Short: "Concatenate two literals",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, values, err := c.literals(cmd, args)
			if err != nil {
				return err
			}

			out, err := rt.Append(values[0], values[1])
			if err != nil {
				return err
			}

			return printValue(cmd, rt, out)
		},
	}
}

func (c *cli) addCmd() *cobra.Command {
	var op string

	cmd := &cobra.Command{
		Use:   "add LEFT RIGHT",
		Short: "Combine two literals element-wise",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := array.ParseOp(op)
			if err != nil {
				return err
			}

			rt, values, err := c.literals(cmd, args)
			if err != nil {
				return err
			}

			fn := map[array.Op]func(l, r runtime.Value) (runtime.Value, error){
				array.OpAdd: rt.Add,
				array.OpSub: rt.Sub,
				array.OpMul: rt.Mul,
				array.OpDiv: rt.Div,
			}[o]
			out, err := fn(values[0], values[1])
			if err != nil {
				return err
			}

			return printValue(cmd, rt, out)
		},
	}
	cmd.Flags().StringVar(&op, "op", "add", "operator: add, sub, mul or div")

	return cmd
}

func (c *cli) jsonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "json LITERAL",
		Short: "Render a literal as nested JSON arrays",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, values, err := c.literals(cmd, args)
			if err != nil {
				return err
			}

			a, err := values[0].Array()
			if err != nil {
				return err
			}
			out, err := convert.ToJSON(a)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			return nil
		},
	}
}
