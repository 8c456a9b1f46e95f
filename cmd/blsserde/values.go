package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/NethermindEth/blsserde/bls"
	"github.com/NethermindEth/blsserde/encoder"
	"github.com/NethermindEth/blsserde/serde"
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/iter"
	"github.com/spf13/cobra"
)

var errFailedArgs = errors.New("some arguments could not be processed")

// valueType describes how the CLI reads and prints one kind of value.
type valueType[V any] struct {
	name  string
	codec bls.Codec[V]
	// parse builds a value from its human-readable form, for encode.
	parse func(arg string) (V, error)
	// show prints a decoded value.
	show func(v V) string
}

var scalarType = valueType[bls.Scalar]{
	name:  "Scalar",
	codec: bls.ScalarCodec{},
	parse: parseScalar,
	show: func(s bls.Scalar) string {
		return s.BigInt(new(big.Int)).String()
	},
}

var pointType = valueType[bls.G1Affine]{
	name:  "G1Affine",
	codec: bls.PointCodec{},
	parse: func(arg string) (bls.G1Affine, error) {
		k, err := parseScalar(arg)
		if err != nil {
			return bls.G1Affine{}, err
		}
		var p bls.G1Affine
		p.ScalarMultiplicationBase(&k)
		return p, nil
	},
	show: func(p bls.G1Affine) string {
		return p.String()
	},
}

func parseScalar(arg string) (bls.Scalar, error) {
	var s bls.Scalar
	if _, err := s.SetString(arg); err != nil {
		return bls.Scalar{}, errors.Wrapf(err, "parse scalar %q", arg)
	}
	return s, nil
}

func scalarCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scalar",
		Short: "Scalar field elements (32 bytes, little-endian).",
	}
	cmd.AddCommand(
		encodeCmd(a, scalarType, "encode <decimal|0x-hex>...", "Encode scalars."),
		decodeCmd(a, scalarType, "decode <bytes>...", "Decode scalars and print them in decimal."),
	)
	return cmd
}

func pointCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "point",
		Short: "G1 points (48 bytes, compressed).",
	}
	cmd.AddCommand(
		encodeCmd(a, pointType, "encode <scalar>...", "Encode scalar * G1 generator."),
		decodeCmd(a, pointType, "decode <bytes>...", "Decode G1 points and print their affine coordinates."),
	)
	return cmd
}

func encodeCmd[V any](a *app, vt valueType[V], use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, vt.name, "encode", args, func(arg string) (string, error) {
				v, err := vt.parse(arg)
				if err != nil {
					return "", err
				}
				return encodeValue(vt.codec, v, a.cfg.Format)
			})
		},
	}
}

func decodeCmd[V any](a *app, vt valueType[V], use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, vt.name, "decode", args, func(arg string) (string, error) {
				v, err := decodeValue(vt.codec, arg, a.cfg.Format)
				if err != nil {
					return "", err
				}
				return vt.show(v), nil
			})
		},
	}
}

type result struct {
	out string
	err error
}

// run applies fn to every argument in parallel and prints the results in argument order.
func (a *app) run(cmd *cobra.Command, name, op string, args []string, fn func(string) (string, error)) error {
	results := iter.Map(args, func(arg *string) result {
		out, err := fn(*arg)
		return result{out: out, err: err}
	})

	failed := 0
	for i, r := range results {
		if r.err != nil {
			failed++
			kind := serde.KindOf(r.err)
			a.log.Warnw("Failed to "+op+" "+name, "arg", args[i], "kind", kind.String(), "err", r.err)
			if _, err := fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", args[i], r.err); err != nil {
				return err
			}
			continue
		}
		a.log.Debugw(strings.ToUpper(op[:1])+op[1:]+"d "+name, "arg", args[i])
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), r.out); err != nil {
			return err
		}
	}

	if failed > 0 {
		return errors.Wrapf(errFailedArgs, "%d of %d", failed, len(args))
	}
	return nil
}

func encodeValue[V any](c bls.Codec[V], v V, format string) (string, error) {
	switch format {
	case formatCBOR:
		b, err := encoder.Marshal(v)
		if err != nil {
			return "", err
		}
		return "0x" + hex.EncodeToString(b), nil
	case formatJSON:
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "0x" + hex.EncodeToString(c.Encode(v)), nil
	}
}

func decodeValue[V any](c bls.Codec[V], arg, format string) (V, error) {
	var v V
	if format == formatJSON {
		err := json.Unmarshal([]byte(arg), &v)
		return v, serde.Wrap(err)
	}

	b, err := hex.DecodeString(strings.TrimPrefix(arg, "0x"))
	if err != nil {
		return v, errors.Wrap(serde.Wrap(err), "decode hex input")
	}
	if format == formatCBOR {
		err = encoder.Unmarshal(b, &v)
		return v, err
	}
	return c.Decode(b)
}
