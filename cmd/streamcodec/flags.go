package main

import (
	"github.com/spf13/cobra"

	"github.com/mcvoid/streamcodec/jsonreader"
)

// readerFlags holds the pflag-bound switches shared by encode and tap,
// mirroring the reader options enumerated in spec.md §6.
type readerFlags struct {
	cborDiag      bool
	trailingComma bool
	bigDecimal    bool
	nonDraining   bool
}

func (f *readerFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.cborDiag, "cbor-diag", false, "accept CBOR-diagnostic JSON extensions")
	cmd.Flags().BoolVar(&f.trailingComma, "trailing-comma", false, "permit a trailing comma before ']' or '}'")
	cmd.Flags().BoolVar(&f.bigDecimal, "big-decimal", false, "promote non-round-trip floats to arbitrary precision")
	cmd.Flags().BoolVar(&f.nonDraining, "non-draining", false, "don't error on trailing content after the root value")
}

func (f *readerFlags) options() []jsonreader.Option {
	opts := []jsonreader.Option{jsonreader.WithFinal()}
	if f.cborDiag {
		opts = append(opts, jsonreader.WithCBORDiag())
	}
	if f.trailingComma {
		opts = append(opts, jsonreader.WithTrailingComma())
	}
	if f.bigDecimal {
		opts = append(opts, jsonreader.WithBigDecimal())
	}
	if f.nonDraining {
		opts = append(opts, jsonreader.WithNonDraining())
	} else {
		opts = append(opts, jsonreader.WithDraining())
	}
	return opts
}
