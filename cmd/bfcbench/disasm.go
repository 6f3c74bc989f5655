package main

import (
	"fmt"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/bfcbench/insts"
)

// NewDisasmCommand creates the disasm command, which prints the A64 and T32
// encodings of every case.
func NewDisasmCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "disasm",
		Short: "Print the BFC encodings of each case.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runDisasm(cmd, opts)
			if err != nil {
				log.Error(err)
			}
			return err
		},
	}
}

func runDisasm(cmd *cobra.Command, opts *RootOptions) error {
	config, err := loadConfig(opts)
	if err != nil {
		return err
	}

	a64 := insts.NewDecoder()
	t32 := insts.NewThumbDecoder()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	for _, c := range config.Cases {
		a64Word, err := insts.EncodeBFC(0, c.LSB, c.Width, false)
		if err != nil {
			return err
		}
		t32Word, err := insts.EncodeThumbBFC(0, c.LSB, c.Width)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "a64\t%08x\t%s\n", a64Word, a64.Decode(a64Word))
		fmt.Fprintf(w, "t32\t%04x %04x\t%s\n",
			t32Word>>16, t32Word&0xFFFF, t32.Decode(insts.SplitThumb32(t32Word)))
	}

	return w.Flush()
}
