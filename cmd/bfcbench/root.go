package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/bfcbench/emu"
	"github.com/sarchlab/bfcbench/harness"
	"github.com/sarchlab/bfcbench/timing/latency"
)

// RootOptions holds the flags shared by all commands.
type RootOptions struct {
	Verbose      bool
	Backend      string
	ISA          string
	ConfigPath   string
	TimingConfig string
	DumpTiming   string
}

// NewRootCommand creates the bfcbench command. Run without arguments, it
// prints the three default cases.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "bfcbench",
		Short:         "Exercise the ARM bit-field clear instruction.",
		Long:          "Run bit-field clear cases on the emulated BFC instruction or the portable arithmetic and print the results.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.Verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runBench(cmd, opts)
			if err != nil {
				log.Error(err)
			}
			return err
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "increase logging verbosity")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "",
		"backend to run (auto|emulator|portable)")
	cmd.PersistentFlags().StringVar(&opts.ISA, "isa", "", "instruction set for the emulator (a64|t32)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML case file")
	cmd.PersistentFlags().StringVar(&opts.TimingConfig, "timing-config", "",
		"path to a JSON timing configuration")
	cmd.Flags().StringVar(&opts.DumpTiming, "dump-timing", "",
		"write the effective timing configuration as JSON to this path")

	cmd.AddCommand(NewDisasmCommand(opts))

	return cmd
}

// loadConfig merges the case file with the command-line overrides.
func loadConfig(opts *RootOptions) (*harness.Config, error) {
	config := harness.DefaultConfig()
	if opts.ConfigPath != "" {
		var err error
		if config, err = harness.LoadConfig(opts.ConfigPath); err != nil {
			return nil, err
		}
		log.Debugf("loaded %d cases from %s", len(config.Cases), opts.ConfigPath)
	}

	if opts.Backend != "" {
		config.Backend = opts.Backend
	}
	if opts.ISA != "" {
		config.ISA = opts.ISA
	}

	return config, nil
}

func runBench(cmd *cobra.Command, opts *RootOptions) error {
	config, err := loadConfig(opts)
	if err != nil {
		return err
	}

	isa, err := emu.ParseISA(config.ISA)
	if err != nil {
		return err
	}

	timing := latency.DefaultTimingConfig()
	if opts.TimingConfig != "" {
		if timing, err = latency.LoadConfig(opts.TimingConfig); err != nil {
			return err
		}
		if err := timing.Validate(); err != nil {
			return fmt.Errorf("invalid timing config: %w", err)
		}
	}
	if opts.DumpTiming != "" {
		if err := timing.SaveConfig(opts.DumpTiming); err != nil {
			return err
		}
		log.Debugf("timing config written to %s", opts.DumpTiming)
	}

	backend, err := harness.NewBackend(config.Backend, isa, timing)
	if err != nil {
		return err
	}
	runner := harness.NewRunner(backend)
	log.Debugf("backend %s (bit-field clear support: %t)",
		runner.Backend().Name(), harness.FeatureBitFieldClear)

	results, err := runner.Run(config.Cases)
	if err != nil {
		return err
	}

	return harness.Report(cmd.OutOrStdout(), results)
}
