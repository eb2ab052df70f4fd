package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/flowcanvas/pkg/flowcanvas/document"
	"github.com/randalmurphal/flowcanvas/pkg/flowcanvas/simulate"
)

func newSimulateCmd(a *app) *cobra.Command {
	var (
		input string
		delay time.Duration
		quiet bool
	)

	cmd := &cobra.Command{
		Use:   "simulate FILE",
		Short: "Dry-run a workflow with mocked node responses",
		Example: `  flowcanvas simulate support.yaml --input "My order never arrived"
  flowcanvas simulate support.json --input hi --delay 0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := document.Load(args[0])
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("delay") {
				delay = a.cfg.Simulation.StepDelay
			}
			runner := simulate.New(
				simulate.WithStepDelay(delay),
				simulate.WithLogger(a.logger),
			)

			out := cmd.OutOrStdout()
			var onUpdate simulate.UpdateFunc
			if !quiet {
				onUpdate = progressPrinter(out)
			}

			res, err := runner.Run(cmd.Context(), w, input, onUpdate)
			if err != nil {
				return err
			}

			printSteps(out, res)
			if !res.Succeeded() {
				return fmt.Errorf("%d step(s) failed", res.Count(simulate.StatusError))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&input, "input", "i", "", "sample user input (required)")
	flags.DurationVar(&delay, "delay", time.Second, "time each node spends running (default from config)")
	flags.BoolVarP(&quiet, "quiet", "q", false, "only print the final steps")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// progressPrinter prints one line per status transition.
func progressPrinter(out io.Writer) simulate.UpdateFunc {
	last := map[string]simulate.Status{}
	return func(steps []simulate.Step) {
		for _, s := range steps {
			if last[s.NodeID] == s.Status {
				continue
			}
			last[s.NodeID] = s.Status
			if s.Status == simulate.StatusPending {
				continue
			}
			fmt.Fprintf(out, "[%s] %s\n", s.Status, s.NodeID)
		}
	}
}

func printSteps(out io.Writer, res *simulate.Result) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NODE\tTYPE\tSTATUS\tOUTPUT")
	for _, s := range res.Steps {
		detail := s.Output
		if s.Error != "" {
			detail = s.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.NodeID, s.NodeType, s.Status, detail)
	}
	_ = tw.Flush()
	fmt.Fprintf(out, "run %s finished in %s\n", res.RunID, res.Duration.Round(time.Millisecond))
}
