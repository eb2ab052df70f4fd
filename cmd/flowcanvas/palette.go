package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/flowcanvas/pkg/flowcanvas"
	"github.com/randalmurphal/flowcanvas/pkg/flowcanvas/palette"
)

type paletteEntry struct {
	palette.NodeConfig
	Targets []flowcanvas.NodeType `json:"allowedTargets"`
}

func newPaletteCmd(_ *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "palette",
		Short: "List node types and the targets each may connect to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configs := palette.Default().Configs()
			entries := make([]paletteEntry, len(configs))
			for i, cfg := range configs {
				entries[i] = paletteEntry{NodeConfig: cfg, Targets: flowcanvas.AllowedTargets(cfg.Type)}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TYPE\tLABEL\tICON\tCOLOR\tCONNECTS TO")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Type, e.Label, e.Icon, e.Color, joinTypes(e.Targets))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func joinTypes(types []flowcanvas.NodeType) string {
	if len(types) == 0 {
		return "(none)"
	}
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

func newCanConnectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "can-connect SOURCE TARGET",
		Short: "Check whether a node type may connect to another",
		Example: `  flowcanvas can-connect agent tool
  flowcanvas can-connect output agent`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := flowcanvas.ParseNodeType(args[0])
			if err != nil {
				return err
			}
			target, err := flowcanvas.ParseNodeType(args[1])
			if err != nil {
				return err
			}

			v := flowcanvas.ValidateConnection(source, target, "source", "target")
			out := cmd.OutOrStdout()
			if v.IsValid {
				fmt.Fprintf(out, "valid: %s -> %s\n", source, target)
			} else {
				fmt.Fprintf(out, "invalid: %s\n", v.Reason)
			}
			fmt.Fprintf(out, "color: %s\n", flowcanvas.ConnectionColor(v.IsValid))
			a.logger.Debug("connection checked",
				"source", source, "target", target, "valid", v.IsValid)
			return nil
		},
	}
}
