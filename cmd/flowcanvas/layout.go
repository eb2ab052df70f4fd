package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/flowcanvas/pkg/flowcanvas/layout"
)

func newLayoutCmd(a *app) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show or change the editor's saved panel layout",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "layout database (default from config layout.path)")

	open := func(cmd *cobra.Command) (layout.Store, string, error) {
		path := a.cfg.Layout.Path
		if cmd.Flags().Changed("db") {
			path = dbPath
		}
		s, err := layout.Open(path)
		if err != nil {
			return nil, "", fmt.Errorf("opening layout store: %w", err)
		}
		return s, a.cfg.Layout.Key, nil
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the saved layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, key, err := open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			printPrefs(cmd.OutOrStdout(), layout.LoadOrDefault(s, key, a.logger))
			return nil
		},
	}

	var (
		left, right, bottom                         float64
		collapseLeft, collapseRight, collapseBottom bool
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Change panel sizes or collapsed panels",
		Long: `Change the saved layout. Only the flags given are changed. Sizes are
percentages and are clamped: left and right to 12-35, bottom to 15-50.`,
		Example: `  flowcanvas layout set --left 25 --bottom 40
  flowcanvas layout set --collapse-right`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, key, err := open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			p := layout.LoadOrDefault(s, key, a.logger)
			flags := cmd.Flags()
			if flags.Changed("left") {
				p.Sizes.Left = left
			}
			if flags.Changed("right") {
				p.Sizes.Right = right
			}
			if flags.Changed("bottom") {
				p.Sizes.Bottom = bottom
			}
			if flags.Changed("collapse-left") {
				p.Collapsed.Left = collapseLeft
			}
			if flags.Changed("collapse-right") {
				p.Collapsed.Right = collapseRight
			}
			if flags.Changed("collapse-bottom") {
				p.Collapsed.Bottom = collapseBottom
			}
			p.Sizes = p.Sizes.Clamp()

			if err := s.Save(key, p); err != nil {
				return err
			}
			a.logger.Info("layout saved", "key", key)
			printPrefs(cmd.OutOrStdout(), p)
			return nil
		},
	}
	sf := set.Flags()
	sf.Float64Var(&left, "left", 0, "left panel width (%)")
	sf.Float64Var(&right, "right", 0, "right panel width (%)")
	sf.Float64Var(&bottom, "bottom", 0, "bottom panel height (%)")
	sf.BoolVar(&collapseLeft, "collapse-left", false, "collapse the left panel")
	sf.BoolVar(&collapseRight, "collapse-right", false, "collapse the right panel")
	sf.BoolVar(&collapseBottom, "collapse-bottom", false, "collapse the bottom panel")

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, key, err := open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Delete(key); err != nil {
				return err
			}
			printPrefs(cmd.OutOrStdout(), layout.DefaultPrefs())
			return nil
		},
	}

	cmd.AddCommand(show, set, reset)
	return cmd
}

func printPrefs(out io.Writer, p layout.Prefs) {
	fmt.Fprintf(out, "left:   %g%%%s\n", p.Sizes.Left, collapsed(p.Collapsed.Left))
	fmt.Fprintf(out, "right:  %g%%%s\n", p.Sizes.Right, collapsed(p.Collapsed.Right))
	fmt.Fprintf(out, "bottom: %g%%%s\n", p.Sizes.Bottom, collapsed(p.Collapsed.Bottom))
}

func collapsed(c bool) string {
	if c {
		return " (collapsed)"
	}
	return ""
}
