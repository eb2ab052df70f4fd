package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/flowcanvas/pkg/flowcanvas"
	"github.com/randalmurphal/flowcanvas/pkg/flowcanvas/document"
)

// errInvalidDocument is returned when a document has audit problems.
var errInvalidDocument = errors.New("workflow document has problems")

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Audit a workflow document",
		Long: `Decode a workflow document and report every problem: duplicate ids,
unknown node types, invalid node data, dangling edges and connections the
editor would reject. Unreachable nodes and cycles are reported as warnings.

Exits non-zero when any problem is found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validate(cmd.OutOrStdout(), args[0])
		},
	}
}

func (a *app) validate(out io.Writer, path string) error {
	w, err := document.Load(path)
	if err != nil {
		return err
	}

	problems := flowcanvas.Problems(w)
	for _, p := range problems {
		fmt.Fprintf(out, "error: %v\n", p)
	}
	if ids := w.Unreachable(); len(ids) > 0 {
		fmt.Fprintf(out, "warning: unreachable from roots: %s\n", strings.Join(ids, ", "))
	}
	if cycle := w.FindCycle(); cycle != nil {
		fmt.Fprintf(out, "warning: cycle: %s\n", strings.Join(cycle, " -> "))
	}

	a.logger.Info("document validated",
		"path", path, "nodes", len(w.Nodes), "edges", len(w.Edges), "problems", len(problems))

	if len(problems) > 0 {
		fmt.Fprintf(out, "%s: %d problem(s)\n", path, len(problems))
		return fmt.Errorf("%w: %d", errInvalidDocument, len(problems))
	}
	fmt.Fprintf(out, "%s: ok (%d nodes, %d edges)\n", path, len(w.Nodes), len(w.Edges))
	return nil
}
