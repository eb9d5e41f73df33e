package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pthm/hxview"
	"github.com/spf13/cobra"
	"github.com/yosssi/gohtml"
)

func newRenderCmd(f *flags) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "render <definition.yaml>...",
		Short: "Render a view and print its markup",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, logger, err := f.buildView(args)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			defer v.Destroy()

			if err := v.Render(cmd.Context()); err != nil {
				return err
			}
			markup := v.Element().HTML()
			if !raw {
				markup = gohtml.Format(markup)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), markup)
			return err
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print markup without formatting")
	return cmd
}

func newInspectCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <definition.yaml>...",
		Short: "Render a view and print its UI bindings and delegated events",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, logger, err := f.buildView(args)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			defer v.Destroy()

			if err := v.Render(cmd.Context()); err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), v)
		},
	}
}

func writeReport(w io.Writer, v *hxview.View) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "view: %s (%s)\n", v.Definition().Name, v.CID())

	ui := v.UI()
	if len(ui) > 0 {
		sb.WriteString("ui:\n")
		for _, name := range sortedKeys(ui) {
			sel, err := v.GetUI(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(&sb, "  %s: %s (%d)\n", name, ui[name], sel.Len())
		}
	}

	if keys := v.Element().Delegated(); len(keys) > 0 {
		sb.WriteString("events:\n")
		for _, key := range keys {
			fmt.Fprintf(&sb, "  %s\n", key)
		}
	}

	def := v.Definition()
	writeEventMap(&sb, "modelEvents", def.ModelEvents)
	writeEventMap(&sb, "collectionEvents", def.CollectionEvents)
	writeEventMap(&sb, "childEvents", def.ChildEvents)

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeEventMap(sb *strings.Builder, title string, m hxview.EventMap) {
	if len(m) == 0 {
		return
	}
	sb.WriteString(title + ":\n")
	for _, event := range sortedKeys(m) {
		fmt.Fprintf(sb, "  %s -> %v\n", event, m[event])
	}
}
