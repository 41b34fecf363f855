package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/recera/sitekit/cmd/sitekit/internal/ui"
	"github.com/recera/sitekit/pkg/dom"
	"github.com/recera/sitekit/pkg/dom/htmldoc"
	"github.com/recera/sitekit/pkg/dom/memdom"
	"github.com/recera/sitekit/pkg/scheduler"
	"github.com/recera/sitekit/pkg/site"
)

type checkOptions struct {
	dark          bool
	reducedMotion bool
	jsonOutput    bool
}

func newCheckCommand() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check <page.html>",
		Short: "Report which site features a page wires up",
		Long: `Loads the page into an in-memory document, mounts the site behaviour on it
and lists the components that found their markup.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			features, err := checkPage(args[0], opts)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(features)
			}
			fmt.Println(ui.RenderReport(args[0], features))
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.dark, "dark", false, "Simulate a dark system colour scheme")
	cmd.Flags().BoolVar(&opts.reducedMotion, "reduced-motion", false, "Simulate the reduced motion preference")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the report as JSON")

	return cmd
}

func checkPage(path string, opts checkOptions) (site.Features, error) {
	doc, err := htmldoc.ParseFile(path)
	if err != nil {
		return site.Features{}, err
	}

	win := memdom.NewWindow(doc)
	win.SetMedia(dom.PrefersDark, opts.dark)
	win.SetMedia(dom.PrefersReducedMotion, opts.reducedMotion)

	s := site.New(win, scheduler.NewVirtual(), site.Options{})
	defer s.Close()

	s.Mount()
	win.FireLoad()
	return s.Features(), nil
}
