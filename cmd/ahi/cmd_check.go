package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vhotmar/mff-vector-drawing-sub001/codebase"
	"github.com/vhotmar/mff-vector-drawing-sub001/project"
)

func newCheckCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:           "check [dir]",
		Short:         "Report problems in every grammar and source file of a project",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			proj, err := project.LoadFrom(dir)
			if err != nil && !errors.Is(err, project.ErrNotFound) {
				return err
			}
			if proj != nil {
				dir = proj.RootDir
			}

			cb := codebase.New(dir, proj)
			if err := cb.ScanAll(); err != nil {
				return err
			}

			p := newPrinter(os.Stdout)
			errs := 0
			for _, f := range cb.Files() {
				errs += printFile(p, cb.RootDir(), f)
			}

			if !watch {
				if errs > 0 {
					return fmt.Errorf("%d errors", errs)
				}
				return nil
			}

			w, err := codebase.NewFileWatcher(cb, func(path string, f *codebase.FileInfo) {
				if f != nil {
					printFile(p, cb.RootDir(), f)
				}
			})
			if err != nil {
				return err
			}
			if err := w.Start(); err != nil {
				return err
			}
			defer w.Stop()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep running and recheck files as they change")

	return cmd
}

// printFile prints the diagnostics of f and returns how many are errors.
func printFile(p *printer, root string, f *codebase.FileInfo) int {
	path := f.Path
	if rel, err := filepath.Rel(root, path); err == nil {
		path = rel
	}
	errs := 0
	for _, d := range f.Diagnostics {
		p.diagnostic(path, d)
		if d.Severity == codebase.SeverityError {
			errs++
		}
	}
	return errs
}
