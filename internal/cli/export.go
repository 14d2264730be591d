package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/studylit/internal/export"
	"github.com/julianstephens/studylit/internal/logger"
)

type ExportCmd struct {
	Format string `help:"Output format: json or yaml. Defaults to the output file's extension, else json." default:""`
	Output string `short:"o" help:"Write to this file instead of stdout." type:"path" default:""`
}

func (c *ExportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	format, err := export.ParseFormat(c.formatName())
	if err != nil {
		return err
	}

	snap, err := ctx.Snapshot()
	if err != nil {
		return err
	}
	bundle := export.Build(snap, ctx.Now())

	var w io.Writer = os.Stdout
	if c.Output != "" {
		f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := export.Write(w, bundle, format); err != nil {
		return err
	}

	if c.Output != "" {
		logger.Info("Exported data", "path", c.Output, "format", format)
		fmt.Fprintf(os.Stderr, "Exported %d sessions, %d habits to %s\n", len(bundle.Entries), len(bundle.Habits), c.Output)
	}
	return nil
}

func (c *ExportCmd) formatName() string {
	if c.Format != "" {
		return c.Format
	}
	if ext := strings.TrimPrefix(filepath.Ext(c.Output), "."); ext != "" {
		return ext
	}
	return string(export.FormatJSON)
}
