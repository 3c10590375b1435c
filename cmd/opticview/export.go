package main

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/optiview"
	"github.com/gogpu/optiview/interact"
	"github.com/gogpu/optiview/recording"
	"github.com/gogpu/optiview/recording/backends/archive"
	"github.com/gogpu/optiview/recording/backends/raster"
)

type exportFlags struct {
	backend string
	out     string
	scale   float64
	random  int
}

func newExportCmd(cfg *config) *cobra.Command {
	ef := &exportFlags{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the current view without a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := cfg.options()
			if err != nil {
				return err
			}
			return runExport(cfg, o, ef, cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVarP(&ef.backend, "backend", "b", "raster", "output backend: "+fmt.Sprint(recording.Backends()))
	f.StringVarP(&ef.out, "out", "o", "view.png", "output file")
	f.Float64Var(&ef.scale, "scale", 1, "scale factor for raster output")
	f.IntVar(&ef.random, "random", 0, "random ray batches to sample before rendering")
	return cmd
}

func runExport(cfg *config, o optiview.Options, ef *exportFlags, out io.Writer) error {
	l, err := cfg.newLayout(o)
	if err != nil {
		return err
	}
	for range ef.random {
		l.SampleRandom()
	}
	l.BuildScene(interact.FullArt)
	l.FinishOverlay()

	b, err := recording.NewBackend(ef.backend, o.Width, o.Height)
	if err != nil {
		return err
	}
	if rb, ok := b.(*raster.Backend); ok {
		rb.SetParallax(l.StereoOffset())
	}
	if err := l.Frame().Playback(b); err != nil {
		return err
	}

	if rb, ok := b.(*raster.Backend); ok && ef.scale != 1 {
		if err := saveScaled(rb, ef.out, ef.scale); err != nil {
			return err
		}
	} else {
		fb, ok := b.(recording.FileBackend)
		if !ok {
			return fmt.Errorf("opticview: backend %q cannot write files", ef.backend)
		}
		if err := fb.SaveToFile(ef.out); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "wrote %s (%s, %dx%d)\n", ef.out, ef.backend, o.Width, o.Height)
	return nil
}

func saveScaled(rb *raster.Backend, path string, scale float64) error {
	if !(scale > 0) {
		return fmt.Errorf("opticview: invalid scale %v", scale)
	}
	img, err := rb.Thumbnail(int(float64(rb.Width())*scale), int(float64(rb.Height())*scale))
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Summarize an archived frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := archive.ReadFile(args[0])
			if err != nil {
				return err
			}
			return inspect(cmd.OutOrStdout(), a)
		},
	}
}

func inspect(w io.Writer, a *archive.Archive) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "panel\t%dx%d\n", a.Width, a.Height)
	if m, ok := a.Marker(); ok {
		fmt.Fprintf(tw, "origin\t%.2f %.2f %.2f\n", m.Origin[0], m.Origin[1], m.Origin[2])
		fmt.Fprintf(tw, "scale\t%.4f %.4f %.4f px/unit\n", m.Scale[0], m.Scale[1], m.Scale[2])
	}
	for _, s := range a.Streams {
		strokes, fills, glyphs := 0, 0, 0
		for _, c := range s.All() {
			switch c.Op {
			case recording.OpStroke:
				strokes++
			case recording.OpFill:
				fills++
			case recording.OpPlaceGlyph:
				glyphs++
			}
		}
		fmt.Fprintf(tw, "%s\t%d commands\t%d strokes\t%d fills\t%d glyphs\n", s.Purpose(), s.Size(), strokes, fills, glyphs)
	}
	return tw.Flush()
}
