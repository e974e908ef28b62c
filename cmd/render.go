package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/achilleasa/spheretrace/output"
	"github.com/achilleasa/spheretrace/renderer"
	"github.com/achilleasa/spheretrace/scene"
	sceneio "github.com/achilleasa/spheretrace/scene/io"
	"github.com/achilleasa/spheretrace/tracer"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render settings that override the values stored in the scene file. Nil
// fields keep the scene settings.
type frameOptions struct {
	width    *int
	height   *int
	spp      *int
	maxDepth *int

	renderOpts renderer.Options
}

// Get the value of an int flag if it was given on the command line.
func intOverride(ctx *cli.Context, name string) (*int, error) {
	if !ctx.IsSet(name) {
		return nil, nil
	}
	v := ctx.Int(name)
	if v < 0 {
		return nil, fmt.Errorf("--%s override must not be negative; got %d", name, v)
	}
	return &v, nil
}

func parseFrameOptions(ctx *cli.Context) (frameOptions, error) {
	format, err := tracer.ParsePixelFormat(ctx.String("format"))
	if err != nil {
		return frameOptions{}, err
	}

	opts := frameOptions{
		renderOpts: renderer.Options{
			Workers: ctx.Int("workers"),
			Format:  format,
		},
	}
	for name, dst := range map[string]**int{
		"width":     &opts.width,
		"height":    &opts.height,
		"spp":       &opts.spp,
		"max-depth": &opts.maxDepth,
	} {
		if *dst, err = intOverride(ctx, name); err != nil {
			return frameOptions{}, err
		}
	}
	return opts, nil
}

// Apply overrides to the scene. Overriding the frame dimensions also
// updates the camera aspect ratio.
func (opts frameOptions) apply(sc *scene.Scene) {
	resized := false
	if opts.width != nil {
		sc.Width = *opts.width
		resized = true
	}
	if opts.height != nil {
		sc.Height = *opts.height
		resized = true
	}
	if opts.spp != nil {
		sc.SamplesPerPixel = *opts.spp
	}
	if opts.maxDepth != nil {
		sc.MaxDepth = *opts.maxDepth
	}
	if resized && sc.Camera != nil && sc.Width > 0 && sc.Height > 0 {
		sc.Camera.Aspect = float64(sc.Width) / float64(sc.Height)
		sc.Camera.Update()
	}
}

// Load output settings from the .env file, if present. Variables that are
// already set take precedence.
func loadEnv(ctx *cli.Context) error {
	envFile := ctx.String("env-file")
	if envFile == "" {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("could not load %s: %w", envFile, err)
	}
	return nil
}

// Load the scene file and apply the command line overrides.
func loadScene(ctx *cli.Context) (*scene.Scene, frameOptions, error) {
	opts, err := parseFrameOptions(ctx)
	if err != nil {
		return nil, opts, err
	}

	sc, err := sceneio.ReadScene(ctx.Args().First())
	if err != nil {
		return nil, opts, err
	}
	opts.apply(sc)
	return sc, opts, nil
}

// Render a frame and hand it to the writer.
func renderTo(ctx context.Context, r renderer.Renderer, sc *scene.Scene, w output.Writer) error {
	frame, err := r.Render(sc)
	if err != nil {
		return err
	}
	displayFrameStats(r.Stats())
	return w.Write(ctx, frame.Image())
}

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 2 {
		return errors.New("expected a scene file and an output path argument")
	}

	sc, opts, err := loadScene(ctx)
	if err != nil {
		return err
	}

	if err = loadEnv(ctx); err != nil {
		return err
	}
	w, err := output.New(ctx.Args().Get(1), output.S3ConfigFromEnv())
	if err != nil {
		return err
	}

	r, err := renderer.NewDefault(opts.renderOpts)
	if err != nil {
		return err
	}
	defer r.Close()

	logger.Noticef("rendering %dx%d frame (spp: %d, max depth: %d)", sc.Width, sc.Height, sc.SamplesPerPixel, sc.MaxDepth)
	return renderTo(context.Background(), r, sc, w)
}

// Render a sequence of frames while orbiting the camera around its look-at
// point.
func RenderTurntable(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 2 {
		return errors.New("expected a scene file and an output pattern argument")
	}

	pattern := ctx.Args().Get(1)
	if !strings.Contains(pattern, "%") {
		return fmt.Errorf("output pattern %q must contain a frame number verb such as %%03d", pattern)
	}
	frames := ctx.Int("frames")
	if frames < 1 {
		return fmt.Errorf("frame count must be at least 1; got %d", frames)
	}

	sc, opts, err := loadScene(ctx)
	if err != nil {
		return err
	}

	if err = loadEnv(ctx); err != nil {
		return err
	}
	s3Config := output.S3ConfigFromEnv()

	r, err := renderer.NewDefault(opts.renderOpts)
	if err != nil {
		return err
	}
	defer r.Close()

	yaw := 360.0 / float64(frames)
	pitch := ctx.Float64("pitch")
	for i := 0; i < frames; i++ {
		w, err := output.New(fmt.Sprintf(pattern, i), s3Config)
		if err != nil {
			return err
		}

		logger.Noticef("rendering frame %d/%d", i+1, frames)
		if err = renderTo(context.Background(), r, sc, w); err != nil {
			return err
		}

		sc.Camera.Orbit(yaw, pitch)
	}

	return nil
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Rows", "% of frame", "Render time"})
	for _, stat := range stats.Workers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%d", stat.Rows),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			fmt.Sprintf("%s", stat.RenderTime),
		})
	}
	table.SetFooter([]string{"", "", "TOTAL", fmt.Sprintf("%s", stats.RenderTime)})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
