package cmd

import "github.com/urfave/cli"

// Flags shared by all commands.
var GlobalFlags = []cli.Flag{
	cli.BoolFlag{
		Name:  "v",
		Usage: "enable verbose logging",
	},
	cli.BoolFlag{
		Name:  "vv",
		Usage: "enable even more verbose logging",
	},
	cli.StringFlag{
		Name:   "log-level",
		Usage:  "log level (debug, info, notice, warning, error)",
		EnvVar: "SPHERETRACE_LOG_LEVEL",
	},
	cli.StringSliceFlag{
		Name:  "log-module",
		Usage: "per-module log level as module=level (e.g. texture=warning); may be repeated",
	},
}

var renderFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "width",
		Usage: "frame width; overrides the scene value",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "frame height; overrides the scene value",
	},
	cli.IntFlag{
		Name:  "spp",
		Usage: "samples per pixel; overrides the scene value",
	},
	cli.IntFlag{
		Name:  "max-depth",
		Usage: "max ray bounces; overrides the scene value",
	},
	cli.IntFlag{
		Name:   "workers",
		Usage:  "number of render workers (0 uses all cpus)",
		EnvVar: "SPHERETRACE_WORKERS",
	},
	cli.StringFlag{
		Name:  "format",
		Value: "rgb",
		Usage: "frame pixel layout (rgb or rgba)",
	},
	cli.StringFlag{
		Name:  "env-file",
		Value: ".env",
		Usage: "file with S3 settings for s3://bucket/key outputs",
	},
}

// The application commands.
var Commands = []cli.Command{
	{
		Name:  "render",
		Usage: "render scene",
		Subcommands: []cli.Command{
			{
				Name:  "frame",
				Usage: "render single frame",
				Description: `
Render a single frame of a .json scene or .zip scene bundle. The output
path may be a local image file (the encoding is selected by its extension
and defaults to PNG) or an s3://bucket/key url.`,
				ArgsUsage: "scene_file output",
				Flags:     renderFlags,
				Action:    RenderFrame,
			},
			{
				Name:  "turntable",
				Usage: "render frames while orbiting the camera around its look-at point",
				Description: `
Render a sequence of frames rotating the camera by 360/frames degrees
between frames. The output pattern receives the frame number, e.g.
frames/turntable-%03d.png.`,
				ArgsUsage: "scene_file output_pattern",
				Flags: append([]cli.Flag{
					cli.IntFlag{
						Name:  "frames",
						Value: 36,
						Usage: "number of frames",
					},
					cli.Float64Flag{
						Name:  "pitch",
						Usage: "camera pitch change in degrees between frames",
					},
				}, renderFlags...),
				Action: RenderTurntable,
			},
		},
	},
	{
		Name:      "info",
		Usage:     "display scene information",
		ArgsUsage: "scene_file",
		Action:    ShowSceneInfo,
	},
	{
		Name:  "bundle",
		Usage: "package a scene and its sky texture into a zip bundle",
		Description: `
Read a scene, validate it and write it together with its sky texture to a
zip archive that can be supplied as an argument to the render commands.`,
		ArgsUsage: "scene_file [bundle.zip]",
		Action:    BundleScene,
	},
}
