// tinyrender - software 3D renderer
// Renders OBJ and GLB meshes with flat shading and a depth buffer, to a PNG
// file, the terminal or a desktop window.
//
// Controls (view and window):
//
//	W/S, Up/Down     - Orbit up/down
//	A/D, Left/Right  - Orbit left/right
//	H/L, J/K         - Move eye along X / Y
//	+/-              - Zoom in/out
//	R                - Reset camera
//	X                - Toggle wireframe
//	Q/Esc            - Quit
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/taigrr/tinyrender/pkg/models"
	"github.com/taigrr/tinyrender/pkg/render"
	"github.com/taigrr/tinyrender/pkg/window"
)

var version = "dev"

// config holds the flag values shared by every subcommand.
type config struct {
	width, height int
	eye           string
	center        string
	up            string
	light         string
	ambient       float64
	cullUnlit     bool
	color         string
	bg            string
	workers       int
	wireframe     bool
	axes          float64
	fit           bool
	fps           int
	scale         int
	output        string
	debug         bool
}

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := &config{}
	defaults := render.DefaultOptions()

	root := &cobra.Command{
		Use:   "tinyrender",
		Short: "Software 3D renderer for OBJ and GLB meshes",
		Long: "tinyrender loads a triangle mesh, projects it through a look-at camera " +
			"and fills it with flat Lambertian shading and a depth buffer.",
		SilenceUsage: true,
	}

	f := root.PersistentFlags()
	f.IntVar(&cfg.width, "width", defaults.Width, "output width in pixels (render, window)")
	f.IntVar(&cfg.height, "height", defaults.Height, "output height in pixels (render, window)")
	f.StringVar(&cfg.eye, "eye", "0,0,3", "camera eye position x,y,z")
	f.StringVar(&cfg.center, "center", "0,0,0", "point the camera looks at x,y,z")
	f.StringVar(&cfg.up, "up", "0,1,0", "camera up direction x,y,z")
	f.StringVar(&cfg.light, "light", "0,0,1", "direction toward the light x,y,z")
	f.Float64Var(&cfg.ambient, "ambient", defaults.Ambient, "brightness floor for faces turned from the light")
	f.BoolVar(&cfg.cullUnlit, "cull-unlit", false, "skip faces turned from the light instead of using --ambient")
	f.StringVar(&cfg.color, "color", "255,255,255", "surface color r,g,b")
	f.StringVar(&cfg.bg, "bg", "0,0,0", "background color r,g,b")
	f.IntVar(&cfg.workers, "workers", 1, "render horizontal bands on this many goroutines")
	f.BoolVar(&cfg.wireframe, "wireframe", false, "draw triangle edges instead of filling")
	f.Float64Var(&cfg.axes, "axes", 0, "draw world axes of this length (0 disables)")
	f.BoolVar(&cfg.fit, "fit", false, "center the mesh and scale it into [-1, 1]")
	f.BoolVar(&cfg.debug, "debug", false, "enable debug logging")

	root.AddCommand(newRenderCmd(cfg), newViewCmd(cfg), newWindowCmd(cfg))
	return root
}

func newRenderCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <model>",
		Short: "Render one frame to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cfg)
			mesh, err := loadMesh(args[0], cfg, logger)
			if err != nil {
				return err
			}
			opts, err := cfg.options(logger)
			if err != nil {
				return err
			}
			p, err := render.NewPipeline(mesh, opts)
			if err != nil {
				return fmt.Errorf("create pipeline: %w", err)
			}
			if _, err := p.Frame(&render.PNGPresenter{Path: cfg.output, Scale: cfg.scale}); err != nil {
				return err
			}
			logger.Info("wrote frame", "path", cfg.output, "width", opts.Width*max(cfg.scale, 1), "height", opts.Height*max(cfg.scale, 1))
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfg.output, "output", "o", "out.png", "PNG file to write")
	cmd.Flags().IntVar(&cfg.scale, "scale", 1, "enlarge the PNG by this integer factor")
	return cmd
}

func newViewCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <model>",
		Short: "View a model interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cfg)
			mesh, err := loadMesh(args[0], cfg, logger)
			if err != nil {
				return err
			}
			return runTerminal(cmd.Context(), mesh, cfg)
		},
	}
	cmd.Flags().IntVar(&cfg.fps, "fps", 60, "target frames per second")
	return cmd
}

func newWindowCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "window <model>",
		Short: "View a model interactively in a desktop window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cfg)
			mesh, err := loadMesh(args[0], cfg, logger)
			if err != nil {
				return err
			}
			opts, err := cfg.options(logger)
			if err != nil {
				return err
			}
			p, err := render.NewPipeline(mesh, opts)
			if err != nil {
				return fmt.Errorf("create pipeline: %w", err)
			}

			rig := newEyeRig(cfg.fps, p.Camera().Eye)
			w := window.New(p)
			w.Logger = logger
			w.Apply = func(c render.Command) bool { return rig.apply(p, c) }
			w.Tick = func() { rig.step(p) }
			return w.Run("tinyrender - "+filepath.Base(args[0]), cfg.scale, cfg.fps)
		},
	}
	cmd.Flags().IntVar(&cfg.fps, "fps", 60, "updates per second")
	cmd.Flags().IntVar(&cfg.scale, "scale", 1, "window pixels per framebuffer pixel")
	return cmd
}

func newLogger(cfg *config) *log.Logger {
	level := log.InfoLevel
	if cfg.debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "tinyrender",
		Level:  level,
	})
}

func loadMesh(path string, cfg *config, logger *log.Logger) (*models.Mesh, error) {
	mesh, err := models.LoadWithLogger(path, logger)
	if err != nil {
		return nil, err
	}
	if cfg.fit {
		mesh.FitUnit()
	}
	logger.Debug("loaded", "file", filepath.Base(path),
		"vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount())
	return mesh, nil
}
