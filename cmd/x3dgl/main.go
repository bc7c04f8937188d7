// x3dgl - software rasterizer for X3D scenes
// Render the built-in scenes or glTF models to PNG/WebP, or preview them
// spinning in the terminal.
//
// Usage:
//
//	x3dgl render [scene|model.glb] [--out frame.webp]
//	x3dgl view   [scene|model.glb]
//	x3dgl scenes
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/x3dgl/internal/config"
	"github.com/taigrr/x3dgl/internal/demo"
	"github.com/taigrr/x3dgl/pkg/models"
	"github.com/taigrr/x3dgl/pkg/x3d"
)

var version = "dev"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

func main() {
	if err := fang.Execute(context.Background(), newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

// settings are the flags shared by render and view.
type settings struct {
	configPath string
	flags      config.Flags
}

func (s *settings) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&s.configPath, "config", "", "JSON config file")
	f.IntVar(&s.flags.Width, "width", 0, "output width in pixels")
	f.IntVar(&s.flags.Height, "height", 0, "output height in pixels")
	f.IntVar(&s.flags.Supersample, "supersample", 0, "supersampling factor per axis")
	f.StringVar(&s.flags.LogLevel, "log-level", "", "debug, info, warn or error")
}

// resolve loads the config file, if any, and applies flags and defaults.
func (s *settings) resolve() (config.Config, error) {
	var cfg config.Config
	if s.configPath != "" {
		var err error
		if cfg, err = config.Load(s.configPath); err != nil {
			return config.Config{}, err
		}
	}
	cfg.Resolve(s.flags)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "x3dgl",
		Short:         "Software rasterizer for X3D scenes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRenderCmd(), newViewCmd(), newScenesCmd())
	return root
}

func newScenesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List the built-in scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, s := range demo.Scenes() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", titleStyle.Render(fmt.Sprintf("%-9s", s.Name)), dimStyle.Render(s.Description))
			}
			return nil
		},
	}
}

// loadScene resolves a scene name, a .glb/.gltf model or an image file. An
// empty argument selects the box scene.
func loadScene(arg string) (demo.Scene, error) {
	if arg == "" {
		arg = "box"
	}
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".glb", ".gltf":
		m, err := models.Load(arg)
		if err != nil {
			return demo.Scene{}, fmt.Errorf("load model: %w", err)
		}
		m.Normalize()
		return demo.ModelScene(m), nil
	case ".png", ".jpg", ".jpeg", ".tga", ".bmp", ".tif", ".tiff", ".webp":
		return demo.ImageScene(arg), nil
	}
	s, ok := demo.Lookup(arg)
	if !ok {
		return demo.Scene{}, fmt.Errorf("unknown scene %q (available: %s)", arg, strings.Join(demo.Names(), ", "))
	}
	return s, nil
}

// setLogger routes x3d logs to stderr at the configured level.
func setLogger(cfg config.Config) {
	level, _ := cfg.Level()
	x3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func sceneArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
