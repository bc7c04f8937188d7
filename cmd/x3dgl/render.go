package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taigrr/x3dgl/internal/config"
	"github.com/taigrr/x3dgl/internal/demo"
	"github.com/taigrr/x3dgl/pkg/render"
	"github.com/taigrr/x3dgl/pkg/texture"
	"github.com/taigrr/x3dgl/pkg/x3d"
)

func newRenderCmd() *cobra.Command {
	var (
		s    settings
		spin float64
	)
	cmd := &cobra.Command{
		Use:   "render [scene|model.glb|image.png]",
		Short: "Render one frame to a PNG or WebP file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.resolve()
			if err != nil {
				return err
			}
			setLogger(cfg)

			scene, err := loadScene(sceneArg(args))
			if err != nil {
				return err
			}

			textures, err := loadTextures(cmd.Context(), scene)
			if err != nil {
				return err
			}

			fb, st, err := renderFrame(cfg, textures, scene.Draw, spin)
			if err != nil {
				return fmt.Errorf("draw %s: %w", scene.Name, err)
			}
			if err := fb.Save(cfg.Output); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", titleStyle.Render("wrote "+cfg.Output),
				dimStyle.Render(fmt.Sprintf("(%dx%d, %d triangles, %d samples)", fb.Width, fb.Height, st.Triangles, st.Samples)))
			return nil
		},
	}
	s.register(cmd)
	cmd.Flags().StringVarP(&s.flags.Output, "out", "o", "", "output file (.png or .webp)")
	cmd.Flags().Float64Var(&spin, "spin", 0, "rotation about +Y in radians")
	return cmd
}

// loadTextures builds a cache holding every image the scene samples.
func loadTextures(ctx context.Context, scene demo.Scene) (*texture.Cache, error) {
	cache := texture.NewCache()
	if err := cache.Preload(ctx, scene.Textures...); err != nil {
		return nil, fmt.Errorf("load textures for %s: %w", scene.Name, err)
	}
	return cache, nil
}

// renderFrame draws one frame of a scene into a fresh framebuffer. A nil
// cache gives the renderer a private one.
func renderFrame(cfg config.Config, textures *texture.Cache, draw func(*x3d.Renderer, float64) error, spin float64) (*render.Framebuffer, render.Stats, error) {
	fb := render.NewFramebuffer(cfg.Width, cfg.Height)
	r := x3d.New(fb, x3d.Options{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Near:          cfg.Near,
		Far:           cfg.Far,
		Supersampling: cfg.Supersample,
		Textures:      textures,
	})
	r.Clear(cfg.BackgroundColor())
	r.Flush()
	if err := draw(r, spin); err != nil {
		return nil, render.Stats{}, err
	}
	return fb, r.Stats(), nil
}
