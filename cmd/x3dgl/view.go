package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/taigrr/x3dgl/internal/config"
	"github.com/taigrr/x3dgl/internal/demo"
	"github.com/taigrr/x3dgl/pkg/render"
	"github.com/taigrr/x3dgl/pkg/texture"
	"github.com/taigrr/x3dgl/pkg/x3d"
)

const nudge = 0.04

func newViewCmd() *cobra.Command {
	var s settings
	cmd := &cobra.Command{
		Use:   "view [scene|model.glb|image.png]",
		Short: "Preview a scene spinning in the terminal",
		Long: `Preview a scene spinning in the terminal.

Controls:
  A/D, Left/Right  nudge the spin
  Space            random impulse
  R                reset
  Esc, Ctrl+C      quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.resolve()
			if err != nil {
				return err
			}
			// The terminal is taken over; logs would corrupt it
			x3d.SetLogger(nil)

			scene, err := loadScene(sceneArg(args))
			if err != nil {
				return err
			}
			textures, err := loadTextures(cmd.Context(), scene)
			if err != nil {
				return err
			}
			return runView(cmd.Context(), scene, textures, cfg)
		},
	}
	s.register(cmd)
	return cmd
}

// spin tracks a rotation about +Y whose velocity eases to rest on a
// critically damped spring.
type spin struct {
	Angle    float64
	Velocity float64
	accel    float64 // spring velocity of Velocity
	spring   harmonica.Spring
	fps      int
}

func newSpin(fps int) spin {
	return spin{
		fps: fps,
		// Frequency 4.0 = moderate speed, damping 1.0 = no overshoot
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update advances one frame.
func (s *spin) Update() {
	s.Angle += s.Velocity
	s.Velocity, s.accel = s.spring.Update(s.Velocity, s.accel, 0)
}

// Impulse adds to the angular velocity, in radians per frame.
func (s *spin) Impulse(v float64) {
	s.Velocity += v
}

// Reset stops the spin and returns to angle 0.
func (s *spin) Reset() {
	*s = newSpin(s.fps)
}

// viewer owns the framebuffer and renderer sized to the terminal.
type viewer struct {
	cfg      config.Config
	scene    demo.Scene
	textures *texture.Cache // Kept across resizes
	cols     int
	rows     int
	fb       *render.Framebuffer
	r        *x3d.Renderer
}

func (v *viewer) resize(cols, rows int) {
	v.cols, v.rows = cols, rows
	w, h := render.TerminalSize(cols, rows)
	v.fb = render.NewFramebuffer(w, h)
	v.r = x3d.New(v.fb, x3d.Options{
		Width:         w,
		Height:        h,
		Near:          v.cfg.Near,
		Far:           v.cfg.Far,
		Supersampling: v.cfg.Supersample,
		Textures:      v.textures,
	})
}

// frame draws the scene at angle onto scr.
func (v *viewer) frame(scr uv.Screen, angle float64) error {
	v.r.Clear(v.cfg.BackgroundColor())
	v.r.Flush()
	if err := v.scene.Draw(v.r, angle); err != nil {
		return err
	}
	v.fb.Draw(scr, uv.Rect(0, 0, v.cols, v.rows))
	return nil
}

func runView(ctx context.Context, scene demo.Scene, textures *texture.Cache, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	term := uv.DefaultTerminal()
	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)
	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	v := &viewer{cfg: cfg, scene: scene, textures: textures}
	v.resize(cols, rows)

	rot := newSpin(cfg.FPS)
	rot.Impulse(nudge)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer ticker.Stop()

	events := term.Events()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				term.Erase()
				term.Resize(ev.Width, ev.Height)
				v.resize(ev.Width, ev.Height)
			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape", "ctrl+c"):
					return nil
				case ev.MatchString("a", "left"):
					rot.Impulse(-nudge)
				case ev.MatchString("d", "right"):
					rot.Impulse(nudge)
				case ev.MatchString("space"):
					rot.Impulse((rand.Float64() - 0.5) * 0.6)
				case ev.MatchString("r"):
					rot.Reset()
				}
			}

		case <-ticker.C:
			rot.Update()
			if err := v.frame(term, rot.Angle); err != nil {
				return fmt.Errorf("draw %s: %w", scene.Name, err)
			}
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
