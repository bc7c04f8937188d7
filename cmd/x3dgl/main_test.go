package main

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/x3dgl/internal/config"
	"github.com/taigrr/x3dgl/internal/demo"
	"github.com/taigrr/x3dgl/pkg/x3d"
)

func TestRenderCmd_WritesPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "box.png")
	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"render", "box", "--out", out, "--width", "32", "--height", "24", "--log-level", "error"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("render: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
		t.Errorf("output size = %v, want 32x24", b)
	}
	if !strings.Contains(stdout.String(), "12 triangles") {
		t.Errorf("summary = %q, want triangle count", stdout.String())
	}
}

func TestRenderCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown scene", []string{"render", "teapot"}, "unknown scene"},
		{"bad extension", []string{"render", "--out", "frame.gif"}, "invalid"},
		{"missing model", []string{"render", filepath.Join(t.TempDir(), "none.glb")}, "load model"},
		{"missing config", []string{"render", "--config", filepath.Join(t.TempDir(), "none.json")}, "config: read"},
		{"missing image", []string{"render", filepath.Join(t.TempDir(), "none.png")}, "load textures"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetArgs(tt.args)
			err := cmd.Execute()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Execute() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestRenderCmd_Image(t *testing.T) {
	dir := t.TempDir()
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(src.Pix); i += 4 {
		copy(src.Pix[i:i+4], []byte{0, 255, 0, 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	in := filepath.Join(dir, "green.png")
	if err := os.WriteFile(in, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "frame.png")
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"render", in, "--out", out, "--width", "16", "--height", "16", "--log-level", "error"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("render: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if r, g, b, _ := img.At(8, 8).RGBA(); g>>8 < 200 || r>>8 > 50 || b>>8 > 50 {
		t.Errorf("centre pixel = (%d, %d, %d), want the image green", r>>8, g>>8, b>>8)
	}
}

func TestLoadTextures_Preloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	cache, err := loadTextures(context.Background(), demo.ImageScene(path))
	if err != nil {
		t.Fatal(err)
	}
	if cache.Len() != 1 {
		t.Errorf("cache holds %d textures, want 1", cache.Len())
	}
}

func TestScenesCmd(t *testing.T) {
	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"scenes"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	for _, name := range demo.Names() {
		if !strings.Contains(stdout.String(), name) {
			t.Errorf("scenes output missing %q", name)
		}
	}
}

func TestRenderFrame_Background(t *testing.T) {
	var cfg config.Config
	cfg.Resolve(config.Flags{Width: 8, Height: 8})
	cfg.Background = []float64{0, 0, 1}

	fb, _, err := renderFrame(cfg, nil, func(*x3d.Renderer, float64) error { return nil }, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := fb.GetPixel(0, 0); got.B != 255 || got.R != 0 {
		t.Errorf("pixel = %v, want background blue", got)
	}
}

func TestSpin_Decays(t *testing.T) {
	s := newSpin(30)
	s.Impulse(0.5)
	for range 30 * 5 {
		s.Update()
	}
	if math.Abs(s.Velocity) > 1e-3 {
		t.Errorf("velocity after 5s = %v, want ~0", s.Velocity)
	}
	if s.Angle <= 0 {
		t.Errorf("angle = %v, want positive", s.Angle)
	}

	s.Reset()
	if s.Angle != 0 || s.Velocity != 0 {
		t.Errorf("Reset() left angle %v velocity %v", s.Angle, s.Velocity)
	}
}
