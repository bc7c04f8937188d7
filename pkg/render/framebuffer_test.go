package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFramebuffer_SetPixelBounds(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.SetPixel(-1, 0, RGB8(1, 2, 3))
	fb.SetPixel(3, 1, RGB8(1, 2, 3))
	fb.SetPixel(2, 1, RGB8(9, 8, 7))

	if got := fb.GetPixel(2, 1); got != RGB8(9, 8, 7) {
		t.Errorf("GetPixel(2, 1) = %v, want %v", got, RGB8(9, 8, 7))
	}
	if got := fb.GetPixel(5, 5); got != (Color{}) {
		t.Errorf("GetPixel out of bounds = %v, want zero", got)
	}
}

func TestFramebuffer_Save(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Clear(RGB8(200, 10, 10))
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "out.png")
	if err := fb.Save(pngPath); err != nil {
		t.Fatalf("Save png: %v", err)
	}
	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if r, g, b, _ := img.At(3, 3).RGBA(); r>>8 != 200 || g>>8 != 10 || b>>8 != 10 {
		t.Errorf("pixel = (%d, %d, %d), want (200, 10, 10)", r>>8, g>>8, b>>8)
	}

	webpPath := filepath.Join(dir, "out.webp")
	if err := fb.Save(webpPath); err != nil {
		t.Fatalf("Save webp: %v", err)
	}
	if info, err := os.Stat(webpPath); err != nil || info.Size() == 0 {
		t.Errorf("webp output missing or empty: %v", err)
	}

	if err := fb.Save(filepath.Join(dir, "out.gif")); err == nil {
		t.Error("Save with .gif succeeded, want unsupported format error")
	}
}

func TestTerminalSize(t *testing.T) {
	if w, h := TerminalSize(80, 24); w != 80 || h != 48 {
		t.Errorf("TerminalSize(80, 24) = (%d, %d), want (80, 48)", w, h)
	}
}
