package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/decker502/herofield/pkg/config"
	"github.com/decker502/herofield/pkg/embedded"
	"github.com/decker502/herofield/pkg/game"
)

const testThemes = `
themes:
  dark:
    --background-color: "#0f172a"
    --particle-color: "rgba(59, 130, 246, 0.5)"
  light:
    --background-color: "#f8fafc"
    --particle-color: "rgba(59, 130, 246, 0.15)"
`

func initTestData(t *testing.T) {
	t.Helper()
	embedded.Init(fstest.MapFS{
		"data/themes.yaml": &fstest.MapFile{Data: []byte(testThemes)},
	})
	t.Cleanup(func() { embedded.Init(nil) })
}

func snapshotConfig() *config.FieldConfig {
	cfg := config.DefaultFieldConfig()
	cfg.Seed = 11
	cfg.ParticleCount = 20
	cfg.RadiusMin, cfg.RadiusMax = 2, 3
	return cfg
}

func TestRenderSnapshot(t *testing.T) {
	initTestData(t)

	progress := 0
	img, err := RenderSnapshot(snapshotConfig(), SnapshotOptions{
		Width:      160,
		Height:     120,
		Frames:     30,
		Theme:      game.ThemeDark,
		Background: true,
		Progress:   func(int) { progress++ },
	})
	if err != nil {
		t.Fatalf("RenderSnapshot() error: %v", err)
	}
	if progress != 30 {
		t.Errorf("progress callbacks: got %d, want 30", progress)
	}
	if b := img.Bounds(); b.Dx() != 160 || b.Dy() != 120 {
		t.Errorf("image size: got %v", b)
	}

	// 背景为 #0f172a，至少有一个像素被粒子改变
	bg := img.RGBAAt(0, 0)
	if bg.A != 255 {
		t.Errorf("background should be opaque, got alpha %d", bg.A)
	}
	changed := false
	for y := 0; y < 120 && !changed; y++ {
		for x := 0; x < 160; x++ {
			px := img.RGBAAt(x, y)
			if px.R != 15 || px.G != 23 || px.B != 42 {
				changed = true
				break
			}
		}
	}
	if !changed {
		t.Error("snapshot should contain particles")
	}
}

// TestRenderSnapshotLightTheme 浅色主题（非主主题，skip 策略）只有背景
func TestRenderSnapshotLightTheme(t *testing.T) {
	initTestData(t)

	img, err := RenderSnapshot(snapshotConfig(), SnapshotOptions{
		Width: 64, Height: 48, Frames: 5, Theme: game.ThemeLight,
	})
	if err != nil {
		t.Fatalf("RenderSnapshot() error: %v", err)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			t.Fatal("transparent light snapshot should be empty under the skip policy")
		}
	}
}

func TestRenderSnapshotInvalidSize(t *testing.T) {
	initTestData(t)
	if _, err := RenderSnapshot(snapshotConfig(), SnapshotOptions{Width: 0, Height: 10}); err == nil {
		t.Error("zero width should be rejected")
	}
}

func TestWritePNG(t *testing.T) {
	initTestData(t)
	img, err := RenderSnapshot(snapshotConfig(), SnapshotOptions{Width: 32, Height: 32, Frames: 1, Theme: game.ThemeDark})
	if err != nil {
		t.Fatalf("RenderSnapshot() error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.png")
	if err := writePNG(path, img); err != nil {
		t.Fatalf("writePNG() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not a PNG file")
	}
}

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("herofield %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	if got := runCLI(t, "version"); !strings.Contains(got, "herofield "+Version) {
		t.Errorf("version output: %q", got)
	}
}

func TestThemeCommands(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	themeAppName = "test_herofield_cli"
	defer func() { themeAppName = "herofield" }()

	if got := strings.TrimSpace(runCLI(t, "theme", "get")); got != "dark" {
		t.Errorf("theme get (default): got %q, want dark", got)
	}
	if got := strings.TrimSpace(runCLI(t, "theme", "toggle")); got != "light" {
		t.Errorf("theme toggle: got %q, want light", got)
	}
	if got := strings.TrimSpace(runCLI(t, "theme", "get")); got != "light" {
		t.Errorf("theme get after toggle: got %q, want light", got)
	}
	if got := strings.TrimSpace(runCLI(t, "theme", "set", "dark")); got != "dark" {
		t.Errorf("theme set dark: got %q", got)
	}
	if got := strings.TrimSpace(runCLI(t, "theme", "get")); got != "dark" {
		t.Errorf("theme get after set: got %q, want dark", got)
	}
}

func TestSnapshotCommand(t *testing.T) {
	initTestData(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "hero.png")

	got := runCLI(t, "snapshot",
		"--config", filepath.Join(dir, "absent.yaml"),
		"--width", "64", "--height", "48", "--frames", "3", "--count", "5", "--out", out)
	if !strings.Contains(got, "wrote "+out) {
		t.Errorf("snapshot output: %q", got)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("snapshot file not written: %v", err)
	}
}
