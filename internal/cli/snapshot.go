package cli

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math/rand"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/decker502/herofield/pkg/canvas"
	"github.com/decker502/herofield/pkg/config"
	"github.com/decker502/herofield/pkg/field"
	"github.com/decker502/herofield/pkg/game"
	"github.com/decker502/herofield/pkg/utils"
)

// SnapshotOptions 无窗口渲染参数
type SnapshotOptions struct {
	Width  int
	Height int
	Frames int
	Theme  game.Theme
	// Background 是否在画布下方铺上 --background-color，false 时输出透明背景
	Background bool
	// Progress 每推进一帧调用一次，可为 nil
	Progress func(frame int)
}

var (
	snapshotWidth       int
	snapshotHeight      int
	snapshotFrames      int
	snapshotTheme       string
	snapshotOut         string
	snapshotCount       int
	snapshotTransparent bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render the particle field headlessly and write a PNG",
	Long: `snapshot runs the particle field on a software canvas for the given
number of frames and writes the final image to a PNG file. It uses the same
configuration as the window, so it is handy for previewing settings or
producing a static fallback image.`,
	Args: cobra.NoArgs,
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().IntVar(&snapshotWidth, "width", 800, "canvas width in pixels")
	snapshotCmd.Flags().IntVar(&snapshotHeight, "height", 600, "canvas height in pixels")
	snapshotCmd.Flags().IntVar(&snapshotFrames, "frames", 120, "number of frames to simulate")
	snapshotCmd.Flags().StringVar(&snapshotTheme, "theme", string(game.ThemeDark), "theme to render: light or dark")
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "herofield.png", "output PNG path")
	snapshotCmd.Flags().IntVar(&snapshotCount, "count", 0, "particle count (overrides config)")
	snapshotCmd.Flags().BoolVar(&snapshotTransparent, "transparent", false, "leave the page background transparent")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	setupLogging()

	fieldConfig, err := loadFieldConfig(cmd)
	if err != nil {
		return err
	}
	theme, err := game.ParseTheme(snapshotTheme)
	if err != nil {
		return err
	}
	if snapshotFrames < 0 {
		return fmt.Errorf("--frames must be non-negative, got %d", snapshotFrames)
	}

	bar := progressbar.NewOptions(snapshotFrames,
		progressbar.OptionSetDescription("Rendering frames"),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	img, err := RenderSnapshot(fieldConfig, SnapshotOptions{
		Width:      snapshotWidth,
		Height:     snapshotHeight,
		Frames:     snapshotFrames,
		Theme:      theme,
		Background: !snapshotTransparent,
		Progress: func(int) {
			_ = bar.Add(1)
		},
	})
	_ = bar.Finish()
	if err != nil {
		return err
	}

	if err := writePNG(snapshotOut, img); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d, %d frames, %s theme)\n",
		snapshotOut, snapshotWidth, snapshotHeight, snapshotFrames, theme)
	return nil
}

// RenderSnapshot 在软件画布上运行粒子场并返回最终画面
func RenderSnapshot(cfg *config.FieldConfig, opts SnapshotOptions) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("snapshot size must be positive, got %dx%d", opts.Width, opts.Height)
	}

	sheet, err := config.LoadStylesheet(cfg.Stylesheet)
	if err != nil {
		return nil, fmt.Errorf("failed to load stylesheet: %w", err)
	}
	// 不打开偏好存储：快照的主题只来自参数
	style := game.NewThemeManager(nil, sheet)
	style.Set(opts.Theme)

	surface := canvas.NewRasterSurface(opts.Width, opts.Height)
	doc := canvas.NewRegistry()
	doc.Register(cfg.CanvasID, surface)

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	frames := game.NewFrameQueue()
	renderer := field.NewRenderer(cfg, style, frames, rng)
	if !renderer.Start(doc) {
		return nil, fmt.Errorf("canvas %q not registered", cfg.CanvasID)
	}
	for i := 0; i < opts.Frames; i++ {
		frames.RunFrame()
		if opts.Progress != nil {
			opts.Progress(i + 1)
		}
	}
	renderer.Stop()

	out := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	if opts.Background {
		if bg, err := utils.ParseCSSColor(style.StyleValue("--background-color")); err == nil {
			draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
		}
	}
	draw.Draw(out, out.Bounds(), surface.Image(), image.Point{}, draw.Over)
	return out, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
