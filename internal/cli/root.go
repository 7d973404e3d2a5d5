// Package cli 实现 herofield 命令行
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/decker502/herofield/pkg/app"
	"github.com/decker502/herofield/pkg/config"
)

var (
	cfgFile string
	verbose bool

	runCount int
	runTheme string
)

var rootCmd = &cobra.Command{
	Use:   "herofield",
	Short: "Animated particle-network hero background with a light/dark theme toggle",
	Long: `herofield opens a window showing a drifting particle network with
proximity lines. Press T or click the button in the top-right corner to
toggle between the dark and light themes; the choice is remembered.

Settings are read from a YAML file (--config) and HEROFIELD_* environment
variables, e.g. HEROFIELD_PARTICLE_COUNT=120 or HEROFIELD_WINDOW__WIDTH=1280.`,
	SilenceUsage: true,
	RunE:         runWindow,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the particle field window (default command)",
	RunE:  runWindow,
}

// Execute 运行根命令
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "herofield.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	for _, cmd := range []*cobra.Command{rootCmd, runCmd} {
		cmd.Flags().IntVar(&runCount, "count", 0, "particle count (overrides config)")
		cmd.Flags().StringVar(&runTheme, "theme", "", "start theme: light or dark (not persisted)")
	}
	rootCmd.AddCommand(runCmd)
}

func runWindow(cmd *cobra.Command, args []string) error {
	fieldConfig, err := loadFieldConfig(cmd)
	if err != nil {
		return err
	}

	a, err := app.NewApp(app.Config{
		Verbose: verbose,
		Field:   fieldConfig,
		Theme:   runTheme,
	})
	if err != nil {
		return err
	}
	return a.Run()
}

// loadFieldConfig 加载配置并应用命令行覆盖
func loadFieldConfig(cmd *cobra.Command) (*config.FieldConfig, error) {
	cfg, err := config.LoadFieldConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	if f := cmd.Flags().Lookup("count"); f != nil && f.Changed {
		count, err := cmd.Flags().GetInt("count")
		if err != nil {
			return nil, err
		}
		if count < 0 {
			return nil, fmt.Errorf("--count must be non-negative, got %d", count)
		}
		cfg.ParticleCount = count
	}
	return cfg, nil
}

// setupLogging 非 verbose 模式下丢弃日志，与窗口模式一致
func setupLogging() {
	if verbose {
		log.SetOutput(os.Stderr)
		return
	}
	log.SetOutput(io.Discard)
	log.SetFlags(0)
}
