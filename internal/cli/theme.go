package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decker502/herofield/pkg/app"
	"github.com/decker502/herofield/pkg/game"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Inspect or change the persisted theme preference",
}

var themeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the persisted theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tm, _ := openThemeManager()
		fmt.Fprintln(cmd.OutOrStdout(), tm.Current())
		return nil
	},
}

var themeSetCmd = &cobra.Command{
	Use:       "set light|dark",
	Short:     "Persist a theme",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(game.ThemeLight), string(game.ThemeDark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		theme, err := game.ParseTheme(args[0])
		if err != nil {
			return err
		}
		tm, err := openThemeManager()
		if err != nil {
			return err
		}
		tm.Set(theme)
		if err := tm.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), theme)
		return nil
	},
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Flip the persisted theme and print the new value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tm, err := openThemeManager()
		if err != nil {
			return err
		}
		theme := tm.Current().Opposite()
		tm.Set(theme)
		if err := tm.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), theme)
		return nil
	},
}

var themeAppName = app.DefaultAppName

func init() {
	themeCmd.AddCommand(themeGetCmd, themeSetCmd, themeToggleCmd)
	rootCmd.AddCommand(themeCmd)
}

// openThemeManager 打开偏好存储；不需要样式表
// 存储无法打开时仍返回内存中的默认主题，同时返回错误
func openThemeManager() (*game.ThemeManager, error) {
	setupLogging()
	gm := app.OpenPreferences(themeAppName)
	tm := game.NewThemeManager(gm, nil)
	if gm == nil {
		return tm, fmt.Errorf("preference storage unavailable")
	}
	return tm, nil
}
