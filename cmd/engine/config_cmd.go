package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"jobnotify-engine/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the engine config file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path, creating it with defaults if missing",
	RunE: func(_ *cobra.Command, _ []string) error {
		dataDir := resolveDataDir(dataDirFlag, os.Getenv)
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return err
		}
		p, err := config.EnsureUserConfig(dataDir)
		if err != nil {
			return err
		}
		abs, _ := filepath.Abs(p)
		fmt.Println(abs)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config file and environment overrides",
	RunE: func(_ *cobra.Command, _ []string) error {
		dataDir := resolveDataDir(dataDirFlag, os.Getenv)
		p, err := config.EnsureUserConfig(dataDir)
		if err != nil {
			return err
		}
		cfg, err := config.Load(p)
		if err != nil {
			return fmt.Errorf("config load failed (%s): %w", p, err)
		}
		if err := config.OverlayEnv(&cfg, os.Getenv); err != nil {
			return err
		}

		_, vr := config.NormalizeAndValidate(cfg)
		for _, w := range vr.Warnings {
			pterm.Warning.Println(w)
		}
		for _, e := range vr.Errors {
			pterm.Error.Println(e)
		}
		if !vr.OK() {
			return fmt.Errorf("%s has %d error(s)", p, len(vr.Errors))
		}
		pterm.Success.Printfln("%s is valid", p)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd, configValidateCmd)
	rootCmd.AddCommand(configCmd)
}
