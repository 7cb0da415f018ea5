package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"jobnotify-engine/internal/rank"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List or toggle saved jobs",
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved jobs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		c, closeStore, err := openApp(cmd.Context(), cfg, nil)
		if err != nil {
			return err
		}
		defer closeStore()

		var ranked []rank.Ranked
		for _, j := range c.SavedJobs() {
			r, err := c.Score(j.ID)
			if err != nil {
				continue
			}
			ranked = append(ranked, r)
		}
		return renderJobs(ranked, c.Saved())
	},
}

var savedToggleCmd = &cobra.Command{
	Use:   "toggle <job-id>",
	Short: "Save a job, or unsave it if already saved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		c, closeStore, err := openApp(cmd.Context(), cfg, nil)
		if err != nil {
			return err
		}
		defer closeStore()

		saved, err := c.ToggleSaved(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if saved {
			pterm.Success.Printfln("Saved %s", args[0])
		} else {
			pterm.Info.Printfln("Removed %s from saved jobs", args[0])
		}
		return nil
	},
}

func init() {
	savedCmd.AddCommand(savedListCmd, savedToggleCmd)
	rootCmd.AddCommand(savedCmd)
}
