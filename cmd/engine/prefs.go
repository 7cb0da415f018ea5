package main

import (
	"errors"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"jobnotify-engine/internal/app"
	"jobnotify-engine/internal/domain"
)

var (
	prefsKeywords   string
	prefsLocations  string
	prefsModes      string
	prefsExperience string
	prefsSkills     string
	prefsMinScore   int
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change matching preferences",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved preferences",
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
		renderPreferences(c.Settings())
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace the saved preferences",
	Long:  "Replace the saved preferences as a whole, like submitting the settings form. List flags take comma-separated values; omitted flags are saved empty.",
	RunE:  runPrefsSet,
}

var prefsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the saved preferences",
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
		if err := c.ResetPreferences(cmd.Context()); err != nil {
			return err
		}
		pterm.Success.Println("Preferences cleared.")
		return nil
	},
}

func init() {
	f := prefsSetCmd.Flags()
	f.StringVar(&prefsKeywords, "keywords", "", "Role keywords, e.g. \"frontend, react\"")
	f.StringVar(&prefsLocations, "locations", "", "Preferred locations, e.g. \"Remote, Pune\"")
	f.StringVar(&prefsModes, "modes", "", "Preferred modes: Remote, Hybrid, Onsite")
	f.StringVar(&prefsExperience, "experience", "", "Experience bucket: Fresher, 0-1, 1-3, 3-5")
	f.StringVar(&prefsSkills, "skills", "", "Skills, e.g. \"react, typescript\"")
	f.IntVar(&prefsMinScore, "min-score", domain.DefaultMinMatchScore, "Minimum match score (0-100)")

	prefsCmd.AddCommand(prefsShowCmd, prefsSetCmd, prefsResetCmd)
	rootCmd.AddCommand(prefsCmd)
}

// preferencesFromFlags mirrors the settings form: comma-separated text fields.
func preferencesFromFlags() domain.Preferences {
	var modes []domain.Mode
	for _, m := range domain.SplitList(prefsModes) {
		modes = append(modes, domain.Mode(m))
	}
	return domain.Preferences{
		RoleKeywords:       domain.SplitList(prefsKeywords),
		PreferredLocations: domain.SplitList(prefsLocations),
		PreferredMode:      modes,
		ExperienceLevel:    domain.Experience(prefsExperience),
		Skills:             domain.SplitList(prefsSkills),
		MinMatchScore:      prefsMinScore,
	}
}

func runPrefsSet(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	c, closeStore, err := openApp(cmd.Context(), cfg, nil)
	if err != nil {
		return err
	}
	defer closeStore()

	if _, err := c.SavePreferences(cmd.Context(), preferencesFromFlags()); err != nil {
		var ve *app.ValidationError
		if errors.As(err, &ve) {
			for _, f := range ve.Fields {
				pterm.Error.Printfln("%s: %s", f.Field, f.Message)
			}
			return errors.New("preferences not saved")
		}
		return err
	}
	pterm.Success.Println("Preferences saved.")
	renderPreferences(c.Settings())
	return nil
}
