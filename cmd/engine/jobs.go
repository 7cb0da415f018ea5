package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"jobnotify-engine/internal/domain"
	"jobnotify-engine/internal/rank"
)

var (
	jobsSearch      string
	jobsLocation    string
	jobsMode        string
	jobsExperience  string
	jobsSource      string
	jobsSort        string
	jobsOnlyMatches bool
	jobsLimit       int
	jobsJSON        bool
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List jobs ranked against your preferences",
	RunE:  runJobs,
}

var scoreCmd = &cobra.Command{
	Use:   "score <job-id>",
	Short: "Show one job's match score and the signals behind it",
	Args:  cobra.ExactArgs(1),
	RunE:  runScore,
}

func init() {
	jobsCmd.Flags().StringVarP(&jobsSearch, "search", "q", "", "Match text in title or company")
	jobsCmd.Flags().StringVar(&jobsLocation, "location", "", "Only this location")
	jobsCmd.Flags().StringVar(&jobsMode, "mode", "", "Only this mode (Remote, Hybrid, Onsite)")
	jobsCmd.Flags().StringVar(&jobsExperience, "experience", "", "Only this experience bucket (Fresher, 0-1, 1-3, 3-5)")
	jobsCmd.Flags().StringVar(&jobsSource, "source", "", "Only this source (LinkedIn, Naukri, Indeed)")
	jobsCmd.Flags().StringVarP(&jobsSort, "sort", "s", "", "latest, score or salary (default from config)")
	jobsCmd.Flags().BoolVar(&jobsOnlyMatches, "only-matches", false, "Hide jobs below your minimum match score")
	jobsCmd.Flags().IntVarP(&jobsLimit, "limit", "n", 0, "Show at most this many jobs")
	jobsCmd.Flags().BoolVar(&jobsJSON, "json", false, "Print JSON instead of a table")

	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(scoreCmd)
}

func buildQuery() (rank.Query, error) {
	q := rank.Query{
		Search:      jobsSearch,
		Location:    strings.TrimSpace(jobsLocation),
		Mode:        domain.Mode(strings.TrimSpace(jobsMode)),
		Experience:  domain.Experience(strings.TrimSpace(jobsExperience)),
		Source:      domain.Source(strings.TrimSpace(jobsSource)),
		OnlyMatches: jobsOnlyMatches,
	}
	if q.Mode != "" && !q.Mode.Valid() {
		return q, fmt.Errorf("unknown mode %q", jobsMode)
	}
	if q.Experience != "" && !q.Experience.Valid() {
		return q, fmt.Errorf("unknown experience %q", jobsExperience)
	}
	if q.Source != "" && !q.Source.Valid() {
		return q, fmt.Errorf("unknown source %q", jobsSource)
	}
	if jobsSort != "" {
		key, err := rank.ParseSortKey(jobsSort)
		if err != nil {
			return q, err
		}
		q.Sort = key
	}
	return q, nil
}

func runJobs(cmd *cobra.Command, _ []string) error {
	q, err := buildQuery()
	if err != nil {
		return err
	}
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	c, closeStore, err := openApp(cmd.Context(), cfg, nil)
	if err != nil {
		return err
	}
	defer closeStore()

	ranked := c.Rank(q)
	if jobsLimit > 0 && len(ranked) > jobsLimit {
		ranked = ranked[:jobsLimit]
	}

	if jobsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ranked)
	}
	if !c.Settings().IsConfigured() {
		pterm.Warning.Println("No preferences saved; all scores are 0.")
	}
	return renderJobs(ranked, c.Saved())
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	c, closeStore, err := openApp(cmd.Context(), cfg, nil)
	if err != nil {
		return err
	}
	defer closeStore()

	r, err := c.Score(args[0])
	if err != nil {
		return err
	}

	pterm.DefaultSection.Printfln("%s at %s", r.Job.Title, r.Job.Company)
	pterm.Printfln("Score:    %s (%s)", colorizeScore(r.Score), r.Category)
	pterm.Printfln("Signals:  %s", listText(r.Tags))
	pterm.Printfln("Salary:   %s", salaryText(r.Job.SalaryRange))
	pterm.Printfln("Apply:    %s", r.Job.ApplyURL)
	if r.Job.Description != "" {
		pterm.Println()
		pterm.Println(r.Job.Description)
	}
	return nil
}
