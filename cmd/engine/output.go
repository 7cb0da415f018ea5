package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"jobnotify-engine/internal/domain"
	"jobnotify-engine/internal/rank"
	"jobnotify-engine/internal/salary"
)

// colorizeScore colours a score by its category tier.
func colorizeScore(score int) string {
	text := fmt.Sprintf("%d", score)
	switch rank.CategoryFor(score) {
	case rank.CategoryHigh:
		return pterm.Green(text)
	case rank.CategoryMedium:
		return pterm.LightGreen(text)
	case rank.CategoryLow:
		return pterm.Yellow(text)
	default:
		return pterm.Gray(text)
	}
}

func postedText(days int, now time.Time) string {
	if days <= 0 {
		return "today"
	}
	return humanize.RelTime(now.AddDate(0, 0, -days), now, "ago", "from now")
}

func salaryText(raw string) string {
	v := salary.ExtractSalaryValue(raw)
	if v <= 0 {
		return raw
	}
	return fmt.Sprintf("%s (≈%s)", raw, salary.Format(v))
}

func jobsTable(ranked []rank.Ranked, saved domain.SavedJobs, now time.Time) pterm.TableData {
	data := pterm.TableData{
		{"", "ID", "Title", "Company", "Location", "Mode", "Exp", "Salary", "Posted", "Source", "Score"},
	}
	for _, r := range ranked {
		mark := ""
		if saved.Has(r.Job.ID) {
			mark = "★"
		}
		data = append(data, []string{
			mark,
			r.Job.ID,
			r.Job.Title,
			r.Job.Company,
			r.Job.Location,
			string(r.Job.Mode),
			string(r.Job.Experience),
			salaryText(r.Job.SalaryRange),
			postedText(r.Job.PostedDaysAgo, now),
			string(r.Job.Source),
			colorizeScore(r.Score),
		})
	}
	return data
}

func renderJobs(ranked []rank.Ranked, saved domain.SavedJobs) error {
	if len(ranked) == 0 {
		pterm.Info.Println("No jobs match these filters.")
		return nil
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(jobsTable(ranked, saved, time.Now())).Srender()
	if err != nil {
		return err
	}
	fmt.Println(out)
	pterm.Printfln("%s jobs", humanize.Comma(int64(len(ranked))))
	return nil
}

func renderPreferences(s domain.Settings) {
	p, ok := s.Get()
	if !ok {
		pterm.Info.Println("No preferences saved yet. Every job scores 0 until you run `prefs set`.")
		return
	}
	modes := make([]string, len(p.PreferredMode))
	for i, m := range p.PreferredMode {
		modes[i] = string(m)
	}
	exp := string(p.ExperienceLevel)
	if exp == "" {
		exp = "any"
	}
	_ = pterm.DefaultTable.WithData(pterm.TableData{
		{"Role keywords", listText(p.RoleKeywords)},
		{"Locations", listText(p.PreferredLocations)},
		{"Modes", listText(modes)},
		{"Experience", exp},
		{"Skills", listText(p.Skills)},
		{"Min match score", fmt.Sprint(p.MinMatchScore)},
	}).Render()
}

func listText(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
