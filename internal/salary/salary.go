// Package salary turns the free-text salary ranges of the job dataset into a
// number that can be sorted on. The value is approximate and never shown as-is.
package salary

import (
	"fmt"
	"regexp"
	"strconv"
)

// Ranges may be written with a hyphen, en dash or em dash.
const dash = `\s*[-–—]\s*`

var (
	// "10–18 LPA"
	annualRangeRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)` + dash + `(\d+(?:\.\d+)?)\s*LPA`)
	// "12 LPA"
	annualSingleRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*LPA`)
	// "₹25k–₹40k/month"
	monthlyRangeRe = regexp.MustCompile(`(?i)₹?\s*(\d+(?:\.\d+)?)\s*k` + dash + `₹?\s*(\d+(?:\.\d+)?)\s*k\s*/\s*month`)
	// "₹30k/month"
	monthlySingleRe = regexp.MustCompile(`(?i)₹?\s*(\d+(?:\.\d+)?)\s*k\s*/\s*month`)
)

// ExtractSalaryValue returns the upper bound of a salary range in lakhs per annum.
// Monthly ranges in thousands are converted with k*12/100. Unrecognised text gives 0.
func ExtractSalaryValue(text string) float64 {
	if m := monthlyRangeRe.FindStringSubmatch(text); m != nil {
		return monthlyToLPA(parse(m[2]))
	}
	if m := monthlySingleRe.FindStringSubmatch(text); m != nil {
		return monthlyToLPA(parse(m[1]))
	}
	if m := annualRangeRe.FindStringSubmatch(text); m != nil {
		return parse(m[2])
	}
	if m := annualSingleRe.FindStringSubmatch(text); m != nil {
		return parse(m[1])
	}
	return 0
}

func monthlyToLPA(k float64) float64 {
	return k * 12 / 100
}

func parse(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Format renders a normalised value for terminal output.
func Format(lpa float64) string {
	if lpa <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f LPA", lpa)
}
