package salary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSalaryValue(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"10–18 LPA", 18},
		{"10-18 LPA", 18},
		{"3.5 – 6.5 lpa", 6.5},
		{"12 LPA", 12},
		{"₹25k–₹40k/month", 4.8},
		{"₹15k - ₹25k / month", 3},
		{"₹30k/month", 3.6},
		{"", 0},
		{"Competitive", 0},
		{"Not disclosed", 0},
		{"₹k–₹k/month", 0},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, ExtractSalaryValue(c.in), 1e-9, "ExtractSalaryValue(%q)", c.in)
	}
}

func TestExtractSalaryValue_NoDigitsIsZero(t *testing.T) {
	for _, s := range []string{"LPA", "–", "₹k/month", "salary: TBD", "🙂"} {
		assert.Zero(t, ExtractSalaryValue(s), "input %q", s)
	}
}

func TestExtractSalaryValue_MonthlyBelowAnnual(t *testing.T) {
	// internship stipends must sort below full-time annual ranges
	assert.Less(t, ExtractSalaryValue("₹25k–₹40k/month"), ExtractSalaryValue("3–5 LPA"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "18.0 LPA", Format(18))
	assert.Equal(t, "4.8 LPA", Format(4.8))
	assert.Equal(t, "n/a", Format(0))
}
