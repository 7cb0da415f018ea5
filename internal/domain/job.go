package domain

type Mode string

const (
	ModeRemote Mode = "Remote"
	ModeHybrid Mode = "Hybrid"
	ModeOnsite Mode = "Onsite"
)

type Experience string

const (
	ExperienceFresher Experience = "Fresher"
	Experience0To1    Experience = "0-1"
	Experience1To3    Experience = "1-3"
	Experience3To5    Experience = "3-5"
)

type Source string

const (
	SourceLinkedIn Source = "LinkedIn"
	SourceNaukri   Source = "Naukri"
	SourceIndeed   Source = "Indeed"
)

// Locations is the fixed set of posting locations the shell offers in its filters.
var Locations = []string{
	"Bangalore",
	"Hyderabad",
	"Pune",
	"Chennai",
	"Mumbai",
	"Gurgaon",
	"Noida",
	"Remote",
}

var (
	Modes       = []Mode{ModeRemote, ModeHybrid, ModeOnsite}
	Experiences = []Experience{ExperienceFresher, Experience0To1, Experience1To3, Experience3To5}
	Sources     = []Source{SourceLinkedIn, SourceNaukri, SourceIndeed}
)

func (m Mode) Valid() bool {
	for _, v := range Modes {
		if v == m {
			return true
		}
	}
	return false
}

func (e Experience) Valid() bool {
	for _, v := range Experiences {
		if v == e {
			return true
		}
	}
	return false
}

func (s Source) Valid() bool {
	for _, v := range Sources {
		if v == s {
			return true
		}
	}
	return false
}

func ValidLocation(loc string) bool {
	for _, v := range Locations {
		if v == loc {
			return true
		}
	}
	return false
}

// Job is a single posting from the fixed dataset. Values are never mutated after load.
type Job struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Company       string     `json:"company"`
	Location      string     `json:"location"`
	Mode          Mode       `json:"mode"`
	Experience    Experience `json:"experience"`
	Skills        []string   `json:"skills"`
	SalaryRange   string     `json:"salaryRange"`
	PostedDaysAgo int        `json:"postedDaysAgo"`
	Source        Source     `json:"source"`
	ApplyURL      string     `json:"applyUrl"`
	Description   string     `json:"description"`
}
