package exam

import "strings"

// Section is a named subgroup of questions with its own target count.
type Section struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Profile holds the canonical defaults for a recognized exam. ID is empty
// for the generic fallback.
type Profile struct {
	ID              string
	DurationMinutes int
	TotalQuestions  int
	Sections        []Section
}

const TNPSCGroupIV = "tnpsc-group-iv"

// detectionRule matches when, for every alternative group in allOf, at least
// one of the group's substrings is present in the lowercased exam name.
type detectionRule struct {
	id    string
	allOf [][]string
}

var groupIVSpellings = []string{"group iv", "group 4", "group-iv", "group-4"}

var detectionRules = []detectionRule{
	{id: TNPSCGroupIV, allOf: [][]string{{"tnpsc"}, groupIVSpellings}},
	{id: TNPSCGroupIV, allOf: [][]string{{"tamil nadu"}, groupIVSpellings}},
}

var profiles = map[string]Profile{
	TNPSCGroupIV: {
		ID:              TNPSCGroupIV,
		DurationMinutes: 180,
		TotalQuestions:  200,
		Sections: []Section{
			{Name: "Language", Count: 100},
			{Name: "General Studies", Count: 75},
			{Name: "Aptitude", Count: 25},
		},
	},
}

var fallbackProfile = Profile{
	DurationMinutes: 60,
	TotalQuestions:  50,
	Sections: []Section{
		{Name: "General Knowledge", Count: 20},
		{Name: "Aptitude", Count: 15},
		{Name: "Reasoning", Count: 15},
	},
}

// sourceDocs maps a recognized exam to reference question papers used to
// seed the style corpus.
var sourceDocs = map[string][]string{
	TNPSCGroupIV: {
		"https://www.tnpsc.gov.in/Document/OldQuestionPaper/2022_Group4_GeneralStudies.pdf",
		"https://www.tnpsc.gov.in/Document/OldQuestionPaper/2019_Group4_GeneralStudies.pdf",
		"https://www.tnpsc.gov.in/Document/OldQuestionPaper/2018_Group4_GeneralTamil.pdf",
	},
}

// Detect maps a free-text exam name to a known exam identifier, or "" when
// the name matches no rule. Matching is case-insensitive and order-independent
// on the required substrings.
func Detect(examName string) string {
	name := strings.ToLower(examName)
	for _, rule := range detectionRules {
		if matchesAll(name, rule.allOf) {
			return rule.id
		}
	}
	return ""
}

func matchesAll(name string, allOf [][]string) bool {
	for _, alternatives := range allOf {
		matched := false
		for _, sub := range alternatives {
			if strings.Contains(name, sub) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// Resolve returns the canonical profile for a recognized exam name, or the
// generic fallback. It never fails; an unknown name is a routing decision,
// not an error.
func Resolve(examName string) Profile {
	if id := Detect(examName); id != "" {
		return copyProfile(profiles[id])
	}
	return copyProfile(fallbackProfile)
}

// SourceDocs returns the reference document URLs for a recognized exam
// identifier. Unrecognized identifiers have no sources.
func SourceDocs(id string) []string {
	return sourceDocs[id]
}

func copyProfile(p Profile) Profile {
	sections := make([]Section, len(p.Sections))
	copy(sections, p.Sections)
	p.Sections = sections
	return p
}
