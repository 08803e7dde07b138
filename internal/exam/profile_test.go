package exam

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		examName string
		expected string
	}{
		{"canonical name", "TNPSC Group IV", TNPSCGroupIV},
		{"arabic numeral", "tnpsc group 4 exam", TNPSCGroupIV},
		{"hyphenated", "TNPSC Group-IV Recruitment", TNPSCGroupIV},
		{"state name variant", "Tamil Nadu Group 4", TNPSCGroupIV},
		{"order independent", "Group IV exam conducted by TNPSC", TNPSCGroupIV},
		{"organization alone is not enough", "TNPSC Group II", ""},
		{"group alone is not enough", "UPSC Group 4", ""},
		{"unknown exam", "Unknown Exam", ""},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Detect(tc.examName))
		})
	}
}

func TestResolve_KnownExam(t *testing.T) {
	p := Resolve("TNPSC Group IV")

	assert.Equal(t, TNPSCGroupIV, p.ID)
	assert.Equal(t, 180, p.DurationMinutes)
	assert.Equal(t, 200, p.TotalQuestions)
	assert.Equal(t, []Section{
		{Name: "Language", Count: 100},
		{Name: "General Studies", Count: 75},
		{Name: "Aptitude", Count: 25},
	}, p.Sections)
}

func TestResolve_Fallback(t *testing.T) {
	p := Resolve("Unknown Exam")

	assert.Empty(t, p.ID)
	assert.Equal(t, 60, p.DurationMinutes)
	assert.Equal(t, 50, p.TotalQuestions)

	sum := 0
	for _, s := range p.Sections {
		sum += s.Count
	}
	assert.Equal(t, p.TotalQuestions, sum)
}

func TestResolve_ReturnsCopy(t *testing.T) {
	a := Resolve("TNPSC Group IV")
	a.Sections[0].Count = 1

	b := Resolve("TNPSC Group IV")
	assert.Equal(t, 100, b.Sections[0].Count)
}

func TestSourceDocs(t *testing.T) {
	assert.NotEmpty(t, SourceDocs(TNPSCGroupIV))
	assert.Empty(t, SourceDocs(""))
	assert.Empty(t, SourceDocs("some-other-exam"))
}
