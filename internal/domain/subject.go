package domain

import "sort"

// Subject is a canonical academic department key derived from a course prefix.
type Subject string

// Canonical subject values.
const (
	SubjectBiomedicalEng      Subject = "biomedical-eng"
	SubjectComputerScience    Subject = "computer-science"
	SubjectDataScience        Subject = "data-science"
	SubjectEconomics          Subject = "economics"
	SubjectElectricalComputer Subject = "electrical-computer-eng"
	SubjectEngCore            Subject = "eng-core"
	SubjectMathStatistics     Subject = "mathematics-statistics"
	SubjectMechanicalEng      Subject = "mechanical-eng"
)

// SubjectPrefixLen is the length of the subject prefix in a course identifier,
// e.g. "CASCS" in "CASCS111".
const SubjectPrefixLen = 5

// subjectByPrefix is the canonical mapping table from course prefix to subject.
// It is versioned data: extend it here, never infer subjects elsewhere.
var subjectByPrefix = map[string]Subject{
	"ENGBE": SubjectBiomedicalEng,
	"CASCS": SubjectComputerScience,
	"CDSDS": SubjectDataScience,
	"CASEC": SubjectEconomics,
	"ENGEC": SubjectElectricalComputer,
	"ENGEK": SubjectEngCore,
	"CASMA": SubjectMathStatistics,
	"ENGME": SubjectMechanicalEng,
}

// ResolveSubject maps a course identifier to its canonical subject by looking
// up the first SubjectPrefixLen characters. The second return is false when
// the identifier is too short or the prefix is not in the mapping table.
func ResolveSubject(courseID string) (Subject, bool) {
	if len(courseID) < SubjectPrefixLen {
		return "", false
	}
	subject, ok := subjectByPrefix[courseID[:SubjectPrefixLen]]
	return subject, ok
}

// IsValidSubject checks whether the given value is a canonical subject.
func IsValidSubject(s Subject) bool {
	for _, v := range subjectByPrefix {
		if v == s {
			return true
		}
	}
	return false
}

// SubjectEntry pairs a course prefix with its canonical subject.
type SubjectEntry struct {
	Prefix  string  `json:"prefix"`
	Subject Subject `json:"subject"`
}

// Subjects returns the full mapping table, sorted by prefix for stable output.
func Subjects() []SubjectEntry {
	entries := make([]SubjectEntry, 0, len(subjectByPrefix))
	for prefix, subject := range subjectByPrefix {
		entries = append(entries, SubjectEntry{Prefix: prefix, Subject: subject})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Prefix < entries[j].Prefix })
	return entries
}
