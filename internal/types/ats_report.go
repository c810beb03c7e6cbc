package types

// Severity ranks an insight group for display.
type Severity string

// Severity levels, highest first.
const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// ATSBreakdown holds the seven sub-scores produced by the external scorer.
// Values are conventionally in [0,100] but that is not enforced.
type ATSBreakdown struct {
	SkillsMatch    float64 `json:"skillsMatch"`
	RoleRelevance  float64 `json:"roleRelevance"`
	Experience     float64 `json:"experience"`
	Education      float64 `json:"education"`
	ProjectsLinks  float64 `json:"projectsLinks"`
	LengthQuality  float64 `json:"lengthQuality"`
	ContactQuality float64 `json:"contactQuality"`
}

// ATSSectionStatus reports which sections the external scorer detected.
type ATSSectionStatus struct {
	HasSkills     bool `json:"hasSkills"`
	HasExperience bool `json:"hasExperience"`
	HasEducation  bool `json:"hasEducation"`
	HasProjects   bool `json:"hasProjects"`
	HasContact    bool `json:"hasContact"`
	HasLinks      bool `json:"hasLinks"`
}

// ResumeSummary is the contact block extracted by the external scorer.
type ResumeSummary struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Address  string `json:"address"`
}

// InsightGroup is a titled list of advice with a severity.
type InsightGroup struct {
	Title    string   `json:"title"`
	Severity Severity `json:"severity"`
	Items    []string `json:"items"`
}

// ATSReport is the opaque report returned by the external analysis service.
// Any field may be missing; consumers must treat zero values as "absent"
// and must never modify a received report.
type ATSReport struct {
	Success         *bool             `json:"success,omitempty"`
	ATSScore        float64           `json:"atsScore"`
	Filename        string            `json:"filename,omitempty"`
	Text            string            `json:"text"`
	Summary         ResumeSummary     `json:"summary"`
	WordCount       int               `json:"wordCount"`
	DetectedSkills  []string          `json:"detectedSkills"`
	MissingSections []string          `json:"missingSections"`
	Suggestions     []string          `json:"suggestions"`
	SectionStatus   *ATSSectionStatus `json:"sectionStatus,omitempty"`
	Breakdown       *ATSBreakdown     `json:"breakdown,omitempty"`
	KeywordsNeeded  []string          `json:"keywordsNeeded"`
	Insights        []InsightGroup    `json:"insights"`
	ResumeID        *int64            `json:"resumeId,omitempty"`
}
