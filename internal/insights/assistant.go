package insights

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/scoring"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// maxKeywordsShown is how many needed keywords the assistant lists.
	maxKeywordsShown = 5
	noneMissing      = "None"
	keywordsCovered  = "Covered"
)

// ReportDigest is the short ATS summary shown at the top of the assistant.
type ReportDigest struct {
	Score          float64      `json:"score"`
	Band           scoring.Band `json:"band"`
	Missing        string       `json:"missing"`
	KeywordsNeeded string       `json:"keywordsNeeded"`
}

// Panel is the full assistant view for one builder state and the last report.
type Panel struct {
	RuleSetVersion string        `json:"ruleSetVersion"`
	Report         *ReportDigest `json:"report,omitempty"`
	Insights       []string      `json:"insights"`
	Advice         []string      `json:"advice"`
	BulletExamples [2]string     `json:"bulletExamples"`
}

// Assistant builds the assistant panel. report may be nil.
func Assistant(report *types.ATSReport, state types.BuilderState) Panel {
	p := Panel{
		RuleSetVersion: RuleSetVersion,
		Insights:       Derive(state),
		Advice:         CombineAdvice(report, state),
		BulletExamples: BulletExamples(state),
	}
	if report != nil {
		p.Report = digest(report)
	}
	return p
}

func digest(report *types.ATSReport) *ReportDigest {
	missing := strings.Join(report.MissingSections, ", ")
	if missing == "" {
		missing = noneMissing
	}
	keywords := strings.Join(report.KeywordsNeeded[:min(len(report.KeywordsNeeded), maxKeywordsShown)], ", ")
	if keywords == "" {
		keywords = keywordsCovered
	}
	return &ReportDigest{
		Score:          report.ATSScore,
		Band:           scoring.Classify(report.ATSScore),
		Missing:        missing,
		KeywordsNeeded: keywords,
	}
}
