package insights

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// actionVerbs is indexed by skill count, so its order is part of the output.
var actionVerbs = [...]string{"Built", "Designed", "Optimized", "Automated", "Delivered", "Reduced", "Improved", "Launched"}

const (
	// maxSampleSkills is how many leading skills the first example mentions.
	maxSampleSkills = 3
	// fallbackSkills replaces an empty skill sample.
	fallbackSkills = "modern stack"
)

// BulletExamples returns two example bullets derived only from state.
// The verbs are chosen by len(skills) mod 8 and (len(skills)+2) mod 8.
func BulletExamples(state types.BuilderState) [2]string {
	n := len(state.Skills)

	sample := strings.Join(state.Skills[:min(n, maxSampleSkills)], ", ")
	if sample == "" {
		sample = fallbackSkills
	}

	return [2]string{
		fmt.Sprintf("%s a feature using %s that improved reliability by 20%%.", actionVerbs[n%len(actionVerbs)], sample),
		fmt.Sprintf("%s deployment pipeline reducing release time by 30%%.", actionVerbs[(n+2)%len(actionVerbs)]),
	}
}
