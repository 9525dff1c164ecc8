package pipeline

import (
	"fmt"
	"strings"
)

const divider = "============================================================"

// Summary renders a human-readable report of a finished run for the CLI.
func Summary(state *State) string {
	var b strings.Builder

	b.WriteString(divider + "\n")
	b.WriteString("JOB MATCHER - RESULTS SUMMARY\n")
	b.WriteString(divider + "\n")

	if profile := state.Profile; profile != nil {
		fmt.Fprintf(&b, "\nCandidate: %s\n", profile.Contact.Name)
		fmt.Fprintf(&b, "Experience: %d years\n", profile.YearsOfExperience)
		fmt.Fprintf(&b, "Target roles: %s\n", strings.Join(headList(profile.TargetRoles, 3), ", "))
	}

	fmt.Fprintf(&b, "\nJobs analyzed: %d\n", len(state.Matches))

	if len(state.TopMatches) > 0 {
		b.WriteString("\nTop matches:\n")
		top := state.TopMatches
		if len(top) > 5 {
			top = top[:5]
		}
		for i, match := range top {
			fmt.Fprintf(&b, "\n%d. %s\n", i+1, match.Title)
			fmt.Fprintf(&b, "   %s | %s\n", match.Company, match.Location)
			fmt.Fprintf(&b, "   Match: [%s] %.0f%%\n", scoreBar(match.OverallScore), match.OverallScore*100)
			if len(match.MatchingSkills) > 0 {
				fmt.Fprintf(&b, "   Skills: %s\n", strings.Join(headList(match.MatchingSkills, 3), ", "))
			}
			if len(match.MissingSkills) > 0 {
				fmt.Fprintf(&b, "   Gaps: %s\n", strings.Join(headList(match.MissingSkills, 3), ", "))
			}
		}
	}

	if g := state.Guidance; g != nil {
		b.WriteString("\n" + divider + "\n")
		b.WriteString("CAREER GUIDANCE\n")
		b.WriteString(divider + "\n")

		writeList(&b, "Skill gaps to address", g.SkillGaps, 5)
		writeList(&b, "Resume improvements", g.ResumeImprovements, 3)
		writeList(&b, "Career paths to consider", g.CareerPaths, 3)

		if g.SalaryInsights != "" {
			fmt.Fprintf(&b, "\nSalary insights:\n   %s\n", g.SalaryInsights)
		}
	}

	if len(state.Errors) > 0 {
		fmt.Fprintf(&b, "\nWarnings: %d issues encountered\n", len(state.Errors))
	}

	b.WriteString("\n" + divider + "\n")

	return b.String()
}

func writeList(b *strings.Builder, title string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, item := range headList(items, limit) {
		fmt.Fprintf(b, "   - %s\n", item)
	}
}

func scoreBar(score float64) string {
	filled := int(score * 10)
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("#", filled) + strings.Repeat("-", 10-filled)
}

func headList(list []string, n int) []string {
	if len(list) <= n {
		return list
	}
	return list[:n]
}
