package execflow

import (
	"strconv"
	"strings"
)

// GenerateFlowDescription produces a natural-language narrative of a
// graph's execution shape from its entry point, node set, decision points,
// and loops. Build does not call it: an unset FlowDescription becomes
// "No description available".
func GenerateFlowDescription(entry string, nodes []string, decisionPoints []DecisionPoint, loops []LoopStructure) string {
	var desc strings.Builder

	desc.WriteString("This graph starts at '")
	desc.WriteString(entry)
	desc.WriteString("' and flows through ")
	desc.WriteString(strconv.Itoa(len(nodes)))
	desc.WriteString(" nodes.\n\n")

	if len(decisionPoints) > 0 {
		desc.WriteString("Decision Points:\n")
		for _, dp := range decisionPoints {
			desc.WriteString("  - At '")
			desc.WriteString(dp.Node)
			desc.WriteString("': ")
			desc.WriteString(dp.Explanation)
			desc.WriteString("\n")
			for _, p := range dp.Paths {
				desc.WriteString("    → '")
				desc.WriteString(p.Target)
				desc.WriteString("' when ")
				desc.WriteString(p.When)
				desc.WriteString("\n")
			}
		}
		desc.WriteString("\n")
	}

	if len(loops) > 0 {
		desc.WriteString("Loop Structures:\n")
		for _, ls := range loops {
			desc.WriteString("  - ")
			desc.WriteString(ls.Name)
			desc.WriteString(": ")
			desc.WriteString(ls.Explanation)
			desc.WriteString(" (exits when: ")
			desc.WriteString(ls.ExitCondition)
			desc.WriteString(")\n")
		}
		desc.WriteString("\n")
	}

	var complexity string
	switch {
	case len(loops) == 0 && len(decisionPoints) == 0:
		complexity = "simple linear"
	case len(loops) == 0:
		complexity = "branching"
	case len(decisionPoints) == 0:
		complexity = "iterative"
	default:
		complexity = "complex (branching with loops)"
	}
	desc.WriteString("Overall pattern: ")
	desc.WriteString(complexity)
	desc.WriteString(" execution.\n")

	return desc.String()
}
