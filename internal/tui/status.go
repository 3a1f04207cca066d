package tui

import (
	"strings"

	"stacker.dev/stacker/internal/engine"
	"stacker.dev/stacker/internal/git"
	"stacker.dev/stacker/internal/tui/style"
)

func colorPublishState(state engine.PublishState) string {
	switch state {
	case engine.Published:
		return style.ColorGreen(state.String())
	case engine.Unpublished:
		return style.ColorYellow(state.String())
	default:
		return style.ColorDim(state.String())
	}
}

func shortOrNone(o git.ObjectName) string {
	if o == "" {
		return style.ColorDim("none")
	}
	return style.ColorObject(o.Short())
}

// RenderBranchStatus formats one line per tracked branch.
func RenderBranchStatus(statuses []engine.BranchStatus, current git.Branch) string {
	var b strings.Builder
	for _, s := range statuses {
		isCurrent := s.Branch == current
		marker := "◯"
		if isCurrent {
			marker = "◉"
		}
		b.WriteString(marker + " " + style.ColorBranchName(s.Branch.Name(), isCurrent))

		if s.Orphaned {
			b.WriteString("  " + style.ColorRed("branch deleted") + "\n")
			continue
		}

		switch {
		case !s.HasBase:
			b.WriteString("  " + style.ColorRed("no base"))
		case s.DanglingBase:
			b.WriteString("  on " + style.ColorRed(s.Base.Name()+" (deleted)"))
		default:
			b.WriteString("  on " + style.ColorBranchName(s.Base.Name(), false))
		}
		b.WriteString("  start " + shortOrNone(s.Start))
		b.WriteString("  " + colorPublishState(s.Publish))
		b.WriteString("\n")
	}
	return b.String()
}
