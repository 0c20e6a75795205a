package a2a

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

/*
String renders the task for terminal output.
*/
func (task *Task) String() string {
	var sb strings.Builder

	bullet := "│ "

	sb.WriteString(headerStyle.Render("Task") + "\n")
	sb.WriteString(bullet + labelStyle.Render("ID: ") + valueStyle.Render(task.ID) + "\n")
	sb.WriteString(bullet + labelStyle.Render("Context: ") + valueStyle.Render(task.ContextID) + "\n")
	sb.WriteString(bullet + labelStyle.Render("State: ") + valueStyle.Render(string(task.Status.State)) + "\n")

	if task.Status.Timestamp != "" {
		sb.WriteString(bullet + labelStyle.Render("Updated: ") + valueStyle.Render(task.Status.Timestamp) + "\n")
	}

	if task.Status.Message != nil {
		sb.WriteString(bullet + labelStyle.Render("Message: ") + valueStyle.Render(task.Status.Message.String()) + "\n")
	}

	for i, artifact := range task.Artifacts {
		name := artifact.ArtifactID
		if artifact.Name != nil {
			name = *artifact.Name
		}

		sb.WriteString(bullet + labelStyle.Render(fmt.Sprintf("Artifact %d: ", i+1)) + valueStyle.Render(name) + "\n")

		for _, part := range artifact.Parts {
			if part.Kind == PartKindText {
				sb.WriteString(bullet + "  " + valueStyle.Render(part.Text) + "\n")
			}
		}
	}

	return sb.String()
}

/*
ParseTimestamp parses a wire timestamp back into a time value, for callers
that need to compare or sort statuses.
*/
func ParseTimestamp(ts string) (time.Time, error) {
	return time.Parse(time.RFC3339, ts)
}
