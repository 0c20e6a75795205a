package a2a

import (
	"regexp"
	"strings"
)

// reasoningTags are the block names stripped by the reasoning filter. Go's
// regexp has no backreferences, so each tag gets its own open/close
// pattern rather than a single \1-matched alternation.
var reasoningTags = []string{"think", "redacted_reasoning", "reasoning", "thinking"}

var reasoningPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(reasoningTags))

	for _, tag := range reasoningTags {
		patterns = append(patterns, regexp.MustCompile(
			`(?is)<`+tag+`[^>]*>.*?</`+tag+`>`,
		))
	}

	return patterns
}()

/*
StripReasoning removes reasoning blocks (<think>…</think> and friends,
case-insensitive, spanning newlines) from text. Text without such blocks
passes through unchanged.
*/
func StripReasoning(text string) string {
	for _, pattern := range reasoningPatterns {
		text = pattern.ReplaceAllString(text, "")
	}

	return text
}

/*
FilterMessage strips reasoning blocks from the text parts of a message.
Non-text parts, metadata, ids and roles pass through untouched. Text parts
left empty by the filter are dropped.
*/
func FilterMessage(msg Message) Message {
	parts := make([]Part, 0, len(msg.Parts))

	for _, part := range msg.Parts {
		if part.Kind != PartKindText {
			parts = append(parts, part)
			continue
		}

		filtered := StripReasoning(part.Text)

		if strings.TrimSpace(filtered) == "" && strings.TrimSpace(part.Text) != "" {
			continue
		}

		part.Text = filtered
		parts = append(parts, part)
	}

	msg.Parts = parts
	return msg
}

/*
FilterArtifact strips reasoning blocks from the text parts of an artifact.
*/
func FilterArtifact(artifact Artifact) Artifact {
	parts := make([]Part, len(artifact.Parts))

	for i, part := range artifact.Parts {
		if part.Kind == PartKindText {
			part.Text = StripReasoning(part.Text)
		}
		parts[i] = part
	}

	artifact.Parts = parts
	return artifact
}

/*
FilterTask strips reasoning blocks from a task's status message, artifacts
and history before the task leaves the server.
*/
func FilterTask(task Task) Task {
	if task.Status.Message != nil {
		filtered := FilterMessage(*task.Status.Message)
		task.Status.Message = &filtered
	}

	if len(task.Artifacts) > 0 {
		artifacts := make([]Artifact, len(task.Artifacts))
		for i, artifact := range task.Artifacts {
			artifacts[i] = FilterArtifact(artifact)
		}
		task.Artifacts = artifacts
	}

	if len(task.History) > 0 {
		history := make([]Message, len(task.History))
		for i, msg := range task.History {
			history[i] = FilterMessage(msg)
		}
		task.History = history
	}

	return task
}
