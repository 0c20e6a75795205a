package a2a

import "github.com/google/uuid"

/*
Artifact is an additive product of a task: text, files or opaque data
emitted by the agent while the task runs.
*/
type Artifact struct {
	ArtifactID  string         `json:"artifactId"`
	Parts       []Part         `json:"parts"`
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Extensions  []string       `json:"extensions,omitempty"`
}

func NewArtifact(name string, parts ...Part) Artifact {
	artifact := Artifact{
		ArtifactID: uuid.NewString(),
		Parts:      parts,
	}

	if name != "" {
		artifact.Name = &name
	}

	return artifact
}
