package a2a

/*
AgentCard conveys the capabilities and metadata exposed by a remote agent.
It is published unwrapped at /.well-known/agent.json. If any security
scheme is listed, every non-discovery endpoint requires matching
credentials.
*/
type AgentCard struct {
	Name               string                `json:"name"`
	Description        string                `json:"description"`
	URL                string                `json:"url"`
	Version            string                `json:"version"`
	Capabilities       AgentCapabilities     `json:"capabilities"`
	DefaultInputModes  []string              `json:"defaultInputModes,omitempty"`
	DefaultOutputModes []string              `json:"defaultOutputModes,omitempty"`
	Skills             []AgentSkill          `json:"skills"`
	Provider           *AgentProvider        `json:"provider,omitempty"`
	IconURL            *string               `json:"iconUrl,omitempty"`
	DocumentationURL   *string               `json:"documentationUrl,omitempty"`
	SecuritySchemes    []SecurityScheme      `json:"securitySchemes,omitempty"`
	Security           []map[string][]string `json:"security,omitempty"`
}

type AgentCapabilities struct {
	Streaming              bool     `json:"streaming,omitempty"`
	PushNotifications      bool     `json:"pushNotifications,omitempty"`
	StateTransitionHistory bool     `json:"stateTransitionHistory,omitempty"`
	Extensions             []string `json:"extensions,omitempty"`
}

type AgentProvider struct {
	Organization string  `json:"organization"`
	URL          *string `json:"url,omitempty"`
}

type SecurityScheme struct {
	Type         string `json:"type"`
	Scheme       string `json:"scheme,omitempty"`
	BearerFormat string `json:"bearerFormat,omitempty"`
	Description  string `json:"description,omitempty"`
}

type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Examples    []string `json:"examples,omitempty"`
	InputModes  []string `json:"inputModes,omitempty"`
	OutputModes []string `json:"outputModes,omitempty"`
}

/*
RequiresAuth reports whether the card advertises any security scheme, in
which case all endpoints except the well-known card are gated.
*/
func (card AgentCard) RequiresAuth() bool {
	return len(card.SecuritySchemes) > 0
}
