package tools

// Type tags carried on tool definitions.
const (
	TypeA2AAgent = "a2aAgent"
	TypeFunction = "function"
)

/*
ToolCall is an opaque tool invocation: a tool name plus free-form
arguments, usually a JSON object.
*/
type ToolCall struct {
	Name      string `json:"name"`
	Arguments any    `json:"arguments"`
}

/*
Tool describes a remotely invokable tool to a caller that plans tool use.
*/
type Tool struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
	Parameters  Parameters `json:"parameters"`
}

type Parameters struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

/*
NewStringParamTool builds a tool definition with a flat set of required
string parameters, which covers every tool this runtime exposes.
*/
func NewStringParamTool(name, description, typeTag string, params map[string]string, required ...string) Tool {
	properties := make(map[string]Property, len(params))

	for param, desc := range params {
		properties[param] = Property{Type: "string", Description: desc}
	}

	return Tool{
		Name:        name,
		Description: description,
		Type:        typeTag,
		Parameters: Parameters{
			Type:       "object",
			Properties: properties,
			Required:   required,
		},
	}
}
