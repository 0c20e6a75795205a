package skills

import (
	"fmt"
	"strings"

	"github.com/spindlework/a2a-runtime/pkg/tools"
)

// Tool names exposed by the provider.
const (
	ToolActivate   = "agent-skill-activate"
	ToolDeactivate = "agent-skill-deactivate"
	ToolListActive = "agent-skills-list-active"
)

/*
ToolProvider exposes skill activation as remotely invokable tools.
OnActivated, when set, receives each newly activated skill so the caller
can inject its body into subsequent prompts.
*/
type ToolProvider struct {
	Loader      *Loader
	OnActivated func(skill *Skill)
}

func NewToolProvider(loader *Loader) *ToolProvider {
	return &ToolProvider{Loader: loader}
}

/*
Tools lists the three skill tools.
*/
func (provider *ToolProvider) Tools() []tools.Tool {
	return []tools.Tool{
		tools.NewStringParamTool(
			ToolActivate,
			"Activate a skill by name, making its instructions available.",
			tools.TypeFunction,
			map[string]string{"skill_name": "Name of the skill to activate."},
			"skill_name",
		),
		tools.NewStringParamTool(
			ToolDeactivate,
			"Deactivate a previously activated skill.",
			tools.TypeFunction,
			map[string]string{"skill_name": "Name of the skill to deactivate."},
			"skill_name",
		),
		tools.NewStringParamTool(
			ToolListActive,
			"List the names of the currently active skills.",
			tools.TypeFunction,
			nil,
		),
	}
}

/*
HandleToolCall dispatches a tool call to the skill state machine and
returns a human-readable result.
*/
func (provider *ToolProvider) HandleToolCall(call tools.ToolCall) (string, error) {
	switch call.Name {
	case ToolActivate:
		name, err := skillNameArgument(call)
		if err != nil {
			return "", err
		}
		return provider.activate(name)
	case ToolDeactivate:
		name, err := skillNameArgument(call)
		if err != nil {
			return "", err
		}
		return provider.deactivate(name)
	case ToolListActive:
		return strings.Join(provider.Loader.ActivatedNames(), "\n"), nil
	}

	return "", fmt.Errorf("unknown tool: %s", call.Name)
}

func (provider *ToolProvider) activate(name string) (string, error) {
	skill, err := provider.Loader.ActivateByName(name)
	if err != nil {
		return "", err
	}

	if provider.OnActivated != nil {
		provider.OnActivated(skill)
	}

	return fmt.Sprintf("Activated skill %q.", skill.Name), nil
}

func (provider *ToolProvider) deactivate(name string) (string, error) {
	if !provider.Loader.IsActivated(name) {
		return "", fmt.Errorf("%w: %s", ErrSkillNotFound, name)
	}

	provider.Loader.Deactivate(name)
	return fmt.Sprintf("Deactivated skill %q.", name), nil
}

func skillNameArgument(call tools.ToolCall) (string, error) {
	arguments, ok := call.Arguments.(map[string]any)
	if !ok {
		return "", fmt.Errorf("tool %s requires an arguments object", call.Name)
	}

	name, ok := arguments["skill_name"].(string)
	if !ok || name == "" {
		return "", fmt.Errorf("tool %s requires a skill_name argument", call.Name)
	}

	return name, nil
}
