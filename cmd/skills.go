package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/spindlework/a2a-runtime/pkg/skills"
)

var skillRootFlag string

var (
	skillNameStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	skillDescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List the skills available under a skill root",
	Long:  longSkills,
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := skills.NewLoader(skillRootFlag)

		metadata, err := loader.LoadMetadata()
		if err != nil {
			return err
		}

		if len(metadata) == 0 {
			fmt.Println("no skills found under", skillRootFlag)
			return nil
		}

		for _, skill := range metadata {
			fmt.Println(skillNameStyle.Render(skill.Name))
			fmt.Println(skillDescStyle.Render(skill.Description))
			fmt.Println()
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(skillsCmd)

	skillsCmd.Flags().StringVar(&skillRootFlag, "root", "skills", "Directory containing skill subdirectories")
}

var longSkills = `
List the skills discoverable under a root directory. Each skill lives in
its own subdirectory holding a SKILL.md file with YAML frontmatter.

Examples:
  a2a-runtime skills --root ./skills
`
