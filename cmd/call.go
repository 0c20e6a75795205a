package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spindlework/a2a-runtime/pkg/config"
	"github.com/spindlework/a2a-runtime/pkg/manager"
	"github.com/spindlework/a2a-runtime/pkg/tools"
)

var callCmd = &cobra.Command{
	Use:   "call <agent> <instructions...>",
	Short: "Send instructions to a configured agent",
	Long:  longCall,
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := config.Load(configPath())
		if err != nil {
			return err
		}

		mgr := manager.NewFromConfig(cmd.Context(), file)
		defer mgr.Close()

		responses := mgr.AgentCall(cmd.Context(), tools.ToolCall{
			Name: args[0],
			Arguments: map[string]any{
				"instructions": strings.Join(args[1:], " "),
			},
		})

		if len(responses) == 0 {
			return fmt.Errorf("no response from agent %q", args[0])
		}

		for _, response := range responses {
			if response.Content != "" {
				fmt.Println(response.Content)
			}

			for _, image := range response.Images {
				fmt.Printf("[image %s, %d bytes]\n", image.Name, len(image.Bytes))
			}

			for _, file := range response.Files {
				if file.URL != "" {
					fmt.Printf("[file %s -> %s]\n", file.Name, file.URL)
					continue
				}
				fmt.Printf("[file %s, %d bytes]\n", file.Name, len(file.Data))
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(callCmd)
}

var longCall = `
Call an agent by the name on its agent card, routing through the servers
listed in the config file.

Examples:
  a2a-runtime call "Echo Agent" say hello
`
