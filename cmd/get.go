package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spindlework/a2a-runtime/pkg/a2a"
	"github.com/spindlework/a2a-runtime/pkg/client"
	"github.com/spindlework/a2a-runtime/pkg/config"
)

var historyFlag int

var getCmd = &cobra.Command{
	Use:   "get <server> <taskId>",
	Short: "Fetch and render a task from a configured server",
	Long:  longGet,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := config.Load(configPath())
		if err != nil {
			return err
		}

		server, ok := file.A2AServers[args[0]]
		if !ok || server.Run == nil {
			return fmt.Errorf("no server %q in config", args[0])
		}

		c, err := client.New(cmd.Context(), client.Config{
			URL: server.Run.URL,
			Credentials: client.Credentials{
				BearerToken: server.Run.Token,
				APIKey:      server.Run.APIKey,
			},
		})
		if err != nil {
			return err
		}
		defer c.Close()

		params := a2a.TaskQueryParams{TaskIDParams: a2a.TaskIDParams{ID: args[1]}}
		if historyFlag > 0 {
			params.HistoryLength = &historyFlag
		}

		task, err := c.GetTask(cmd.Context(), params)
		if err != nil {
			return err
		}

		fmt.Println(task.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().IntVar(&historyFlag, "history", 0, "Number of history messages to include")
}

var longGet = `
Fetch a task by id from one of the servers in the config file and render
it, including its artifacts and recent history.

Examples:
  a2a-runtime get echo 3f6c2e1a-...
`
