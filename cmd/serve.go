package cmd

import (
	"github.com/spf13/cobra"

	"github.com/spindlework/a2a-runtime/pkg/ai"
	"github.com/spindlework/a2a-runtime/pkg/service"
)

var (
	addrFlag      string
	urlFlag       string
	agentNameFlag string
	versionFlag   string
	tokenFlag     string
	filterFlag    bool

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve an echo agent",
		Long:  longServe,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := service.NewA2AServer(ai.NewEchoAdapter(agentNameFlag), service.Options{
				Addr:            addrFlag,
				URL:             urlFlag,
				Version:         versionFlag,
				BearerToken:     tokenFlag,
				FilterReasoning: filterFlag,
			})

			return srv.Start()
		},
	}
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&addrFlag, "addr", "a", ":3210", "Address to bind to")
	serveCmd.Flags().StringVar(&urlFlag, "url", "http://localhost:3210", "Public URL advertised on the agent card")
	serveCmd.Flags().StringVarP(&agentNameFlag, "name", "n", "Echo Agent", "Name for the agent")
	serveCmd.Flags().StringVar(&versionFlag, "agent-version", "0.1.0", "Version advertised on the agent card")
	serveCmd.Flags().StringVar(&tokenFlag, "token", "", "Bearer token; when set, all endpoints except the card require it")
	serveCmd.Flags().BoolVar(&filterFlag, "filter-reasoning", false, "Strip reasoning blocks from outbound text")
}

var longServe = `
Serve the builtin echo agent over the A2A protocol.

Examples:
  # Serve on the default port
  a2a-runtime serve

  # Serve with bearer auth and reasoning filtering
  a2a-runtime serve --token secret --filter-reasoning
`
