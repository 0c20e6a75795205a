package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spindlework/a2a-runtime/pkg/a2a"
	"github.com/spindlework/a2a-runtime/pkg/logging"
)

// WellKnownPath is where every A2A agent publishes its card, unwrapped.
const WellKnownPath = "/.well-known/agent.json"

/*
FetchAgentCard retrieves the agent card from the well-known endpoint of
the given base URL. The discovery endpoint is never authenticated.
*/
func FetchAgentCard(ctx context.Context, httpClient *http.Client, baseURL string) (a2a.AgentCard, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	url := strings.TrimRight(baseURL, "/") + WellKnownPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return a2a.AgentCard{}, fmt.Errorf("failed to create card request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return a2a.AgentCard{}, fmt.Errorf("failed to fetch agent card: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return a2a.AgentCard{}, fmt.Errorf("unexpected status %d fetching agent card from %s", resp.StatusCode, url)
	}

	var card a2a.AgentCard

	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		return a2a.AgentCard{}, fmt.Errorf("failed to decode agent card: %w", err)
	}

	return card, nil
}

/*
AwaitAgentCard polls the well-known endpoint until the card becomes
available, sleeping delay between attempts. Used when a colocated server
process was just spawned and needs time to come up.
*/
func AwaitAgentCard(ctx context.Context, httpClient *http.Client, baseURL string, attempts int, delay time.Duration) (a2a.AgentCard, error) {
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		card, err := FetchAgentCard(ctx, httpClient, baseURL)
		if err == nil {
			return card, nil
		}

		lastErr = err
		logging.Debug("agent card not ready", "url", baseURL, "attempt", attempt+1, "error", err)

		select {
		case <-ctx.Done():
			return a2a.AgentCard{}, ctx.Err()
		case <-time.After(delay):
		}
	}

	return a2a.AgentCard{}, fmt.Errorf("agent card unavailable after %d attempts: %w", attempts, lastErr)
}
