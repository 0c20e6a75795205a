package catalog

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spindlework/a2a-runtime/pkg/a2a"
)

func TestRegistryAddAndGet(t *testing.T) {
	registry := NewRegistry()

	registry.AddAgent(a2a.AgentCard{Name: "Echo Agent", URL: "http://localhost:3210"})

	card, ok := registry.GetAgent("Echo Agent")
	assert.True(t, ok)
	assert.Equal(t, "http://localhost:3210", card.URL)

	_, ok = registry.GetAgent("Unknown Agent")
	assert.False(t, ok)
}

func TestRegistryReplaceByName(t *testing.T) {
	registry := NewRegistry()

	registry.AddAgent(a2a.AgentCard{Name: "Echo Agent", Version: "0.1.0"})
	registry.AddAgent(a2a.AgentCard{Name: "Echo Agent", Version: "0.2.0"})

	card, _ := registry.GetAgent("Echo Agent")
	assert.Equal(t, "0.2.0", card.Version)
	assert.Len(t, registry.GetAgents(), 1)
}

func TestRegistryGetAgents(t *testing.T) {
	registry := NewRegistry()

	registry.AddAgent(a2a.AgentCard{Name: "One"})
	registry.AddAgent(a2a.AgentCard{Name: "Two"})

	cards := registry.GetAgents()
	assert.Len(t, cards, 2)

	names := map[string]bool{}
	for _, card := range cards {
		names[card.Name] = true
	}
	assert.True(t, names["One"])
	assert.True(t, names["Two"])
}

func TestRegistryConcurrentAccess(t *testing.T) {
	registry := NewRegistry()

	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			registry.AddAgent(a2a.AgentCard{Name: "Echo Agent"})
		}()

		go func() {
			defer wg.Done()
			registry.GetAgents()
		}()
	}

	wg.Wait()

	_, ok := registry.GetAgent("Echo Agent")
	assert.True(t, ok)
}
