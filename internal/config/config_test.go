package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
[server]
http_port = 8080

[llm]
url = "http://localhost:1234"

[payments]
url = "http://localhost:2345"

[messaging]
url = "http://localhost:3456"

[auth]
jwt_secret = "secret"
token_ttl = 60

[[auth.operators]]
username = "admin"
password_hash = "$2a$10$hash"

[conversation]
max_tool_rounds = 5
history_limit = 40
`

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", minimalConfig)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5, cfg.Conversation.MaxToolRounds)
	require.Len(t, cfg.Auth.Operators, 1)
	assert.Equal(t, "admin", cfg.Auth.Operators[0].Username)
}

func TestLoadConfigMissingSecret(t *testing.T) {
	content := `
[server]
http_port = 8080
[llm]
url = "http://localhost:1234"
[payments]
url = "http://localhost:2345"
[messaging]
url = "http://localhost:3456"
`
	path := writeFile(t, t.TempDir(), "config.toml", content)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestLoadPrompt(t *testing.T) {
	path := writeFile(t, t.TempDir(), "customer.yaml", `
role: customer
system: |
  You are the assistant.
`)

	prompt, err := LoadPrompt(path)
	require.NoError(t, err)
	assert.Equal(t, "customer", prompt.Role)
	assert.Contains(t, prompt.System, "You are the assistant.")
}

func TestLoadSeedRoutes(t *testing.T) {
	path := writeFile(t, t.TempDir(), "routes.yaml", `
routes:
  - origin: Nairobi
    destination: Kisumu
    departure_time: 2025-09-01T08:00:00+03:00
    price: 1500
    capacity: 40
    bus_class: business
    stops: [Naivasha, Nakuru]
`)

	routes, err := LoadSeedRoutes(path)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, "Nairobi", routes[0].Origin)
	assert.Equal(t, domain.ClassBusiness, routes[0].BusClass)
	assert.Equal(t, []string{"Naivasha", "Nakuru"}, routes[0].Stops)
}

func TestLoadSeedRoutesMissingFileIsEmpty(t *testing.T) {
	routes, err := LoadSeedRoutes(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, routes)
}
