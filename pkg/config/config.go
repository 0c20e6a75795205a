package config

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/spf13/viper"
)

/*
File is the agent configuration document: a map of named servers, each of
which is either booted locally (boot) or connected to remotely (run), plus
an optional global environment merged under every server's own env.
*/
type File struct {
	A2AServers map[string]Server `mapstructure:"a2aServers" json:"a2aServers"`
	GlobalEnv  map[string]any    `mapstructure:"globalEnv" json:"globalEnv,omitempty"`
}

type Server struct {
	Boot *Boot `mapstructure:"boot" json:"boot,omitempty"`
	Run  *Run  `mapstructure:"run" json:"run,omitempty"`
}

type Boot struct {
	Command string         `mapstructure:"command" json:"command"`
	Args    []string       `mapstructure:"args" json:"args,omitempty"`
	Env     map[string]any `mapstructure:"env" json:"env,omitempty"`
}

type Run struct {
	URL    string `mapstructure:"url" json:"url"`
	Token  string `mapstructure:"token" json:"token,omitempty"`
	APIKey string `mapstructure:"api_key" json:"api_key,omitempty"`
}

/*
Load reads and parses a JSON agent config from disk.
*/
func Load(path string) (*File, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read agent config %s: %w", path, err)
	}

	return unmarshal(v)
}

/*
LoadBytes parses a JSON agent config from memory.
*/
func LoadBytes(data []byte) (*File, error) {
	v := viper.New()
	v.SetConfigType("json")

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to parse agent config: %w", err)
	}

	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*File, error) {
	var file File

	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("invalid agent config: %w", err)
	}

	return &file, nil
}

/*
FlattenValue renders a config env value as a string: booleans become
true/false, numbers decimal, everything else its default formatting.
*/
func FlattenValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

/*
MergedEnv flattens the global env and overlays the server's boot env on
top; per-server values win.
*/
func (server Server) MergedEnv(global map[string]any) map[string]string {
	merged := make(map[string]string, len(global))

	for key, value := range global {
		merged[key] = FlattenValue(value)
	}

	if server.Boot != nil {
		for key, value := range server.Boot.Env {
			merged[key] = FlattenValue(value)
		}
	}

	return merged
}
