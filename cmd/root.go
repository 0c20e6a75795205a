/*
Package cmd implements the command-line interface of the runtime: serving
an agent, calling remote agents through the manager, and inspecting local
skills.
*/
package cmd

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/spindlework/a2a-runtime/pkg/logging"
)

/*
Embed a mini filesystem into the binary to hold the default config file.
It is written to the user's home directory on first run, so a developer
can easily override it.
*/
//go:embed cfg/*
var embedded embed.FS

var (
	projectName = "a2a-runtime"
	cfgFile     string
	verboseFlag bool

	rootCmd = &cobra.Command{
		Use:   "a2a-runtime",
		Short: "An Agent-to-Agent (A2A) protocol runtime",
		Long:  longRoot,
	}
)

/*
Execute is the main entry point for the CLI.
*/
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.json",
		"config file (default is $HOME/."+projectName+"/config.json)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verboseFlag,
		"verbose",
		"v",
		false,
		"enable debug logging",
	)
}

func initConfig() {
	level := log.InfoLevel
	if verboseFlag {
		level = log.DebugLevel
	}

	logging.Init(logging.Config{Level: level})

	if err := writeConfig(); err != nil {
		log.Fatal(err)
	}
}

/*
configPath resolves the agent config file: an explicitly passed path that
exists wins, otherwise the per-user config directory.
*/
func configPath() string {
	if cfgFile != "" && checkFileExists(cfgFile) {
		return cfgFile
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, "."+projectName, "config.json")
}

/*
writeConfig seeds the user's config directory with the embedded default
config, never overwriting an existing file.
*/
func writeConfig() (err error) {
	var (
		home, _ = os.UserHomeDir()
		fh      fs.File
		buf     bytes.Buffer
	)

	configDir := filepath.Join(home, "."+projectName)

	if !checkFileExists(configDir) {
		if err = os.MkdirAll(configDir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	fullPath := filepath.Join(configDir, "config.json")

	if checkFileExists(fullPath) {
		return nil
	}

	if fh, err = embedded.Open("cfg/config.json"); err != nil {
		return fmt.Errorf("failed to open embedded config file: %w", err)
	}
	defer fh.Close()

	if _, err = io.Copy(&buf, fh); err != nil {
		return fmt.Errorf("failed to read embedded config file: %w", err)
	}

	if err = os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	logging.Info("wrote default config file", "path", fullPath)
	return nil
}

func checkFileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !errors.Is(err, os.ErrNotExist)
}

var longRoot = `
a2a-runtime is a Go implementation of the Agent-to-Agent (A2A) protocol:
a JSON-RPC 2.0 server dispatcher, a streaming client, and a manager that
multiplexes tool calls across remote agents.
`
