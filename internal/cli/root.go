// Package cli implements the promptmate CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/promptmate/internal/config"
	"github.com/rcliao/promptmate/internal/logging"
)

var (
	dbPath     string
	configPath string
	logLevel   string
	formatFlag string

	cfg    config.Config
	logger = zap.NewNop()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "promptmate",
	Short: "Business prompt builder",
	Long: "Assemble a clear, repeatable prompt from persona, task, goal, tone and output format blocks. " +
		"The draft, custom formats, favorites and saved prompts live in a local SQLite file.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $PROMPTMATE_DB, config db_path or ~/.promptmate/promptmate.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $PROMPTMATE_CONFIG or ~/.promptmate/config.yaml)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

func setup(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = os.Getenv("PROMPTMATE_CONFIG")
	}
	if path == "" {
		path = config.DefaultPath()
	}

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	logger, err = logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.Debug("config loaded", zap.String("path", path), zap.String("db", cfg.DBPath))
	return nil
}

func getDBPath() string {
	return cfg.DBPath
}

func textFormat() bool {
	return formatFlag == "text"
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
