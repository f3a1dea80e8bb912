package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"x64dbg-mcp/internal/config"
	"x64dbg-mcp/internal/debugger"
	"x64dbg-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "x64dbg-mcp",
	Short: "MCP server bridging to the x64dbg HTTP plugin",
	Long: `x64dbg-mcp exposes x64dbg debugging operations as MCP tools.

The server communicates via MCP protocol over stdin/stdout; configure
it in your MCP client (e.g., Claude Desktop). It forwards each tool
call to the x64dbg HTTP plugin, ` + config.DefaultBaseURL + ` by
default, overridable via the ` + config.EnvBaseURL + ` environment
variable or a config file.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("x64dbg-mcp %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(versionCmd)
}

func run() error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if debug {
		cfg.Debug = true
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	client := debugger.NewClient(cfg, logger)
	bridge := debugger.NewBridge(client)

	// One-shot connectivity probe. Unreachable is a warning, not a
	// startup failure: each later call reports its own error.
	if reply, err := client.Call(ctx, "/status", nil); err != nil {
		logger.Warn("cannot connect to x64dbg - make sure it is running with the MCP plugin loaded",
			zap.String("url", cfg.BaseURL), zap.Error(err))
	} else {
		arch := "unknown"
		if reply.Kind == debugger.ReplyObject {
			if a, ok := reply.Object["arch"].(string); ok {
				arch = a
			}
		}
		logger.Info("connected to x64dbg", zap.String("url", cfg.BaseURL), zap.String("arch", arch))
	}

	srv := server.New(bridge, logger)
	return srv.Run(ctx)
}

// newLogger builds a stderr-only zap logger; stdout belongs to the
// MCP protocol.
func newLogger(debug bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	if debug {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zcfg.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
