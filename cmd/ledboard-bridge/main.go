// Command ledboard-bridge shows MQTT events from the space on the LED board.
package main

import (
    "errors"
    "log"
    "os"

    "github.com/spf13/cobra"

    "github.com/espegro/ledboard-bridge/internal/config"
    "github.com/espegro/ledboard-bridge/internal/logger"
)

var (
    configPath = "/etc/ledboard-bridge/ledboard-bridge.yaml"
    debug      = false
)

func main() {
    cmd := &cobra.Command{
        Use:           "ledboard-bridge",
        Short:         "Show MQTT events on the LED board",
        Args:          cobra.ExactArgs(0),
        RunE:          run,
        SilenceUsage:  true,
        SilenceErrors: true,
    }
    cmd.PersistentFlags().StringVar(&configPath, "config", configPath, "Path to configuration file")
    cmd.PersistentFlags().BoolVar(&debug, "debug", debug, "Enable debug logging and stdout journal regardless of config")

    cmd.AddCommand(&cobra.Command{
        Use:   "run",
        Short: "Run the bridge (default)",
        Args:  cobra.ExactArgs(0),
        RunE:  run,
    })
    cmd.AddCommand(&cobra.Command{
        Use:   "render SCREEN [ARG]",
        Short: "Print the command string for a screen",
        Args:  cobra.RangeArgs(1, 2),
        RunE:  render,
    })
    cmd.AddCommand(&cobra.Command{
        Use:   "send SCREEN [ARG]",
        Short: "Render a screen and send it to the configured board",
        Args:  cobra.RangeArgs(1, 2),
        RunE:  send,
    })
    cmd.AddCommand(&cobra.Command{
        Use:   "publish TOPIC PAYLOAD",
        Short: "Publish a message to the configured broker, e.g. to test a running bridge",
        Args:  cobra.ExactArgs(2),
        RunE:  publish,
    })

    if err := cmd.Execute(); err != nil {
        log.Fatalln(err)
    }
}

func loadConfiguration(path string) (*config.Config, error) {
    // Try to load from file
    cfg, err := config.LoadConfig(path)
    if err != nil {
        if errors.Is(err, os.ErrNotExist) {
            log.Printf("Config file not found at %s, using defaults", path)
            cfg = config.DefaultConfig()
            if err := cfg.ApplyEnv(); err != nil {
                return nil, err
            }
            return cfg, cfg.Validate()
        }
        return nil, err
    }

    return cfg, nil
}

func setupLogging(cfg *config.Config) error {
    level := cfg.Logging.Level
    if debug {
        level = "debug"
    }
    return logger.Init(level, cfg.Logging.Output)
}

func screenArg(args []string) string {
    if len(args) > 1 {
        return args[1]
    }
    return ""
}
