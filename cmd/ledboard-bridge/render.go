package main

import (
    "fmt"
    "time"

    "github.com/spf13/cobra"

    "github.com/espegro/ledboard-bridge/internal/ledboard"
    "github.com/espegro/ledboard-bridge/internal/mqtt"
    "github.com/espegro/ledboard-bridge/internal/screens"
)

func render(cmd *cobra.Command, args []string) error {
    screen, err := screens.New().Render(args[0], screenArg(args))
    if err != nil {
        return fmt.Errorf("%w (known: %v)", err, screens.Names())
    }
    fmt.Fprintf(cmd.OutOrStdout(), "%q\n", screen)
    return nil
}

func send(_ *cobra.Command, args []string) error {
    cfg, err := loadConfiguration(configPath)
    if err != nil {
        return fmt.Errorf("loading configuration: %w", err)
    }
    if err := setupLogging(cfg); err != nil {
        return fmt.Errorf("setting up logging: %w", err)
    }

    screen, err := screens.New().Render(args[0], screenArg(args))
    if err != nil {
        return fmt.Errorf("%w (known: %v)", err, screens.Names())
    }

    journal, err := newJournal(cfg)
    if err != nil {
        return err
    }
    defer journal.Close()

    board, err := ledboard.Dial(cfg.LedBoard.Host, cfg.LedBoard.Port, journal)
    if err != nil {
        return fmt.Errorf("connecting to LED board: %w", err)
    }
    defer board.Close()

    return board.SendScreen(args[0], screen)
}

func publish(cmd *cobra.Command, args []string) error {
    cfg, err := loadConfiguration(configPath)
    if err != nil {
        return fmt.Errorf("loading configuration: %w", err)
    }
    if err := setupLogging(cfg); err != nil {
        return fmt.Errorf("setting up logging: %w", err)
    }

    // A second client with the bridge's ID would kick the bridge off the broker
    cfg.MQTT.ClientID = fmt.Sprintf("%s-publish-%d", cfg.MQTT.ClientID, time.Now().Unix())
    cfg.MQTT.ConnectRetrySec = 0

    broker, err := mqtt.Connect(cmd.Context(), cfg.MQTT)
    if err != nil {
        return err
    }
    defer broker.Disconnect()

    return broker.Publish(args[0], args[1])
}
