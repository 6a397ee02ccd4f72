package main

import (
    "context"
    "fmt"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/spf13/cobra"
    "golang.org/x/sync/errgroup"

    "github.com/espegro/ledboard-bridge/internal/app"
    "github.com/espegro/ledboard-bridge/internal/config"
    "github.com/espegro/ledboard-bridge/internal/dedup"
    "github.com/espegro/ledboard-bridge/internal/ledboard"
    "github.com/espegro/ledboard-bridge/internal/logger"
    "github.com/espegro/ledboard-bridge/internal/metrics"
    "github.com/espegro/ledboard-bridge/internal/mqtt"
    "github.com/espegro/ledboard-bridge/internal/output"
    "github.com/espegro/ledboard-bridge/internal/probe"
    "github.com/espegro/ledboard-bridge/internal/ratelimit"
)

func run(_ *cobra.Command, _ []string) error {
    cfg, err := loadConfiguration(configPath)
    if err != nil {
        return fmt.Errorf("loading configuration: %w", err)
    }
    if err := setupLogging(cfg); err != nil {
        return fmt.Errorf("setting up logging: %w", err)
    }

    logger.Info("LED board bridge starting up (mode: %s)", cfg.Mode)

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

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    broker, err := mqtt.Connect(ctx, cfg.MQTT)
    if err != nil {
        return err
    }

    pinger, err := probe.New(
        cfg.LedBoard.Host,
        time.Duration(cfg.Ping.IntervalSec)*time.Second,
        cfg.Ping.ConsecutiveAnswers,
        cfg.Ping.Privileged,
    )
    if err != nil {
        broker.Disconnect()
        return err
    }

    dedupWindow := time.Duration(cfg.Performance.Dedup.WindowMS) * time.Millisecond
    if dedupWindow > 0 {
        logger.Info("Dropping repeated payloads within %v", dedupWindow)
    }
    if cfg.Performance.MaxScreensPerSec > 0 {
        logger.Info("Rate limiting enabled: max %d screens/sec", cfg.Performance.MaxScreensPerSec)
    }

    bridge := app.New(board, broker, pinger, app.Mode(cfg.Mode),
        app.WithDedup(dedup.New(dedupWindow, cfg.Performance.Dedup.Size)),
        app.WithLimiter(ratelimit.NewScreenLimiter(
            cfg.Performance.MaxScreensPerSec,
            cfg.Performance.DropStatsIntervalSec,
        )),
    )

    g, ctx := errgroup.WithContext(ctx)

    if cfg.Metrics.Enabled {
        server := metrics.NewServer(cfg.Metrics.Port, pinger.Online)
        if err := server.Start(); err != nil {
            broker.Disconnect()
            return fmt.Errorf("starting metrics server: %w", err)
        }
        g.Go(func() error {
            <-ctx.Done()
            return server.Stop()
        })
    }

    g.Go(func() error {
        return bridge.Run(ctx)
    })
    g.Go(func() error {
        rotateOnHangup(ctx, journal)
        return nil
    })

    logger.Info("LED board bridge is running. Press Ctrl+C to stop.")

    if err := g.Wait(); err != nil {
        return err
    }
    logger.Info("Shutdown complete")
    return nil
}

// rotateOnHangup starts a new journal file on every SIGHUP until ctx ends
func rotateOnHangup(ctx context.Context, journal output.Journal) {
    r, ok := journal.(interface{ Rotate() error })
    if !ok {
        return
    }

    hup := make(chan os.Signal, 1)
    signal.Notify(hup, syscall.SIGHUP)
    defer signal.Stop(hup)

    for {
        select {
        case <-ctx.Done():
            return
        case <-hup:
            if err := r.Rotate(); err != nil {
                logger.Error("Rotating journal: %v", err)
                continue
            }
            logger.Info("Journal rotated")
        }
    }
}

func newJournal(cfg *config.Config) (output.Journal, error) {
    if debug {
        logger.Info("Journal: stdout (debug)")
        return output.NewStdoutJournal(), nil
    }

    switch cfg.Journal.Type {
    case "stdout":
        logger.Info("Journal: stdout")
        return output.NewStdoutJournal(), nil
    case "simple":
        logger.Info("Journal: simple")
        return output.NewSimpleJournal(), nil
    case "file":
        journal, err := output.NewFileJournal(output.FileJournalConfig{
            Path:       cfg.Journal.File.Path,
            MaxSizeMB:  cfg.Journal.File.MaxSizeMB,
            MaxBackups: cfg.Journal.File.MaxBackups,
            MaxAgeDays: cfg.Journal.File.MaxAgeDays,
            Compress:   cfg.Journal.File.Compress,
        })
        if err != nil {
            return nil, fmt.Errorf("creating file journal: %w", err)
        }
        logger.Info("Journal: file (%s, max %dMB, %d backups)",
            cfg.Journal.File.Path, cfg.Journal.File.MaxSizeMB, cfg.Journal.File.MaxBackups)
        return journal, nil
    default:
        return output.NopJournal{}, nil
    }
}
