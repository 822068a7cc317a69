package config

import (
    "os"
    "testing"
)

func TestDefaultConfig(t *testing.T) {
    _ = os.Unsetenv("ARBSCAN_CONFIG")
    _ = os.Unsetenv("ARBSCAN_LOG_LEVEL")
    _ = os.Unsetenv("ARBSCAN_ENGINE")

    c := Load()
    if c.Logging.Level != "info" {
        t.Fatalf("expected default log level info, got %s", c.Logging.Level)
    }
    if c.Detect.Engine != "fifo" {
        t.Fatalf("expected default engine fifo, got %s", c.Detect.Engine)
    }
    if c.Detect.Source != "USD" {
        t.Fatalf("expected default source USD, got %s", c.Detect.Source)
    }
    if c.Feed.IntervalSeconds != 30 {
        t.Fatalf("expected default feed interval 30, got %d", c.Feed.IntervalSeconds)
    }
}

func TestEnvOverrides(t *testing.T) {
    t.Setenv("ARBSCAN_LOG_LEVEL", "debug")
    t.Setenv("ARBSCAN_ENGINE", "classic")
    t.Setenv("ARBSCAN_SOURCE", "EUR")
    t.Setenv("ARBSCAN_FEED_INTERVAL_SECONDS", "5")
    c := Load()
    if c.Logging.Level != "debug" {
        t.Fatalf("env override failed for log level, got %s", c.Logging.Level)
    }
    if c.Detect.Engine != "classic" {
        t.Fatalf("env override failed for engine, got %s", c.Detect.Engine)
    }
    if c.Detect.Source != "EUR" {
        t.Fatalf("env override failed for source, got %s", c.Detect.Source)
    }
    if c.Feed.IntervalSeconds != 5 {
        t.Fatalf("env override failed for feed interval, got %d", c.Feed.IntervalSeconds)
    }
}
