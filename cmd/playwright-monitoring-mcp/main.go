// Package main runs the browser monitoring MCP server. It speaks MCP over
// stdin/stdout and exposes tools that open a Playwright-driven browser page
// and serve its captured console logs and network requests.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/browser"
	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/config"
	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/logging"
	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/mcp"
	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/tools"
	monitortools "github.com/lijiahao10086/playwright-monitoring-mcp/pkg/tools/monitor"
)

const version = "0.1.0"

// CLIConfig holds command-line configuration.
type CLIConfig struct {
	ConfigFile  string
	Headless    bool
	HeadlessSet bool
	ShowVersion bool
}

func main() {
	cli := parseFlags()

	if cli.ShowVersion {
		fmt.Printf("playwright-monitoring-mcp v%s\n", version)
		return
	}

	if err := run(cli); err != nil {
		fmt.Fprintf(os.Stderr, "playwright-monitoring-mcp: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() *CLIConfig {
	cli := &CLIConfig{}

	flag.StringVar(&cli.ConfigFile, "config", "", "Path to config file (default ~/.playwright-monitoring-mcp/config.yaml)")
	flag.BoolVar(&cli.Headless, "headless", false, "Run the browser headless, overriding the config file")
	flag.BoolVar(&cli.ShowVersion, "version", false, "Print version and exit")
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "headless" {
			cli.HeadlessSet = true
		}
	})
	return cli
}

func run(cli *CLIConfig) error {
	configPath := cli.ConfigFile
	if configPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		configPath = path
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cli.HeadlessSet {
		cfg.Headless = cli.Headless
	}

	// Log file setup failures are tolerable: the returned logger falls back
	// to stderr, which is safe alongside the stdout transport.
	logger, logErr := logging.NewLogger("server")
	if logErr == nil {
		defer logger.Close()
	}
	logger.Infof("starting playwright-monitoring-mcp v%s (config: %s)", version, configPath)

	monitor, err := browser.NewMonitor(cfg.MonitorOptions(), logger)
	if err != nil {
		return fmt.Errorf("invalid capture configuration: %w", err)
	}
	defer monitor.Shutdown()

	registry := tools.NewRegistry()
	if err := monitortools.RegisterTools(registry, monitor); err != nil {
		return fmt.Errorf("registering tools: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Infof("received %s, shutting down", sig)
		cancel()
		// The scanner may be blocked on stdin; the deferred shutdown still
		// runs because Serve returns when stdin closes or on the next
		// request. Force the issue for terminal signals.
		monitor.Shutdown()
		os.Exit(0)
	}()

	server := mcp.NewServer(os.Stdin, os.Stdout, registry, mcp.ServerInfo{
		Name:    "playwright-monitoring-mcp",
		Version: version,
	}, logger)

	if err := server.Serve(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	logger.Infof("client disconnected, shutting down")
	return nil
}
