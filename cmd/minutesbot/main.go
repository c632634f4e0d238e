package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/nguyentantai21042004/minutes-bot/internal/config"
	"github.com/nguyentantai21042004/minutes-bot/internal/dedupe"
	"github.com/nguyentantai21042004/minutes-bot/internal/dispatcher"
	"github.com/nguyentantai21042004/minutes-bot/internal/health"
	"github.com/nguyentantai21042004/minutes-bot/internal/inbox"
	"github.com/nguyentantai21042004/minutes-bot/internal/logger"
	"github.com/nguyentantai21042004/minutes-bot/internal/pipeline"
	"github.com/nguyentantai21042004/minutes-bot/internal/retriever"
	"github.com/nguyentantai21042004/minutes-bot/internal/slackbot"
	"github.com/nguyentantai21042004/minutes-bot/internal/summarizer"
	"github.com/nguyentantai21042004/minutes-bot/internal/transcoder"
	"github.com/nguyentantai21042004/minutes-bot/internal/transcriber"
	"github.com/nguyentantai21042004/minutes-bot/internal/watcher"
	"github.com/nguyentantai21042004/minutes-bot/pkg/executor"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Minutes Bot")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Summarizer: %s, Transcriber: %s", cfg.Summarizer.Provider, cfg.Transcriber.Provider)
	log.Info(ctx, "Max Concurrent Runs: %d", cfg.Performance.MaxConcurrent)

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	// Initialize dependencies
	exec := executor.New()
	api := slackbot.NewAPI(cfg.Slack.BotToken, cfg.Slack.AppToken, cfg.Slack.Debug, log)
	messenger := slackbot.NewMessenger(api)

	trans, err := transcriber.New(cfg.Transcriber, exec, log)
	if err != nil {
		log.Error(ctx, "Failed to create transcriber: %v", err)
		os.Exit(1)
	}
	summ, err := summarizer.New(cfg.Summarizer, log)
	if err != nil {
		log.Error(ctx, "Failed to create summarizer: %v", err)
		os.Exit(1)
	}

	pipe := pipeline.New(pipeline.Deps{
		Files:       messenger,
		Messenger:   messenger,
		Retriever:   retriever.New(api, log),
		Transcoder:  transcoder.New(cfg.FFmpeg.BinaryPath, exec, log),
		Transcriber: trans,
		Summarizer:  summ,
		Logger:      log,
	}, pipeline.Options{
		ScratchDir: cfg.Paths.Scratch,
		AttachDocx: cfg.Output.AttachDocx,
	})

	store, err := dedupe.New(cfg.Dedupe.RedisAddr, cfg.Dedupe.TTL)
	if err != nil {
		log.Error(ctx, "Failed to create dedupe store: %v", err)
		os.Exit(1)
	}
	defer store.Close()
	if err := dedupe.Ping(ctx, store); err != nil {
		log.Warn(ctx, "Dedupe store unreachable, duplicates will not be suppressed until it recovers: %v", err)
	}

	disp := dispatcher.New(pipe.Run, store, log, cfg.Performance.MaxConcurrent, cfg.Performance.QueueSize)
	listener := slackbot.New(api, slackbot.Sink(disp.Submit), cfg.Slack.Debug, log)

	// Build the inbox watcher before starting anything
	var w watcher.Watcher
	if cfg.Paths.Inbox != "" {
		fwd := inbox.New(messenger, cfg.Slack.InboxChannel, cfg.Paths.Archived, log)
		w, err = watcher.New(cfg.Paths.Inbox, fwd.Handle, log, 1)
		if err != nil {
			log.Error(ctx, "Failed to create watcher: %v", err)
			store.Close()
			os.Exit(1)
		}
		defer w.Stop()
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 4)
	done := make(chan struct{})
	running := 0
	start := func(name string, fn func(context.Context) error) {
		running++
		go func() {
			if err := fn(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errChan <- fmt.Errorf("%s: %w", name, err)
			}
			done <- struct{}{}
		}()
	}

	start("dispatcher", disp.Start)
	start("listener", listener.Start)

	if w != nil {
		start("watcher", w.Start)
	}

	if cfg.HTTP.Addr != "" {
		start("health", health.New(cfg.HTTP.Addr, disp, log).Start)
	}

	log.Info(ctx, "========================================")
	log.Info(ctx, "Minutes Bot is ready!")
	log.Info(ctx, "Scratch: %s", cfg.Paths.Scratch)
	if cfg.Paths.Inbox != "" {
		log.Info(ctx, "Inbox: %s -> %s", cfg.Paths.Inbox, cfg.Slack.InboxChannel)
	}
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "%v", err)
	}

	// Graceful shutdown
	log.Info(ctx, "Shutting down gracefully...")
	cancel()
	for i := 0; i < running; i++ {
		<-done
	}

	log.Info(ctx, "Minutes Bot stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Scratch,
		cfg.Paths.Archived,
	}
	if cfg.Paths.Inbox != "" {
		dirs = append(dirs, cfg.Paths.Inbox)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
