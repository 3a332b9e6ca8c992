// Command fusion-producer runs the streaming indexer: it loads
// configuration, builds the Parser Registry, and drives the block-ingest
// loop against a configured block source until exhaustion or a shutdown
// signal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/venom-blockchain/fusion-producer/internal/blockhandler"
	"github.com/venom-blockchain/fusion-producer/internal/config"
	"github.com/venom-blockchain/fusion-producer/internal/filter"
	"github.com/venom-blockchain/fusion-producer/internal/producer"
	"github.com/venom-blockchain/fusion-producer/internal/rpcstate"
	"github.com/venom-blockchain/fusion-producer/internal/scansource"
	"github.com/venom-blockchain/fusion-producer/internal/serializer"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	var configPath, globalConfigPath string
	var runCompaction, printMemoryUsage bool
	flag.StringVar(&configPath, "c", "config.yaml", "path to the service configuration file")
	flag.StringVar(&configPath, "config", "config.yaml", "path to the service configuration file")
	flag.StringVar(&globalConfigPath, "g", "", "path to the global (network) configuration file")
	flag.StringVar(&globalConfigPath, "global-config", "", "path to the global (network) configuration file")
	flag.BoolVar(&runCompaction, "run-compaction", false, "accepted and logged; no compaction is performed")
	flag.BoolVar(&printMemoryUsage, "print-memory-usage", false, "accepted and logged; no memory usage is printed")
	flag.Parse()

	if runCompaction {
		logrus.Infof("main: --run-compaction requested; no-op, compaction engine is out of scope here")
	}
	if printMemoryUsage {
		logrus.Infof("main: --print-memory-usage requested; no-op, memory profiler is out of scope here")
	}
	if globalConfigPath != "" {
		logrus.Infof("main: global config %s acknowledged; not consumed by the core pipeline", globalConfigPath)
	}
	if path := os.Getenv("MEMORY_PROFILER_PATH"); path != "" {
		logrus.Infof("main: MEMORY_PROFILER_PATH=%s acknowledged; no profiler started", path)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logrus.Fatalf("main: loading config: %v", err)
	}

	registry, err := filter.Init(cfg.Filter)
	if err != nil {
		logrus.Fatalf("main: initializing parser registry: %v", err)
	}
	logrus.Infof("main: parser registry built (%d parsers)", len(registry.Parsers()))

	ser, err := serializer.New(cfg.Serializer.Kind)
	if err != nil {
		logrus.Fatalf("main: constructing serializer: %v", err)
	}

	prod, err := producer.New(cfg.Transport, os.Stdout)
	if err != nil {
		logrus.Fatalf("main: constructing producer: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var statusServer *rpcstate.Server
	if cfg.RPC.ListenAddress != "" {
		statusServer = rpcstate.NewServer(cfg.RPC.ListenAddress)
		go func() {
			if err := statusServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logrus.WithError(err).Errorf("main: rpc status server stopped")
			}
		}()
	}

	if http2Producer, ok := prod.(*producer.HTTP2Producer); ok {
		go func() {
			if err := http2Producer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logrus.WithError(err).Errorf("main: egress http2 server stopped")
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = http2Producer.Shutdown(shutdownCtx)
		}()
	}

	handler := blockhandler.New(registry, ser, cfg.Serializer, prod)
	if statusServer != nil {
		handler.Observer = statusServer
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = statusServer.Shutdown(shutdownCtx)
		}()
	}

	source, err := newBlockSource(cfg.Scan)
	if err != nil {
		logrus.Fatalf("main: constructing block source: %v", err)
	}
	defer source.Close()

	logrus.Infof("main: entering block-ingest loop")
runLoop:
	for {
		select {
		case <-ctx.Done():
			logrus.Infof("main: shutdown signal received")
			break runLoop
		default:
		}

		event, err := source.Next(ctx)
		if err != nil {
			if errors.Is(err, scansource.ErrExhausted) {
				logrus.Infof("main: block source exhausted")
				break runLoop
			}
			logrus.WithError(err).Errorf("main: block source error")
			break runLoop
		}

		if statusServer != nil {
			statusServer.NotifyBlock(event.BlockID)
		}
		if err := handler.HandleBlock(event.BlockID, event.Block, event.ShardState); err != nil {
			logrus.WithError(err).Errorf("main: handling block %s", event.BlockID)
		}
	}

	logrus.Infof("main: clean shutdown")
}

func newBlockSource(cfg config.ScanConfig) (scansource.BlockSource, error) {
	switch cfg.Kind {
	case "fixture":
		return scansource.NewFixtureSource(cfg.FixturePath)
	case "network":
		return scansource.NewNetworkSource(cfg.NodeAddress), nil
	case "archive":
		return scansource.NewArchiveSource(cfg.ArchivePath), nil
	case "s3":
		return scansource.NewS3Source(cfg.Bucket, cfg.RetryOnError), nil
	default:
		return nil, fmt.Errorf("unknown scan.kind %q", cfg.Kind)
	}
}
