package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/rcdrive/rcdrive/internal/config"
	"github.com/rcdrive/rcdrive/internal/hub"
	"github.com/rcdrive/rcdrive/internal/pipeline"
	"github.com/rcdrive/rcdrive/internal/receiver"
	"github.com/rcdrive/rcdrive/internal/server"
	"github.com/rcdrive/rcdrive/internal/sink"
	"github.com/rcdrive/rcdrive/internal/tray"
)

// Cross-platform signal handling: os.Interrupt covers Ctrl+C on Windows and
// SIGINT on Unix.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

const signalHeartbeat = time.Second

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	// Channel acquisition runs on its own locked thread; the control loop
	// only ever sees its snapshots.
	reader := receiver.NewSDLReader()
	readerDone := make(chan struct{})
	go func() {
		reader.Run(ctx)
		close(readerDone)
	}()

	// Output chain: monitor always, debug logging only when asked for.
	monitor := sink.NewMonitor()
	outs := sink.Multi{monitor}
	keys := sink.MultiKeys{monitor}
	if cfg.Debug {
		outs = append(outs, sink.DebugSink{})
		keys = append(keys, sink.DebugSink{})
	}
	batch := sink.NewBatch(outs)

	pipe := pipeline.New(cfg.Pipeline, batch, keys, monitor)

	h := hub.NewHub()
	go h.Run()

	broadcaster := hub.NewBroadcaster(h, monitor.Changes())
	go broadcaster.Run()

	srv := server.New(h, broadcaster, getFrontendFS(), cfg.ListenAddr)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	log.Printf("rcdrive started: monitor at http://localhost%s", cfg.ListenAddr)

	shutdownRequested := make(chan struct{})
	if runtime.GOOS == "windows" {
		go func() {
			t := tray.New("http://localhost"+cfg.ListenAddr, func() {
				close(shutdownRequested)
			})
			t.Run()
		}()
	} else {
		log.Println("Press Ctrl+C to exit")
	}

	loopDone := make(chan struct{})
	go func() {
		runControlLoop(ctx, cfg, reader, pipe, batch)
		close(loopDone)
	}()

	select {
	case <-sigCh:
		log.Println("Shutting down...")
		cancel()
	case <-shutdownRequested:
		log.Println("Shutdown requested from tray")
		cancel()
	case err := <-serverErrCh:
		log.Printf("Monitor server error: %v", err)
		cancel()
	}

	<-loopDone
	<-readerDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Monitor server shutdown error: %v", err)
	}

	log.Println("rcdrive stopped")
}

// runControlLoop blocks until the receiver has produced a full set of
// channel readings, waits out the startup delay, then polls at the
// configured rate. Each tick is one cycle: snapshot in, pipeline, batched
// flush out.
func runControlLoop(ctx context.Context, cfg *config.Config, reader receiver.Reader, pipe *pipeline.Pipeline, batch *sink.Batch) {
	// No degraded mode exists without input, so this wait is unbounded.
	heartbeat := time.NewTicker(signalHeartbeat)
	for !reader.Available() {
		select {
		case <-ctx.Done():
			heartbeat.Stop()
			return
		case <-heartbeat.C:
			log.Println("Waiting for receiver signal...")
		}
	}
	heartbeat.Stop()

	log.Println("Receiver signal acquired")

	select {
	case <-ctx.Done():
		return
	case <-time.After(time.Duration(cfg.StartupDelay) * time.Millisecond):
	}

	interval := time.Second / time.Duration(cfg.PollHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pipe.Cycle(reader.Snapshot(), cfg.CurveToggles())
			batch.Flush()
		}
	}
}
