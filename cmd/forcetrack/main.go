package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/ayusman/forcetrack/internal/app"
	"github.com/ayusman/forcetrack/internal/config"
	"github.com/ayusman/forcetrack/internal/server"
	"github.com/ayusman/forcetrack/internal/store"
	"github.com/ayusman/forcetrack/internal/tray"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, flag.CommandLine, os.Args[1:])
	stop()

	if err != nil {
		log.Fatalf("forcetrack: %v", err)
	}
}

// run wires the journal, server and tray around the frame loop. Everything
// it opens is closed before it returns.
func run(ctx context.Context, fs *flag.FlagSet, args []string) error {
	cfg, err := config.ParseConfig(fs, args)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := config.Validate(cfg, runtime.GOOS); err != nil {
		return err
	}

	fmt.Println("Forcetrack - Hand Tracking")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	appCfg := app.ConfigFrom(cfg)

	if cfg.Journal != "" {
		st, err := store.New(cfg.Journal)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer st.Close()
		appCfg.Journal = st
		fmt.Printf("Recording sessions to %s\n", st.Path())
	}

	var wg sync.WaitGroup
	defer wg.Wait()
	// Stop the server before waiting on it.
	defer cancel()

	if cfg.Addr != "" {
		events := server.NewEventsHandler()
		appCfg.Events = events

		srv := server.New(server.Config{
			Store:  appCfg.Journal,
			Events: events,
		})

		wg.Add(1)
		go func() {
			defer wg.Done()
			fmt.Printf("Starting server on %s\n", cfg.Addr)
			if err := srv.ListenAndServe(ctx, cfg.Addr); err != nil {
				log.Printf("Server failed: %v", err)
			}
		}()
	}

	if !cfg.Tray {
		if err := app.New(appCfg, app.Deps{}).Run(ctx); err != nil {
			return fmt.Errorf("frame loop: %w", err)
		}
		return nil
	}

	t := tray.New()
	appCfg.OnEvent = t.SetLastEvent
	a := app.New(appCfg, app.Deps{})
	t.OnToggle(a.SetTrackingEnabled)
	t.OnQuit(cancel)

	// The tray owns the main goroutine; the frame loop locks its own thread.
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Run(ctx)
		t.Quit()
	}()
	t.Run()
	cancel()

	if err := <-errCh; err != nil {
		return fmt.Errorf("frame loop: %w", err)
	}
	return nil
}
