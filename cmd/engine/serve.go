package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"jobnotify-engine/internal/events"
	"jobnotify-engine/internal/httpapi"
	"jobnotify-engine/internal/scheduler"
)

var (
	serveHost      string
	servePort      int
	serveRateLimit float64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the localhost API the tracker UI talks to",
	Long:  "Serve jobs, scores, preferences and saved jobs over HTTP on localhost, with server-sent events for changes. Only one engine may run per data directory.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Interface to bind")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config)")
	serveCmd.Flags().Float64Var(&serveRateLimit, "rate", 20, "Requests per second allowed per client (0 disables)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.App.Port = servePort
	}

	lock := flock.New(filepath.Join(cfg.App.DataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock data dir: %w", err)
	}
	if !locked {
		return fmt.Errorf("another engine is already running on %s", cfg.App.DataDir)
	}
	defer func() { _ = lock.Unlock() }()

	ctx, stopSignals := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hub := events.NewHub()
	c, closeStore, err := openApp(ctx, cfg, hub)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Printf("[serve] store close: %v", err)
		}
	}()

	var cfgVal atomic.Value // stores config.Config
	cfgVal.Store(cfg)

	var limiter *httpapi.ClientLimiter
	if serveRateLimit > 0 {
		limiter = httpapi.NewClientLimiter(serveRateLimit, int(serveRateLimit*2)+1)
	}

	token, err := randomToken(16)
	if err != nil {
		return err
	}
	tokenPath, err := writeToken(cfg.App.DataDir, token)
	if err != nil {
		return fmt.Errorf("write shutdown token: %w", err)
	}
	defer os.Remove(tokenPath)

	handler := httpapi.NewHandler(httpapi.Deps{
		App:         c,
		Hub:         hub,
		CfgVal:      &cfgVal,
		UserCfgPath: cfgPath,
		Limiter:     limiter,
		Shutdown:    shutdownHandler(token, cancel),
		Started:     time.Now(),
	})

	addr := net.JoinHostPort(serveHost, fmt.Sprint(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,

		// SSE streams end when ctx does, so Shutdown is not held open by them
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	log.Printf("[serve] engine listening on http://%s (data=%s backend=%s jobs=%d)",
		addr, cfg.App.DataDir, cfg.Store.Backend, len(c.Jobs()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		scheduler.Every(gctx, 25*time.Second, "keepalive", false, scheduler.Keepalive(hub.Len, func(n int) {
			hub.Publish(events.MakeEvent("", events.TypePing, events.Version, events.Ping{Subscribers: n}))
		}))
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Printf("[serve] shutting down")
		shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shCancel()
		return srv.Shutdown(shCtx)
	})
	return g.Wait()
}
