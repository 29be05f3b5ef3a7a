package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/heartz-client/internal/config"
	"github.com/DoyleJ11/heartz-client/internal/httpapi"
	"github.com/DoyleJ11/heartz-client/internal/logging"
	"github.com/DoyleJ11/heartz-client/internal/render"
	"github.com/DoyleJ11/heartz-client/internal/room"
	"github.com/DoyleJ11/heartz-client/internal/tui"
	"github.com/DoyleJ11/heartz-client/internal/ws"
	"github.com/DoyleJ11/heartz-client/pkg/types"
)

// errStop ends the errgroup when one side finishes cleanly.
var errStop = errors.New("stop")

// roomRef lets the TUI model exist before the room it drives.
type roomRef struct{ *room.Room }

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "heartz:", err)
		os.Exit(1)
	}
}

func run() (err error) {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, Stderr: cfg.Headless})
	if err != nil {
		return err
	}
	defer func() {
		if cfg.LogFile != "" {
			err = multierr.Append(err, log.Sync())
		}
	}()
	log = log.With(zap.String("room_id", cfg.RoomID))

	roomURL, err := ws.RoomURL(cfg.Endpoint, cfg.RoomID)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	self := types.PlayerID(cfg.PlayerID)
	conn := ws.NewClient(roomURL, ws.Options{
		DialTimeout:  cfg.DialTimeout,
		PingInterval: cfg.PingInterval,
		OutboxSize:   cfg.OutboxSize,
	}, log)

	var renderer room.Renderer = render.NewLog(log)
	var program *tea.Program
	ref := &roomRef{}
	if !cfg.Headless {
		program = tea.NewProgram(tui.New(ref, self), tea.WithAltScreen())
		renderer = room.Tee(tui.NewRenderer(program), renderer)
	}

	rm := room.NewRoom(gctx, self, renderer, conn, log)
	ref.Room = rm

	g.Go(func() error { return conn.Run(gctx, rm) })

	g.Go(func() error {
		<-rm.Done()
		if program != nil {
			program.Send(tui.ClosedMsg{Err: rm.Err()})
		}
		if err := rm.Err(); err != nil {
			return err
		}
		return errStop
	})

	if program != nil {
		g.Go(func() error {
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return errStop
		})
		g.Go(func() error {
			<-gctx.Done()
			program.Quit()
			return nil
		})
	}

	if cfg.ControlEnabled {
		srv := &http.Server{
			Addr:              cfg.ControlAddr,
			Handler:           httpapi.SetupRoutes(rm, log),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			log.Info("control surface listening", zap.String("addr", cfg.ControlAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("control surface: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, errStop) {
		return err
	}
	return nil
}
