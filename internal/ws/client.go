package ws

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"nhooyr.io/websocket"

	"github.com/DoyleJ11/heartz-client/internal/protocol"
	"github.com/DoyleJ11/heartz-client/internal/room"
)

// ErrClosed is returned by Send once the connection has gone away.
var ErrClosed = errors.New("connection closed")

const (
	writeTimeout = 5 * time.Second
	readLimit    = 1 << 20
)

// Room is where the connection delivers what it reads.
type Room interface {
	Post(ctx context.Context, m room.Msg) error
}

type Options struct {
	DialTimeout  time.Duration
	PingInterval time.Duration // 0 disables pings
	OutboxSize   int
}

// Client is the connection to one room. Commands are queued with Send and
// written by a single writer goroutine; events are decoded on the read loop
// and posted to the room in arrival order.
type Client struct {
	url    string
	opts   Options
	out    chan []byte
	closed chan struct{}
	log    *zap.Logger
}

// RoomURL is the socket address of a room: <endpoint>/<room id>.
func RoomURL(endpoint, roomID string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	switch u.Scheme {
	case "ws", "wss", "http", "https":
	default:
		return "", fmt.Errorf("endpoint %q: unsupported scheme %q", endpoint, u.Scheme)
	}
	return u.JoinPath(roomID).String(), nil
}

func NewClient(roomURL string, opts Options, log *zap.Logger) *Client {
	if opts.OutboxSize <= 0 {
		opts.OutboxSize = 16
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 10 * time.Second
	}
	return &Client{
		url:    roomURL,
		opts:   opts,
		out:    make(chan []byte, opts.OutboxSize),
		closed: make(chan struct{}),
		log:    log,
	}
}

// Send queues cmd for the writer. It blocks only while the outbox is full.
func (c *Client) Send(ctx context.Context, cmd protocol.Command) error {
	payload, err := protocol.Encode(cmd)
	if err != nil {
		return err
	}
	select {
	case c.out <- payload:
		return nil
	case <-c.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run dials, then pumps messages until the server closes, the room stops or
// ctx is cancelled. The room always gets a Closed message at the end.
func (c *Client) Run(ctx context.Context, rm Room) error {
	defer close(c.closed)
	log := c.log.With(zap.String("conn_id", uuid.NewString()))

	err := c.run(ctx, rm, log)
	switch {
	case errors.Is(err, ErrClosed), errors.Is(err, room.ErrStopped):
		err = nil
	case ctx.Err() != nil:
		err = nil
	}

	if postErr := rm.Post(context.WithoutCancel(ctx), room.Closed{Err: err}); postErr != nil && !errors.Is(postErr, room.ErrStopped) {
		log.Warn("could not notify room of close", zap.Error(postErr))
	}
	return err
}

func (c *Client) run(ctx context.Context, rm Room, log *zap.Logger) error {
	dialCtx, cancel := context.WithTimeout(ctx, c.opts.DialTimeout)
	conn, _, err := websocket.Dial(dialCtx, c.url, nil)
	cancel()
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.url, err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")
	conn.SetReadLimit(readLimit)
	log.Info("connected", zap.String("url", c.url))

	if err := rm.Post(ctx, room.Opened{}); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.writeLoop(gctx, conn, log) })
	g.Go(func() error { return c.readLoop(gctx, conn, rm, log) })
	return g.Wait()
}

func (c *Client) writeLoop(ctx context.Context, conn *websocket.Conn, log *zap.Logger) error {
	var pings <-chan time.Time
	if c.opts.PingInterval > 0 {
		t := time.NewTicker(c.opts.PingInterval)
		defer t.Stop()
		pings = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case payload := <-c.out:
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Write(wctx, websocket.MessageText, payload)
			cancel()
			if err != nil {
				return fmt.Errorf("write: %w", err)
			}
			log.Debug("wrote", zap.ByteString("payload", payload))

		case <-pings:
			pctx, cancel := context.WithTimeout(ctx, c.opts.PingInterval)
			err := conn.Ping(pctx)
			cancel()
			if err != nil {
				return fmt.Errorf("ping: %w", err)
			}
		}
	}
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn, rm Room, log *zap.Logger) error {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				log.Info("server closed connection")
				return ErrClosed
			}
			return fmt.Errorf("read: %w", err)
		}

		ev, decodeErr := protocol.Decode(data)
		if decodeErr != nil {
			log.Warn("undecodable message", zap.Error(decodeErr), zap.ByteString("payload", data))
		} else {
			log.Debug("received", zap.String("event", protocol.Name(ev)))
		}

		if err := rm.Post(ctx, room.Inbound{Event: ev, Err: decodeErr}); err != nil {
			return err
		}
	}
}
