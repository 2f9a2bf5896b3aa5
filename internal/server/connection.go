package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/lox/fivecardstud/internal/protocol"
)

const (
	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	sendBuffer = 64

	defaultWriteWait = 10 * time.Second
)

// ErrConnectionClosed is returned when sending on a closed connection.
var ErrConnectionClosed = errors.New("connection closed")

type outbound struct {
	format protocol.Format
	msg    protocol.Message
}

// Connection is one WebSocket client. Text frames carry JSON and binary
// frames carry msgpack; each reply uses the encoding of its request.
type Connection struct {
	id     string
	server *Server
	ws     *websocket.Conn
	send   chan outbound
	logger zerolog.Logger

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func newConnection(s *Server, ws *websocket.Conn) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.NewString()[:8]
	return &Connection{
		id:     id,
		server: s,
		ws:     ws,
		send:   make(chan outbound, sendBuffer),
		logger: s.logger.With().Str("conn", id).Logger(),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (c *Connection) start() {
	c.server.wg.Add(2)
	go func() {
		defer c.server.wg.Done()
		c.writePump()
	}()
	go func() {
		defer c.server.wg.Done()
		c.readPump()
	}()
}

// Close stops the connection. The write pump sends a close frame and
// releases the socket. It is safe to call more than once.
func (c *Connection) Close() error {
	c.closeOnce.Do(func() {
		c.cancel()
		c.server.unregister(c)
	})
	return nil
}

// Send queues a message for the client. A client that stops reading until
// its buffer fills is disconnected.
func (c *Connection) Send(format protocol.Format, msg protocol.Message) error {
	select {
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- outbound{format: format, msg: msg}:
		return nil
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
		c.logger.Warn().Msg("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		kind, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Error().Err(err).Msg("WebSocket error")
			}
			return
		}

		format := protocol.JSON
		if kind == websocket.BinaryMessage {
			format = protocol.MsgPack
		}
		c.handleMessage(format, data)
	}
}

func (c *Connection) handleMessage(format protocol.Format, data []byte) {
	req, err := protocol.DecodeRequest(format, data)
	if err != nil {
		c.server.stats.recordError()
		c.logger.Debug().Err(err).Msg("Invalid request")
		_ = c.Send(format, protocol.NewError(requestID(req), protocol.CodeBadRequest, err.Error()))
		return
	}

	res, perr := c.server.rank(req)
	if perr != nil {
		_ = c.Send(format, perr)
		return
	}
	_ = c.Send(format, res)
}

func (c *Connection) writePump() {
	ticker := c.server.clock.NewTicker(pingPeriod, "conn", "ping")
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	writeWait := c.server.cfg.WriteTimeout
	if writeWait <= 0 {
		writeWait = defaultWriteWait
	}
	for {
		select {
		case out := <-c.send:
			data, err := protocol.Marshal(out.format, out.msg)
			if err != nil {
				c.logger.Error().Err(err).Msg("Failed to encode message")
				continue
			}
			kind := websocket.TextMessage
			if out.format == protocol.MsgPack {
				kind = websocket.BinaryMessage
			}
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(kind, data); err != nil {
				c.logger.Error().Err(err).Msg("Failed to write message")
				return
			}

		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(time.Second))
			return
		}
	}
}
