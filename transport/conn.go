//
// conn.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.

package transport

import (
	"bufio"
	"encoding/binary"
	"io"
	"net"
	"sync"

	"github.com/cockroachdb/errors"
)

// frameConn implements Channel over any io.ReadWriteCloser by framing
// each Frame as a big-endian length prefix, a one-byte Kind, and the
// payload bytes -- the same shape markkurossi-mpc's p2p.Conn uses for
// its own SendData/ReceiveData pair.
type frameConn struct {
	closer io.Closer
	rw     *bufio.ReadWriter

	mu       sync.Mutex
	sendErr  error
	closed   bool

	pollOnce sync.Once
	pollCh   chan Frame
}

func newFrameConn(rwc io.ReadWriteCloser) *frameConn {
	return &frameConn{
		closer: rwc,
		rw: bufio.NewReadWriter(bufio.NewReader(rwc),
			bufio.NewWriter(rwc)),
	}
}

// Pipe returns two connected in-process Channels: anything sent on one
// is received on the other, and vice versa. Modeled on
// markkurossi-mpc's p2p.Pipe, used here for tests and in-process
// garbler/evaluator runs.
func Pipe() (Channel, Channel) {
	ar, aw := io.Pipe()
	br, bw := io.Pipe()
	return newFrameConn(pipeHalf{r: ar, w: bw}), newFrameConn(pipeHalf{r: br, w: aw})
}

type pipeHalf struct {
	r *io.PipeReader
	w *io.PipeWriter
}

func (p pipeHalf) Read(b []byte) (int, error)  { return p.r.Read(b) }
func (p pipeHalf) Write(b []byte) (int, error) { return p.w.Write(b) }
func (p pipeHalf) Close() error {
	if err := p.r.Close(); err != nil {
		return err
	}
	return p.w.Close()
}

// Dial opens a TCP connection to addr and returns a Channel framed the
// same way Listen's accepted connections are.
func Dial(addr string) (Channel, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "transport: dialing %s", addr)
	}
	return newFrameConn(conn), nil
}

// Listener accepts incoming TCP connections and hands each one back as
// a framed Channel.
type Listener struct {
	ln net.Listener
}

// Listen starts accepting TCP connections on addr.
func Listen(addr string) (*Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "transport: listening on %s", addr)
	}
	return &Listener{ln: ln}, nil
}

// Accept blocks for the next incoming connection and returns it as a
// Channel.
func (l *Listener) Accept() (Channel, error) {
	conn, err := l.ln.Accept()
	if err != nil {
		return nil, errors.Wrap(err, "transport: accept")
	}
	return newFrameConn(conn), nil
}

// Close stops accepting new connections.
func (l *Listener) Close() error {
	return l.ln.Close()
}

func (c *frameConn) Send(f Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.Wrap(ErrClosed, "Send")
	}
	if err := binary.Write(c.rw, binary.BigEndian, uint32(len(f.Payload))); err != nil {
		return errors.Wrap(err, "transport: writing frame length")
	}
	if err := c.rw.WriteByte(byte(f.Kind)); err != nil {
		return errors.Wrap(err, "transport: writing frame kind")
	}
	if _, err := c.rw.Write(f.Payload); err != nil {
		return errors.Wrap(err, "transport: writing frame payload")
	}
	return c.rw.Flush()
}

func (c *frameConn) Receive() (Frame, error) {
	var length uint32
	if err := binary.Read(c.rw, binary.BigEndian, &length); err != nil {
		return Frame{}, errors.Wrap(ErrClosed, err.Error())
	}
	kindByte, err := c.rw.ReadByte()
	if err != nil {
		return Frame{}, errors.Wrap(ErrClosed, err.Error())
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(c.rw, payload); err != nil {
		return Frame{}, errors.Wrap(ErrClosed, err.Error())
	}
	return Frame{Kind: Kind(kindByte), Payload: payload}, nil
}

func (c *frameConn) SendAndWait(f Frame) (Frame, error) {
	if err := c.Send(f); err != nil {
		return Frame{}, err
	}
	return c.Receive()
}

// Poll returns a channel of frames read from the connection in the
// background, for callers that want to wait for the next incoming
// frame without blocking the calling goroutine. It is started lazily
// and lives for the connection's lifetime.
func (c *frameConn) Poll() (<-chan Frame, error) {
	c.pollOnce.Do(func() {
		c.pollCh = make(chan Frame, 16)
		go func() {
			defer close(c.pollCh)
			for {
				f, err := c.Receive()
				if err != nil {
					return
				}
				c.pollCh <- f
			}
		}()
	})
	return c.pollCh, nil
}

func (c *frameConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.closer.Close()
}
