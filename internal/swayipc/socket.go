// Package swayipc implements the sway/i3 IPC client: socket discovery,
// the 14-byte message framing, non-blocking send/recv, and the
// workspace-visibility reconciliation the event loop feeds from it.
package swayipc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"
)

// Message types this client issues or consumes.
const (
	TypeRunCommand   uint32 = 0
	TypeGetWorkspaces uint32 = 1
	TypeSubscribe    uint32 = 2
	TypeGetOutputs   uint32 = 3

	// EventWorkspace is the workspace-change event type, tagged with the
	// high bit set on the wire per the sway IPC protocol.
	EventWorkspace uint32 = 0x80000000 | 0
)

var magic = []byte("i3-ipc")

// ErrClosed is returned by Recv/Send after the socket has been closed
// following a transport error (spec's IPCTransport kind: closed and not
// reopened, the daemon keeps rendering based on last known visibility).
var ErrClosed = errors.New("swayipc: connection closed")

// SocketPath resolves the IPC socket path via $SWAYSOCK, then
// `sway --get-socketpath`, then $I3SOCK, then `i3 --get-socketpath`.
func SocketPath() (string, error) {
	if p := os.Getenv("SWAYSOCK"); p != "" {
		return p, nil
	}
	if p, err := runGetSocketPath("sway"); err == nil {
		return p, nil
	}
	if p := os.Getenv("I3SOCK"); p != "" {
		return p, nil
	}
	if p, err := runGetSocketPath("i3"); err == nil {
		return p, nil
	}
	return "", errors.New("swayipc: no socket path in SWAYSOCK/I3SOCK and neither sway nor i3 is on PATH")
}

func runGetSocketPath(bin string) (string, error) {
	out, err := exec.Command(bin, "--get-socketpath").Output()
	if err != nil {
		return "", err
	}
	p := strings.TrimSpace(string(out))
	if p == "" {
		return "", fmt.Errorf("swayipc: %s --get-socketpath returned nothing", bin)
	}
	return p, nil
}

// Conn is a non-blocking connection to the IPC socket.
type Conn struct {
	fd     int
	closed bool
	rbuf   []byte // growable accumulation buffer for partial reads
}

// Dial connects to path and sets the socket non-blocking.
func Dial(path string) (*Conn, error) {
	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, fmt.Errorf("swayipc: socket: %w", err)
	}
	addr := &unix.SockaddrUnix{Name: path}
	if err := unix.Connect(fd, addr); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("swayipc: connect %s: %w", path, err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("swayipc: set nonblocking: %w", err)
	}
	return &Conn{fd: fd}, nil
}

// Fd returns the underlying file descriptor, for poll().
func (c *Conn) Fd() int { return c.fd }

// Close idempotently closes the socket.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return unix.Close(c.fd)
}

// Send writes a framed message, retrying on EINTR, polling for
// writability on EAGAIN, and advancing through partial writes.
func (c *Conn) Send(msgType uint32, payload []byte) error {
	if c.closed {
		return ErrClosed
	}
	var hdr [14]byte
	copy(hdr[0:6], magic)
	binary.LittleEndian.PutUint32(hdr[6:10], uint32(len(payload)))
	binary.LittleEndian.PutUint32(hdr[10:14], msgType)

	if err := c.writeAll(hdr[:]); err != nil {
		return err
	}
	return c.writeAll(payload)
}

func (c *Conn) writeAll(buf []byte) error {
	for len(buf) > 0 {
		n, err := unix.Write(c.fd, buf)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			if err == unix.EAGAIN {
				if perr := c.pollWritable(); perr != nil {
					c.Close()
					return perr
				}
				continue
			}
			c.Close()
			return fmt.Errorf("swayipc: write: %w", err)
		}
		buf = buf[n:]
	}
	return nil
}

func (c *Conn) pollWritable() error {
	fds := []unix.PollFd{{Fd: int32(c.fd), Events: unix.POLLOUT}}
	for {
		_, err := unix.Poll(fds, -1)
		if err == nil || err != unix.EINTR {
			return err
		}
	}
}

// Message is one decoded IPC frame.
type Message struct {
	Type    uint32
	Payload []byte
}

// Recv drains all complete frames currently available without blocking.
// Once a read hits EAGAIN it returns the complete frames buffered so far
// (possibly none) with a nil error.
func (c *Conn) Recv() (msgs []Message, err error) {
	if c.closed {
		return nil, ErrClosed
	}
	buf := make([]byte, 4096)
	for {
		n, err := unix.Read(c.fd, buf)
		if err != nil {
			if err == unix.EAGAIN {
				break
			}
			if err == unix.EINTR {
				continue
			}
			c.Close()
			return msgs, fmt.Errorf("swayipc: read: %w", err)
		}
		if n == 0 {
			c.Close()
			return msgs, fmt.Errorf("swayipc: %w: remote closed", ErrClosed)
		}
		c.rbuf = append(c.rbuf, buf[:n]...)
	}

	for {
		if len(c.rbuf) < 14 {
			return msgs, nil
		}
		if !bytes.Equal(c.rbuf[0:6], magic) {
			c.Close()
			return msgs, fmt.Errorf("swayipc: bad magic in frame header")
		}
		length := binary.LittleEndian.Uint32(c.rbuf[6:10])
		msgType := binary.LittleEndian.Uint32(c.rbuf[10:14])
		total := 14 + int(length)
		if len(c.rbuf) < total {
			return msgs, nil
		}
		payload := append([]byte(nil), c.rbuf[14:total]...)
		c.rbuf = c.rbuf[total:]
		msgs = append(msgs, Message{Type: msgType, Payload: payload})
	}
}
