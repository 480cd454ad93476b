// Package sockconn implements the non-blocking Unix-domain stream socket
// that carries Wayland frames: an outbound byte+FD queue drained by
// sendmsg(2), an inbound byte buffer filled by recvmsg(2), and the
// bookkeeping needed to reassemble a stream of SCM_RIGHTS-carried file
// descriptors in receive order.
package sockconn

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// maxFDsPerRecv bounds how much CMSG space recvOnce reserves, per the
// protocol's requirement to handle a reasonable burst of file descriptors
// in a single frame.
const maxFDsPerRecv = 16

// recvBufSize is sized for roughly one frame's worth of payload; large
// frames simply take more than one recvOnce to arrive.
const recvBufSize = 1024

// outboundFrame is one queued (bytes, fds) unit awaiting transmission.
type outboundFrame struct {
	data []byte
	fds  []int
	sent int // bytes of data already written
}

// Conn owns a non-blocking AF_UNIX SOCK_STREAM socket and the queues that
// buffer partially-sent and partially-received frames across it.
type Conn struct {
	fd int

	outbound []outboundFrame

	inbound    []byte
	inboundFDs []int

	closed bool
}

// Dial connects to the Unix socket at path and puts it into non-blocking
// mode.
func Dial(path string) (*Conn, error) {
	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, fmt.Errorf("sockconn: socket: %w", err)
	}
	addr := &unix.SockaddrUnix{Name: path}
	if err := unix.Connect(fd, addr); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("sockconn: connect %s: %w", path, err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("sockconn: set non-blocking: %w", err)
	}
	return &Conn{fd: fd}, nil
}

// FromFD adopts an already-connected, already-accepted socket fd (used on
// the server side, where the fd comes from accept(2)).
func FromFD(fd int) (*Conn, error) {
	if err := unix.SetNonblock(fd, true); err != nil {
		return nil, fmt.Errorf("sockconn: set non-blocking: %w", err)
	}
	return &Conn{fd: fd}, nil
}

// Fd returns the underlying file descriptor, for use in a select/poll loop.
func (c *Conn) Fd() int { return c.fd }

// Enqueue appends a complete frame (and its accompanying fds, if any) to
// the outbound queue. It does not block or attempt to send.
func (c *Conn) Enqueue(data []byte, fds []int) {
	c.outbound = append(c.outbound, outboundFrame{data: data, fds: fds})
}

// ErrWouldBlock is returned by Flush and RecvOnce when the socket has no
// more progress to make right now (EAGAIN/EWOULDBLOCK). It is a benign,
// expected condition, not a transport failure.
var ErrWouldBlock = errors.New("sockconn: would block")

// TransportError wraps a fatal, non-recoverable socket error (broken pipe,
// connection reset, bad descriptor). The caller must close the connection.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sockconn: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) {
		return ErrWouldBlock
	}
	if errors.Is(err, unix.EPIPE) || errors.Is(err, unix.ECONNRESET) || errors.Is(err, unix.EBADF) {
		return &TransportError{Op: op, Err: err}
	}
	return fmt.Errorf("sockconn: %s: %w", op, err)
}

// Flush drains as much of the outbound queue as the kernel will currently
// accept. On EAGAIN mid-frame, the partially-sent frame is left at the head
// of the queue and Flush returns ErrWouldBlock; a subsequent Flush resumes
// sending its remaining bytes via plain send rather than re-sending the fds
// (ancillary data only accompanies the first byte of a sendmsg).
func (c *Conn) Flush() error {
	for len(c.outbound) > 0 {
		f := &c.outbound[0]
		var n int
		var err error
		if f.sent == 0 && len(f.fds) > 0 {
			oob := unix.UnixRights(f.fds...)
			n, _, err = unix.Sendmsg(c.fd, f.data, oob, nil, 0)
		} else {
			n, err = unix.Write(c.fd, f.data[f.sent:])
		}
		if err != nil {
			return classify("sendmsg", err)
		}
		f.sent += n
		if f.sent >= len(f.data) {
			closeFDs(f.fds)
			c.outbound = c.outbound[1:]
			continue
		}
		// Partial send: kernel accepted some bytes but not all; try again
		// on the next Flush call rather than spinning here.
		return ErrWouldBlock
	}
	return nil
}

func closeFDs(fds []int) {
	for _, fd := range fds {
		unix.Close(fd)
	}
}

// RecvOnce performs a single recvmsg(2) sized for about one frame's worth
// of payload plus CMSG space for a burst of file descriptors. Bytes and
// FDs are appended to the inbound buffers; callers then read InboundBytes
// and drain complete frames with ConsumeFrame. Returns ErrWouldBlock on EAGAIN, and
// io.EOF-shaped TransportError if the peer closed the connection.
func (c *Conn) RecvOnce() error {
	buf := make([]byte, recvBufSize)
	oob := make([]byte, unix.CmsgSpace(maxFDsPerRecv*4))
	n, oobn, _, _, err := unix.Recvmsg(c.fd, buf, oob, 0)
	if err != nil {
		return classify("recvmsg", err)
	}
	if n == 0 {
		return &TransportError{Op: "recvmsg", Err: errors.New("peer closed connection")}
	}
	c.inbound = append(c.inbound, buf[:n]...)
	if oobn > 0 {
		fds, err := parseRights(oob[:oobn])
		if err != nil {
			return fmt.Errorf("sockconn: parsing ancillary data: %w", err)
		}
		c.inboundFDs = append(c.inboundFDs, fds...)
	}
	return nil
}

func parseRights(oob []byte) ([]int, error) {
	msgs, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return nil, err
	}
	var fds []int
	for _, m := range msgs {
		rights, err := unix.ParseUnixRights(&m)
		if err != nil {
			return nil, err
		}
		fds = append(fds, rights...)
	}
	return fds, nil
}

// InboundBytes returns the currently buffered, not-yet-consumed inbound
// byte suffix.
func (c *Conn) InboundBytes() []byte { return c.inbound }

// InboundFDs returns the currently buffered, not-yet-consumed inbound FD
// queue.
func (c *Conn) InboundFDs() []int { return c.inboundFDs }

// ConsumeFrame removes the first n bytes and the first k file descriptors
// from the inbound buffers, once a caller has finished decoding a frame
// that used them. The unconsumed suffix (a partial next frame) is
// preserved for the next RecvOnce.
func (c *Conn) ConsumeFrame(n, k int) {
	c.inbound = c.inbound[n:]
	c.inboundFDs = c.inboundFDs[k:]
}

// Close releases the socket and closes any FDs still queued for send or
// still pending in the inbound queue (never handed to a decoder).
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	for _, f := range c.outbound {
		closeFDs(f.fds)
	}
	c.outbound = nil
	closeFDs(c.inboundFDs)
	c.inboundFDs = nil
	return unix.Close(c.fd)
}
