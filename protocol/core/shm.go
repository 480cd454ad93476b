package core

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/bnema/wlcore/wire"
	"github.com/bnema/wlcore/wl"
)

// Pixel formats, matching the wl_shm.format enum values for the two
// formats every compositor is required to support (these two are 0 and 1,
// not fourcc codes like the rest of the enum).
const (
	ShmFormatARGB8888 uint32 = 0
	ShmFormatXRGB8888 uint32 = 1
)

var ShmInterface = &wl.Interface{
	Name:    "wl_shm",
	Version: 1,
	Requests: []wl.Signature{
		{Name: "create_pool", Args: []wire.ArgType{wire.ArgNewID, wire.ArgFD, wire.ArgInt}},
	},
	Events: []wl.Signature{
		{Name: "format", Args: []wire.ArgType{wire.ArgUint}},
	},
}

const (
	shmRequestCreatePool uint16 = 0
	shmEventFormat       uint16 = 0
)

type ClientShm struct {
	wl.Proxy

	OnFormat func(format uint32)
}

func NewClientShm(ctx *wl.Context, id wl.ObjectID, version uint32) *ClientShm {
	return &ClientShm{Proxy: wl.NewProxy(ctx, id, ShmInterface, version)}
}

// CreatePool shares fd (already sized to size bytes, e.g. via memfd_create
// and ftruncate) as the backing store for a new pool.
func (s *ClientShm) CreatePool(fd int, size int32) (*ClientShmPool, error) {
	ctx := s.Context()
	id, err := ctx.Alloc()
	if err != nil {
		return nil, err
	}
	pool := NewClientShmPool(ctx, id, s.Version())
	if err := ctx.Register(id, pool); err != nil {
		return nil, err
	}
	err = s.SendRequest(shmRequestCreatePool, []wire.Arg{
		{Type: wire.ArgNewID, NewID: id},
		{Type: wire.ArgFD, Fd: fd},
		{Type: wire.ArgInt, Int: size},
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}

func (s *ClientShm) Dispatch(ev wl.Event) error {
	if ev.Opcode == shmEventFormat && s.OnFormat != nil {
		s.OnFormat(ev.Uint(0))
	}
	return nil
}

type ServerShm struct {
	wl.Resource

	OnCreatePool func(id wl.ObjectID, fd int, size int32) error
}

func NewServerShm(ctx *wl.Context, id wl.ObjectID, version uint32) *ServerShm {
	return &ServerShm{Resource: wl.NewResource(ctx, id, ShmInterface, version)}
}

func (s *ServerShm) SendFormat(format uint32) error {
	return s.Resource.SendEvent(shmEventFormat, []wire.Arg{{Type: wire.ArgUint, Uint: format}})
}

func (s *ServerShm) Dispatch(ev wl.Event) error {
	if ev.Opcode == shmRequestCreatePool && s.OnCreatePool != nil {
		return s.OnCreatePool(ev.NewID(0), ev.FD(1), ev.Int(2))
	}
	return nil
}

var ShmPoolInterface = &wl.Interface{
	Name:    "wl_shm_pool",
	Version: 1,
	Requests: []wl.Signature{
		{Name: "create_buffer", Args: []wire.ArgType{wire.ArgNewID, wire.ArgInt, wire.ArgInt, wire.ArgInt, wire.ArgInt, wire.ArgUint}},
		{Name: "destroy", Args: nil},
		{Name: "resize", Args: []wire.ArgType{wire.ArgInt}},
	},
}

const (
	shmPoolRequestCreateBuffer uint16 = 0
	shmPoolRequestDestroy      uint16 = 1
	shmPoolRequestResize       uint16 = 2
)

type ClientShmPool struct {
	wl.Proxy
}

func NewClientShmPool(ctx *wl.Context, id wl.ObjectID, version uint32) *ClientShmPool {
	return &ClientShmPool{Proxy: wl.NewProxy(ctx, id, ShmPoolInterface, version)}
}

func (p *ClientShmPool) CreateBuffer(offset, width, height, stride int32, format uint32) (*ClientBuffer, error) {
	ctx := p.Context()
	id, err := ctx.Alloc()
	if err != nil {
		return nil, err
	}
	buf := NewClientBuffer(ctx, id, p.Version())
	if err := ctx.Register(id, buf); err != nil {
		return nil, err
	}
	err = p.SendRequest(shmPoolRequestCreateBuffer, []wire.Arg{
		{Type: wire.ArgNewID, NewID: id},
		{Type: wire.ArgInt, Int: offset}, {Type: wire.ArgInt, Int: width},
		{Type: wire.ArgInt, Int: height}, {Type: wire.ArgInt, Int: stride},
		{Type: wire.ArgUint, Uint: format},
	})
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (p *ClientShmPool) Resize(size int32) error {
	return p.SendRequest(shmPoolRequestResize, []wire.Arg{{Type: wire.ArgInt, Int: size}})
}

func (p *ClientShmPool) Destroy() error {
	if err := p.SendRequest(shmPoolRequestDestroy, nil); err != nil {
		return err
	}
	return p.Context().Unregister(p.ID())
}

func (p *ClientShmPool) Dispatch(wl.Event) error { return nil }

// ServerShmPool owns the mmap of the client-shared fd. Teardown is the
// open question the distilled spec left unresolved: a pool's backing
// mapping is only munmapped once BOTH the client has sent destroy AND
// every buffer created from it has been released, since buffers keep
// reading from the mapping after the pool itself is nominally gone. mu
// serializes Destroy, releaseBuffer, and Resize against each other — all
// three can run from request dispatch on the same connection goroutine,
// but keeping the invariant explicit here instead of leaning on "it's all
// single-threaded" avoids a latent bug if that ever changes.
type ServerShmPool struct {
	wl.Resource

	mu          sync.Mutex
	fd          int
	size        int32
	data        []byte
	destroyed   bool
	liveBuffers int
}

func NewServerShmPool(ctx *wl.Context, id wl.ObjectID, version uint32, fd int, size int32) (*ServerShmPool, error) {
	data, err := unix.Mmap(fd, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("core: mmap shm pool: %w", err)
	}
	return &ServerShmPool{
		Resource: wl.NewResource(ctx, id, ShmPoolInterface, version),
		fd:       fd,
		size:     size,
		data:     data,
	}, nil
}

// Bytes returns the pool's current mapping. It is nil once the mapping
// has been torn down.
func (p *ServerShmPool) Bytes() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data
}

// maybeUnmap releases the mapping once both teardown conditions hold.
// Callers must hold mu.
func (p *ServerShmPool) maybeUnmap() {
	if p.destroyed && p.liveBuffers == 0 && p.data != nil {
		unix.Munmap(p.data)
		p.data = nil
		unix.Close(p.fd)
	}
}

func (p *ServerShmPool) createBuffer(ctx *wl.Context, id wl.ObjectID, offset, width, height, stride int32, format uint32) *ServerBuffer {
	p.mu.Lock()
	p.liveBuffers++
	p.mu.Unlock()
	return &ServerBuffer{
		Resource: wl.NewResource(ctx, id, BufferInterface, p.Version()),
		pool:     p,
		offset:   offset, width: width, height: height, stride: stride, format: format,
	}
}

func (p *ServerShmPool) releaseBuffer() {
	p.mu.Lock()
	p.liveBuffers--
	p.maybeUnmap()
	p.mu.Unlock()
}

// resize re-maps the pool to a larger size: the old mapping is explicitly
// munmapped before the new one is established, rather than relying on
// mremap, since the fd itself (already grown by the client via
// ftruncate) is the single source of truth for the new extent.
func (p *ServerShmPool) resize(newSize int32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.destroyed {
		return fmt.Errorf("core: resize on destroyed shm pool")
	}
	if err := unix.Munmap(p.data); err != nil {
		return fmt.Errorf("core: munmap before resize: %w", err)
	}
	p.data = nil
	data, err := unix.Mmap(p.fd, 0, int(newSize), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return fmt.Errorf("core: mmap after resize: %w", err)
	}
	p.data = data
	p.size = newSize
	return nil
}

func (p *ServerShmPool) destroy() {
	p.mu.Lock()
	p.destroyed = true
	p.maybeUnmap()
	p.mu.Unlock()
}

func (p *ServerShmPool) Dispatch(ev wl.Event) error {
	switch ev.Opcode {
	case shmPoolRequestCreateBuffer:
		ctx := p.Context()
		id := ev.NewID(0)
		buf := p.createBuffer(ctx, id, ev.Int(1), ev.Int(2), ev.Int(3), ev.Int(4), ev.Uint(5))
		return ctx.Register(id, buf)
	case shmPoolRequestDestroy:
		p.destroy()
		return p.Context().Unregister(p.ID())
	case shmPoolRequestResize:
		return p.resize(ev.Int(0))
	}
	return nil
}

var BufferInterface = &wl.Interface{
	Name:    "wl_buffer",
	Version: 1,
	Requests: []wl.Signature{
		{Name: "destroy", Args: nil},
	},
	Events: []wl.Signature{
		{Name: "release", Args: nil},
	},
}

const (
	bufferRequestDestroy uint16 = 0
	bufferEventRelease   uint16 = 0
)

type ClientBuffer struct {
	wl.Proxy

	OnRelease func()
}

func NewClientBuffer(ctx *wl.Context, id wl.ObjectID, version uint32) *ClientBuffer {
	return &ClientBuffer{Proxy: wl.NewProxy(ctx, id, BufferInterface, version)}
}

func (b *ClientBuffer) Destroy() error {
	if err := b.SendRequest(bufferRequestDestroy, nil); err != nil {
		return err
	}
	return b.Context().Unregister(b.ID())
}

func (b *ClientBuffer) Dispatch(ev wl.Event) error {
	if ev.Opcode == bufferEventRelease && b.OnRelease != nil {
		b.OnRelease()
	}
	return nil
}

// ServerBuffer is a view onto a region of its pool's mapping. It does not
// outlive a Destroy request releasing the pool's reference count (see
// ServerShmPool's teardown rule above).
type ServerBuffer struct {
	wl.Resource

	pool                         *ServerShmPool
	offset, width, height, stride int32
	format                        uint32
}

// Pixels returns this buffer's slice of its pool's mapping, or nil if the
// pool has already been fully torn down.
func (b *ServerBuffer) Pixels() []byte {
	data := b.pool.Bytes()
	if data == nil {
		return nil
	}
	n := int(b.stride) * int(b.height)
	if int(b.offset)+n > len(data) {
		return nil
	}
	return data[b.offset : int(b.offset)+n]
}

func (b *ServerBuffer) Width() int32  { return b.width }
func (b *ServerBuffer) Height() int32 { return b.height }
func (b *ServerBuffer) Stride() int32 { return b.stride }
func (b *ServerBuffer) Format() uint32 { return b.format }

func (b *ServerBuffer) SendRelease() error {
	return b.Resource.SendEvent(bufferEventRelease, nil)
}

func (b *ServerBuffer) Dispatch(ev wl.Event) error {
	if ev.Opcode == bufferRequestDestroy {
		b.pool.releaseBuffer()
		return b.Context().Unregister(b.ID())
	}
	return nil
}
