package usbloopback

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/usbcore/usbcore"
	"github.com/ardnew/usbcore/usberr"
)

// endpointState is the loopback's per-endpoint, per-direction bookkeeping.
type endpointState struct {
	initialized bool
	statusIn    usbcore.EndpointStatus
	statusOut   usbcore.EndpointStatus

	armedOut []byte // buffer supplied to the outstanding StartOut, nil if none armed
	lastIn   []byte // most recent buffer handed to StartIn or WritePacket
	lastOut  []byte // most recent bytes delivered into an armed StartOut or ReadPacket
}

// LLD is an in-memory usbcore.LLD. The zero value is not usable; construct
// with New. A single LLD simulates one peripheral controller; use InjectSetup
// and InjectOut to play the part of the host driving the bus.
type LLD struct {
	mu     sync.Mutex
	driver *usbcore.Driver
	ep     []endpointState
	address uint8

	group  *errgroup.Group
	cancel context.CancelFunc
	events chan func()
}

// New creates an LLD sized to hold maxEndpoints non-zero endpoints plus EP0.
func New(maxEndpoints uint8) *LLD {
	return &LLD{
		ep: make([]endpointState, int(maxEndpoints)+1),
	}
}

// Init performs no one-time setup; the loopback has no real hardware to
// bring up.
func (l *LLD) Init() error { return nil }

// Start records d and starts the single worker goroutine that delivers
// completions asynchronously, the way an interrupt handler would.
func (l *LLD) Start(d *usbcore.Driver) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.driver = d
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	g, gctx := errgroup.WithContext(ctx)
	l.group = g
	l.events = make(chan func(), 64)
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case fn := <-l.events:
				fn()
			}
		}
	})
	return nil
}

// Stop halts the worker goroutine and waits for it to exit.
func (l *LLD) Stop(d *usbcore.Driver) error {
	l.mu.Lock()
	cancel := l.cancel
	g := l.group
	l.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if g != nil {
		return g.Wait()
	}
	return nil
}

// Reset clears every endpoint's bookkeeping, mirroring a real controller's
// bus-reset behavior of dropping all in-flight transfers.
func (l *LLD) Reset(d *usbcore.Driver) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.ep {
		l.ep[i] = endpointState{}
	}
	l.address = 0
	return nil
}

// SetAddress records the address the driver has committed.
func (l *LLD) SetAddress(d *usbcore.Driver) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.address = d.Address()
	return nil
}

// InitEndpoint marks ep initialized and active in both directions.
func (l *LLD) InitEndpoint(d *usbcore.Driver, ep uint8) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if int(ep) >= len(l.ep) {
		return usberr.ErrInvalidEndpoint
	}
	l.ep[ep] = endpointState{
		initialized: true,
		statusIn:    usbcore.EndpointStatusActive,
		statusOut:   usbcore.EndpointStatusActive,
	}
	return nil
}

// DisableEndpoints clears every non-zero endpoint's bookkeeping.
func (l *LLD) DisableEndpoints(d *usbcore.Driver) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ep := 1; ep < len(l.ep); ep++ {
		l.ep[ep] = endpointState{}
	}
	return nil
}

// StartIn records buf as the endpoint's last transmitted packet and
// schedules the driver's completion callback on the worker goroutine.
func (l *LLD) StartIn(d *usbcore.Driver, ep uint8, buf []byte) error {
	l.mu.Lock()
	if int(ep) >= len(l.ep) {
		l.mu.Unlock()
		return usberr.ErrInvalidEndpoint
	}
	cp := append([]byte(nil), buf...)
	l.ep[ep].lastIn = cp
	l.mu.Unlock()

	l.post(func() {
		if ep == 0 {
			d.EP0InComplete()
		} else {
			d.NonEP0InComplete(ep, nil)
		}
	})
	return nil
}

// StartOut arms the endpoint to receive into buf. If data was already
// injected via InjectOut and is waiting, the transfer completes
// immediately (still asynchronously, via the worker goroutine); otherwise
// it completes the next time InjectOut is called for this endpoint.
func (l *LLD) StartOut(d *usbcore.Driver, ep uint8, buf []byte) error {
	l.mu.Lock()
	if int(ep) >= len(l.ep) {
		l.mu.Unlock()
		return usberr.ErrInvalidEndpoint
	}
	state := &l.ep[ep]
	if state.lastOut != nil {
		pending := state.lastOut
		n := copy(buf, pending)
		state.lastOut = pending[:n]
		l.mu.Unlock()
		l.post(func() { l.completeOut(d, ep, n) })
		return nil
	}
	if buf == nil {
		// A zero-length arm (such as an EP0 status stage) still counts as
		// armed; armedOut == nil is reserved for "nothing armed".
		buf = []byte{}
	}
	state.armedOut = buf
	l.mu.Unlock()
	return nil
}

// ReadPacket copies the endpoint's most recently received packet into buf.
func (l *LLD) ReadPacket(d *usbcore.Driver, ep uint8, buf []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if int(ep) >= len(l.ep) {
		return 0, usberr.ErrInvalidEndpoint
	}
	return copy(buf, l.ep[ep].lastOut), nil
}

// WritePacket records buf as the endpoint's last transmitted packet without
// arming a completion callback.
func (l *LLD) WritePacket(d *usbcore.Driver, ep uint8, buf []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if int(ep) >= len(l.ep) {
		return usberr.ErrInvalidEndpoint
	}
	l.ep[ep].lastIn = append([]byte(nil), buf...)
	return nil
}

// StallIn halts the endpoint's IN side.
func (l *LLD) StallIn(d *usbcore.Driver, ep uint8) error {
	return l.setStatus(ep, true, usbcore.EndpointStatusStalled)
}

// StallOut halts the endpoint's OUT side.
func (l *LLD) StallOut(d *usbcore.Driver, ep uint8) error {
	return l.setStatus(ep, false, usbcore.EndpointStatusStalled)
}

// ClearIn clears the endpoint's IN halt condition.
func (l *LLD) ClearIn(d *usbcore.Driver, ep uint8) error {
	return l.setStatus(ep, true, usbcore.EndpointStatusActive)
}

// ClearOut clears the endpoint's OUT halt condition.
func (l *LLD) ClearOut(d *usbcore.Driver, ep uint8) error {
	return l.setStatus(ep, false, usbcore.EndpointStatusActive)
}

// StatusIn reports the endpoint's IN halt state.
func (l *LLD) StatusIn(d *usbcore.Driver, ep uint8) usbcore.EndpointStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	if int(ep) >= len(l.ep) {
		return usbcore.EndpointStatusDisabled
	}
	return l.ep[ep].statusIn
}

// StatusOut reports the endpoint's OUT halt state.
func (l *LLD) StatusOut(d *usbcore.Driver, ep uint8) usbcore.EndpointStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	if int(ep) >= len(l.ep) {
		return usbcore.EndpointStatusDisabled
	}
	return l.ep[ep].statusOut
}

// InjectSetup plays the part of the host sending a SETUP token, delivering
// it to the driver asynchronously from the worker goroutine.
func (l *LLD) InjectSetup(raw [8]byte) {
	l.mu.Lock()
	d := l.driver
	l.mu.Unlock()
	l.post(func() { d.EP0SetupReceived(raw) })
}

// InjectOut plays the part of the host sending OUT data on ep. If a
// StartOut is already armed for ep, the transfer completes immediately;
// otherwise the data is held until the next StartOut arms it.
func (l *LLD) InjectOut(ep uint8, data []byte) {
	l.mu.Lock()
	d := l.driver
	if int(ep) >= len(l.ep) {
		l.mu.Unlock()
		return
	}
	state := &l.ep[ep]
	if state.armedOut != nil {
		buf := state.armedOut
		state.armedOut = nil
		n := copy(buf, data)
		state.lastOut = append([]byte(nil), buf[:n]...)
		l.mu.Unlock()
		l.post(func() { l.completeOut(d, ep, n) })
		return
	}
	state.lastOut = append([]byte(nil), data...)
	l.mu.Unlock()
}

// Sync blocks until every completion posted before this call has been
// delivered to the driver, by enqueuing a marker behind them on the same
// single-consumer worker goroutine and waiting for it to run.
func (l *LLD) Sync() {
	done := make(chan struct{})
	l.post(func() { close(done) })
	<-done
}

// LastTransmitted returns the most recent buffer handed to StartIn or
// WritePacket on ep, for test assertions.
func (l *LLD) LastTransmitted(ep uint8) []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	if int(ep) >= len(l.ep) {
		return nil
	}
	return l.ep[ep].lastIn
}

func (l *LLD) completeOut(d *usbcore.Driver, ep uint8, n int) {
	if ep == 0 {
		d.EP0OutComplete(n)
	} else {
		d.NonEP0OutComplete(ep, n, nil)
	}
}

func (l *LLD) setStatus(ep uint8, in bool, status usbcore.EndpointStatus) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if int(ep) >= len(l.ep) {
		return usberr.ErrInvalidEndpoint
	}
	if in {
		l.ep[ep].statusIn = status
	} else {
		l.ep[ep].statusOut = status
	}
	return nil
}

func (l *LLD) post(fn func()) {
	l.mu.Lock()
	events := l.events
	l.mu.Unlock()
	if events == nil {
		fn()
		return
	}
	events <- fn
}
