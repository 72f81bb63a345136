package usbcore

import (
	"sync"

	"github.com/ardnew/usbcore/usberr"
	"github.com/ardnew/usbcore/usblog"
	"go.uber.org/multierr"
)

// State is the driver's lifecycle state.
type State uint8

// Lifecycle states.
const (
	StateStop State = iota
	StateReady
	StateSelected
	StateActive
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateStop:
		return "STOP"
	case StateReady:
		return "READY"
	case StateSelected:
		return "SELECTED"
	case StateActive:
		return "ACTIVE"
	default:
		return "UNKNOWN"
	}
}

// EP0State is the endpoint-0 control transfer phase.
type EP0State uint8

// EP0 phases.
const (
	EP0WaitingSetup EP0State = iota
	EP0TX
	EP0RX
	EP0WaitingSts
	EP0SendingSts
)

// String returns a human-readable phase name.
func (s EP0State) String() string {
	switch s {
	case EP0WaitingSetup:
		return "WAITING_SETUP"
	case EP0TX:
		return "TX"
	case EP0RX:
		return "RX"
	case EP0WaitingSts:
		return "WAITING_STS"
	case EP0SendingSts:
		return "SENDING_STS"
	default:
		return "UNKNOWN"
	}
}

// DirectionConfig describes one direction of an endpoint: its maximum
// packet size and the callback that delivers completion notifications
// for transfers started through the non-EP0 transfer surface.
type DirectionConfig struct {
	MaxPacketSize uint16
	Callback      func(d *Driver, ep uint8, n int, err error)
}

// EndpointConfig configures a non-EP0 endpoint slot.
type EndpointConfig struct {
	In  DirectionConfig
	Out DirectionConfig
}

// endpointSlot is the per-endpoint runtime state the driver table holds.
type endpointSlot struct {
	config       *EndpointConfig
	transmitting bool
	receiving    bool
	rxsize       int
}

// Driver is one USB peripheral's upper-half state machine. The zero value
// is not usable; construct with New.
type Driver struct {
	mu   sync.Mutex
	lld  LLD
	cfg  Config
	opts driverOptions

	state    State
	ep0state EP0State

	setup         [8]byte
	address       uint8
	configuration uint8
	status        uint16

	ep []endpointSlot

	ep0next       []byte
	ep0n          int
	ep0wLength    uint16
	ep0endcb      func(d *Driver)
	ep0zlpPending bool
	ep0received   []byte

	ep0rxBuf    [MaxControlDataSize]byte
	descRespBuf [MaxControlDataSize]byte
	statusBuf   [2]byte
	configBuf   [1]byte
}

// New creates a driver bound to lld, in StateStop, ready for Start.
// object_init's job (zeroing fields, nulling the config) is done here
// since Go guarantees a freshly allocated Driver is already zeroed.
func New(lld LLD, opts ...Option) *Driver {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Driver{
		lld:  lld,
		opts: o,
		ep:   make([]endpointSlot, int(o.maxEndpoints)+1),
	}
}

// State returns the current lifecycle state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// EP0State returns the current EP0 control transfer phase.
func (d *Driver) EP0State() EP0State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ep0state
}

// Address returns the currently committed USB device address.
func (d *Driver) Address() uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.address
}

// Configuration returns the most recently selected configuration number
// (0 if unconfigured).
func (d *Driver) Configuration() uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.configuration
}

// Status returns the raw device status word.
func (d *Driver) Status() uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// ControlData returns the bytes most recently received in an EP0 OUT
// data stage. Valid only when called from within a ControlResponse
// completion callback.
func (d *Driver) ControlData() []byte {
	return d.ep0received
}

// Start attaches cfg and brings the driver from STOP or READY to READY,
// under the driver's critical section. It mirrors usbStart/usbObjectInit
// collapsed into one call, since Go has no separate allocation step to
// split them across.
func (d *Driver) Start(cfg Config) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateStop && d.state != StateReady {
		return usberr.ErrInvalidState
	}
	d.cfg = cfg
	for i := range d.ep {
		d.ep[i] = endpointSlot{}
	}
	if err := d.lld.Start(d); err != nil {
		return err
	}
	d.state = StateReady
	usblog.Info(usblog.ComponentLifecycle, "driver started")
	return nil
}

// Stop tears the driver down to STOP, under the driver's critical
// section.
func (d *Driver) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateStop && d.state != StateReady {
		return usberr.ErrInvalidState
	}
	err := d.lld.Stop(d)
	d.state = StateStop
	usblog.Info(usblog.ComponentLifecycle, "driver stopped")
	return err
}

// Reset is invoked by the LLD on a bus reset. It returns the driver to
// READY, clears address/configuration/status, nulls every endpoint slot,
// reinstalls EP0's slot with the configured EP0 max packet size, rearms
// the EP0 state machine, and then calls LLD.Reset.
func (d *Driver) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = StateReady
	d.status = 0
	if d.opts.selfPowered {
		d.status |= deviceStatusSelfPowered
	}
	d.address = 0
	d.configuration = 0
	for i := range d.ep {
		d.ep[i] = endpointSlot{}
	}
	d.ep[0] = endpointSlot{config: &EndpointConfig{
		In:  DirectionConfig{MaxPacketSize: d.opts.ep0MaxPacketSize},
		Out: DirectionConfig{MaxPacketSize: d.opts.ep0MaxPacketSize},
	}}
	d.ep0state = EP0WaitingSetup
	d.ep0zlpPending = false
	usblog.Info(usblog.ComponentLifecycle, "bus reset")
	return d.lld.Reset(d)
}

// InitEndpoint installs cfg into endpoint slot ep. Precondition:
// state==ACTIVE and the slot is not already bound — the slot must be nil,
// not non-nil, before this call; see SPEC_FULL.md §4.7 for why this is
// the correct reading of the source precondition this driver is modeled on.
func (d *Driver) InitEndpoint(ep uint8, cfg *EndpointConfig) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateActive {
		return usberr.ErrInvalidState
	}
	if int(ep) >= len(d.ep) || ep == 0 {
		return usberr.ErrInvalidEndpoint
	}
	if d.ep[ep].config != nil {
		return usberr.ErrEndpointInUse
	}
	d.ep[ep] = endpointSlot{config: cfg}
	return d.lld.InitEndpoint(d, ep)
}

// DisableEndpoints clears every non-zero endpoint slot. Precondition:
// state==SELECTED. Any per-endpoint teardown failures from the LLD are
// aggregated rather than short-circuited, so a failure on one endpoint
// does not prevent the others from being torn down.
func (d *Driver) DisableEndpoints() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateSelected {
		return usberr.ErrInvalidState
	}
	var errs error
	for ep := 1; ep < len(d.ep); ep++ {
		slot := &d.ep[ep]
		if slot.config != nil {
			if err := d.lld.ClearIn(d, uint8(ep)); err != nil {
				errs = multierr.Append(errs, err)
			}
			if err := d.lld.ClearOut(d, uint8(ep)); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
		*slot = endpointSlot{}
	}
	if err := d.lld.DisableEndpoints(d); err != nil {
		errs = multierr.Append(errs, err)
	}
	return errs
}
