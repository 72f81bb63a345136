package usbcore

// AddressMode selects when a newly assigned USB address is committed to
// the LLD relative to the SET_ADDRESS control transfer's status stage.
type AddressMode uint8

// Address modes.
const (
	// AddressModeLate commits the address once the status-stage IN for
	// SET_ADDRESS completes, guaranteeing the host's status ACK was sent
	// from the old address. This is the mode most USB peripheral
	// controllers require.
	AddressModeLate AddressMode = iota
	// AddressModeEarly commits the address during the standard request
	// handler, before the status stage begins. Some controllers latch
	// the address register immediately and need this instead.
	AddressModeEarly
)

// defaultMaxEndpoints and defaultEP0MaxPacketSize match typical full-speed
// peripheral controllers in the absence of an explicit option.
const (
	defaultMaxEndpoints     = 7
	defaultEP0MaxPacketSize = 64
)

type driverOptions struct {
	addressMode      AddressMode
	maxEndpoints     uint8
	ep0MaxPacketSize uint16
	selfPowered      bool
}

func defaultOptions() driverOptions {
	return driverOptions{
		addressMode:      AddressModeLate,
		maxEndpoints:     defaultMaxEndpoints,
		ep0MaxPacketSize: defaultEP0MaxPacketSize,
	}
}

// Option configures a Driver at construction time. These stand in for the
// compile-time USB_SET_ADDRESS_MODE / USB_MAX_ENDPOINTS options of the
// driver this package is modeled on, since Go has no preprocessor.
type Option func(*driverOptions)

// WithAddressMode selects the SET_ADDRESS commit timing. The default is
// AddressModeLate.
func WithAddressMode(mode AddressMode) Option {
	return func(o *driverOptions) { o.addressMode = mode }
}

// WithMaxEndpoints sets the highest non-zero endpoint index the driver
// will accept in InitEndpoint. The default is 7.
func WithMaxEndpoints(n uint8) Option {
	return func(o *driverOptions) { o.maxEndpoints = n }
}

// WithEP0MaxPacketSize sets EP0's max packet size, used for zero-length
// packet termination decisions. The default is 64.
func WithEP0MaxPacketSize(n uint16) Option {
	return func(o *driverOptions) { o.ep0MaxPacketSize = n }
}

// WithSelfPowered marks the device as self-powered in GET_STATUS(Device)
// responses. The default is bus-powered.
func WithSelfPowered(b bool) Option {
	return func(o *driverOptions) { o.selfPowered = b }
}
