package usbcore

// EndpointStatus reports the halt state of one direction of an endpoint,
// as queried from the LLD for ENDPOINT GET_STATUS.
type EndpointStatus uint8

// Endpoint status values.
const (
	EndpointStatusDisabled EndpointStatus = iota
	EndpointStatusActive
	EndpointStatusStalled
)

// LLD is the hardware capability set the core driver depends on. A
// concrete implementation owns the USB controller's registers and
// endpoint FIFOs; usbcore never accesses hardware except through this
// interface. Every method is invoked synchronously from whatever context
// the driver method that called it runs in, and must not block.
type LLD interface {
	// Init performs one-time, process-wide hardware setup.
	Init() error
	// Start brings the controller out of reset and ready to enumerate.
	Start(d *Driver) error
	// Stop powers down or disconnects the controller.
	Stop(d *Driver) error
	// Reset reinitializes hardware state after a bus reset.
	Reset(d *Driver) error
	// SetAddress commits d.Address() to the USB address register.
	SetAddress(d *Driver) error
	// InitEndpoint configures endpoint ep's hardware resources from the
	// configuration most recently installed via Driver.InitEndpoint.
	InitEndpoint(d *Driver, ep uint8) error
	// DisableEndpoints tears down every non-zero endpoint's hardware
	// resources in one call.
	DisableEndpoints(d *Driver) error
	// StartIn arms endpoint ep's IN side to transmit buf. A nil or empty
	// buf arms a zero-length packet. Completion is reported later via
	// Driver.EP0InComplete (ep==0) or Driver.NonEP0InComplete.
	StartIn(d *Driver, ep uint8, buf []byte) error
	// StartOut arms endpoint ep's OUT side to receive up to len(buf)
	// bytes into buf. Completion is reported later via
	// Driver.EP0OutComplete (ep==0) or Driver.NonEP0OutComplete.
	StartOut(d *Driver, ep uint8, buf []byte) error
	// ReadPacket synchronously copies one already-received packet from
	// endpoint ep into buf, returning the number of bytes copied.
	ReadPacket(d *Driver, ep uint8, buf []byte) (int, error)
	// WritePacket synchronously hands one packet to endpoint ep's
	// transmit FIFO.
	WritePacket(d *Driver, ep uint8, buf []byte) error
	// StallIn / StallOut halt one direction of an endpoint.
	StallIn(d *Driver, ep uint8) error
	StallOut(d *Driver, ep uint8) error
	// ClearIn / ClearOut clear a halt condition and reset data toggle.
	ClearIn(d *Driver, ep uint8) error
	ClearOut(d *Driver, ep uint8) error
	// StatusIn / StatusOut report the current halt state of one direction.
	StatusIn(d *Driver, ep uint8) EndpointStatus
	StatusOut(d *Driver, ep uint8) EndpointStatus
}

// Event identifies one of the three notifications the driver delivers to
// the application via Config.EventCB.
type Event uint8

// Event values.
const (
	// EventAddress fires once the new device address has been committed
	// to hardware (timing depends on the configured AddressMode).
	EventAddress Event = iota
	// EventConfigured fires on every SET_CONFIGURATION, including a
	// request to deselect the configuration (value 0).
	EventConfigured
	// EventStalled fires whenever EP0 is stalled due to a protocol error.
	EventStalled
)

// DescriptorEncoding tells the core how to render a Descriptor's Bytes
// into a GET_DESCRIPTOR response.
type DescriptorEncoding uint8

// Descriptor encodings.
const (
	// EncodingRaw means Bytes is already a complete descriptor, header
	// included, ready to copy to the wire as-is.
	EncodingRaw DescriptorEncoding = iota
	// EncodingUTF16String means Bytes holds a UTF-16LE-encoded string
	// payload without the two-byte descriptor header; the core
	// synthesizes the header before replying.
	EncodingUTF16String
)

// Descriptor is the opaque response returned by Config.GetDescriptor.
type Descriptor struct {
	Bytes    []byte
	Encoding DescriptorEncoding
}

// RequestsHook lets the application intercept any SETUP packet before the
// built-in standard request handler runs. The returned bool reports
// whether the hook handled the request at all; if true, the returned
// ControlResponse's Accept state is final — the standard handler never
// runs, even for a Standard request. If false, dispatch proceeds to the
// standard handler for Standard requests and stalls for Class/Vendor
// requests the hook has declined.
type RequestsHook func(d *Driver, setup SetupPacket) (ControlResponse, bool)

// Config carries the application-supplied collaborators the core calls
// out to. A zero Config is valid: GetDescriptor absent means every
// GET_DESCRIPTOR stalls, RequestsHook absent means every Standard SETUP
// goes straight to the standard handler and every Class/Vendor SETUP
// stalls, and EventCB absent means events are simply not delivered.
type Config struct {
	// GetDescriptor answers GET_DESCRIPTOR. dtype/dindex/langID come
	// directly from the SETUP packet's wValue/wIndex fields. ok=false
	// stalls the request.
	GetDescriptor func(dtype, dindex uint8, langID uint16) (desc Descriptor, ok bool)
	// RequestsHook optionally intercepts SETUP packets; see [RequestsHook].
	RequestsHook RequestsHook
	// EventCB receives driver-level notifications; see [Event].
	EventCB func(d *Driver, ev Event)
}
