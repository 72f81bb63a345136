package usbcore

// ControlResponse is how a standard request handler or a RequestsHook
// tells the EP0 state machine what to do next. It is the Go rendering of
// the "transfer setup helper" contract: a handler that accepts a request
// populates a reply (or an expected OUT length) and an optional
// completion callback; a handler that cannot or will not answer returns
// the zero value, which stalls EP0.
type ControlResponse struct {
	accept   bool
	data     []byte
	length   int
	callback func(d *Driver)
}

// Accept builds a DEV2HOST response carrying data as the IN payload. The
// EP0 state machine clamps the transmitted length to wLength.
func Accept(data []byte) ControlResponse {
	return ControlResponse{accept: true, data: data, length: len(data)}
}

// AcceptOut builds a HOST2DEV response expecting n bytes in the OUT data
// stage. The received bytes are available from Driver.ControlData inside
// the optional callback registered with WithCallback.
func AcceptOut(n int) ControlResponse {
	return ControlResponse{accept: true, length: n}
}

// AcceptStatusOnly builds a response with no data stage: a zero-length
// status packet in whichever direction the request's direction bit did
// not already claim.
func AcceptStatusOnly() ControlResponse {
	return ControlResponse{accept: true}
}

// Reject builds a response that stalls EP0 and fires EventStalled.
func Reject() ControlResponse {
	return ControlResponse{}
}

// WithCallback attaches a completion callback invoked once the data and
// status stages finish. The callback runs synchronously from the same
// context as the completing LLD callback and must not re-enter the
// driver's EP0 methods.
func (r ControlResponse) WithCallback(cb func(d *Driver)) ControlResponse {
	r.callback = cb
	return r
}
