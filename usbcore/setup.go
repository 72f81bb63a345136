package usbcore

import "encoding/binary"

// SetupPacket is the decoded form of the 8-byte SETUP token (USB 2.0
// Table 9-2). The core decodes it once, eagerly, rather than re-reading
// the raw bytes throughout dispatch.
type SetupPacket struct {
	RequestType uint8  // bmRequestType
	Request     uint8  // bRequest
	Value       uint16 // wValue, little-endian
	Index       uint16 // wIndex, little-endian
	Length      uint16 // wLength, little-endian
}

// ParseSetupPacket decodes a raw 8-byte SETUP token.
func ParseSetupPacket(raw [8]byte) SetupPacket {
	return SetupPacket{
		RequestType: raw[0],
		Request:     raw[1],
		Value:       binary.LittleEndian.Uint16(raw[2:4]),
		Index:       binary.LittleEndian.Uint16(raw[4:6]),
		Length:      binary.LittleEndian.Uint16(raw[6:8]),
	}
}

// Direction returns the transfer direction bit of bmRequestType.
func (s SetupPacket) Direction() uint8 { return s.RequestType & directionMask }

// IsDeviceToHost reports whether the data stage, if any, flows device to host.
func (s SetupPacket) IsDeviceToHost() bool { return s.Direction() == directionDeviceToHost }

// IsHostToDevice reports whether the data stage, if any, flows host to device.
func (s SetupPacket) IsHostToDevice() bool { return s.Direction() == directionHostToDevice }

// Type returns the request type bits of bmRequestType (Standard/Class/Vendor).
func (s SetupPacket) Type() uint8 { return s.RequestType & typeMask }

// IsStandard reports whether this is a Standard request.
func (s SetupPacket) IsStandard() bool { return s.Type() == typeStandard }

// Recipient returns the recipient bits of bmRequestType.
func (s SetupPacket) Recipient() uint8 { return s.RequestType & recipientMask }

// EndpointNumber extracts the endpoint number from wIndex, valid for
// endpoint-recipient requests.
func (s SetupPacket) EndpointNumber() uint8 { return uint8(s.Index & 0x0F) }

// EndpointIsIn reports whether wIndex names an IN endpoint, valid for
// endpoint-recipient requests.
func (s SetupPacket) EndpointIsIn() bool { return s.Index&0x80 != 0 }

// DescriptorType extracts the descriptor type from the high byte of wValue,
// valid for GET_DESCRIPTOR requests.
func (s SetupPacket) DescriptorType() uint8 { return uint8(s.Value >> 8) }

// DescriptorIndex extracts the descriptor index from the low byte of
// wValue, valid for GET_DESCRIPTOR requests.
func (s SetupPacket) DescriptorIndex() uint8 { return uint8(s.Value) }
