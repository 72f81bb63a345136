package usbcore

// MaxControlDataSize bounds the internal buffers used for control transfer
// responses and received OUT data (device/string/configuration descriptors
// in this corpus fit well within it).
const MaxControlDataSize = 512

// Standard request codes (USB 2.0 Table 9-4).
const (
	RequestGetStatus        uint8 = 0x00
	RequestClearFeature     uint8 = 0x01
	RequestSetFeature       uint8 = 0x03
	RequestSetAddress       uint8 = 0x05
	RequestGetDescriptor    uint8 = 0x06
	RequestSetDescriptor    uint8 = 0x07
	RequestGetConfiguration uint8 = 0x08
	RequestSetConfiguration uint8 = 0x09
	RequestGetInterface     uint8 = 0x0A
	RequestSetInterface     uint8 = 0x0B
	RequestSynchFrame       uint8 = 0x0C
)

// Feature selectors (USB 2.0 Table 9-6).
const (
	FeatureEndpointHalt       uint16 = 0x00
	FeatureDeviceRemoteWakeup uint16 = 0x01
	FeatureTestMode           uint16 = 0x02
)

// bmRequestType field masks and values (USB 2.0 Table 9-2).
const (
	directionMask         uint8 = 0x80
	directionHostToDevice uint8 = 0x00
	directionDeviceToHost uint8 = 0x80

	typeMask     uint8 = 0x60
	typeStandard uint8 = 0x00

	recipientMask uint8 = 0x1F
)

// bmRequestType recipient values.
const (
	RecipientDevice    uint8 = 0x00
	RecipientInterface uint8 = 0x01
	RecipientEndpoint  uint8 = 0x02
	RecipientOther     uint8 = 0x03
)

// descriptorTypeString is the descriptor type byte for string descriptors,
// needed locally to synthesize the two-byte header for EncodingUTF16String
// descriptors. Application-facing descriptor type constants live in usbdesc.
const descriptorTypeString uint8 = 0x03

// deviceStatusRemoteWakeup and deviceStatusSelfPowered are the bit
// positions of the GET_STATUS(Device) response word (USB 2.0 Figure 9-4).
const (
	deviceStatusSelfPowered   uint16 = 1 << 0
	deviceStatusRemoteWakeup  uint16 = 1 << 1
)
