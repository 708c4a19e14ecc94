// Package device holds what every virtual pad implementation shares.
package device

import "encoding"

// StateWriter sends an encoded input state to a virtual device.
// apiclient.DeviceStream implements it.
type StateWriter interface {
	WriteBinary(v encoding.BinaryMarshaler) error
}
