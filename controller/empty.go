package controller

// Empty is a stub device for a controller port nothing is connected
// to: it always reports no keys held, matching
// original_source's Empty device.
type Empty struct{}

// AutoRead always returns 0.
func (Empty) AutoRead() uint16 { return 0 }
