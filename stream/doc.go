// SPDX-License-Identifier: EPL-2.0

// Package stream defines the network side of the bridge: stream
// descriptors, the transport collaborator contract and the selector that
// matches an advertised stream against the local output clock.
//
// The transport itself is not implemented here. Any discovery/streaming
// layer can be plugged in by satisfying Transport; transport/loopback
// provides an in-process one.
//
// # Selection
//
// A descriptor is accepted when its name equals the wanted name and its
// nominal rate is within a fractional tolerance of the local rate:
//
//	sel := stream.Selector{Name: "audio", LocalRate: 44100, Tolerance: 0.001}
//	sel.Check(stream.Descriptor{Name: "audio", NominalRate: 44120}) // nil
//	sel.Check(stream.Descriptor{Name: "audio", NominalRate: 44200}) // ErrRateMismatch
//
// When several descriptors match, the first one in catalog order wins.
package stream
