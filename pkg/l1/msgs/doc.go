// Package msgs provides the messages published for a compass.
package msgs

// Readings leave the host controller as protobuf-encoded
// google.protobuf.Struct values so any consumer can decode them
// without generated code.
//
// Producer: compass daemon
// Consumer: subscribers on the MQTT broker
