// Package lec315 provides the serial protocol of the BWsensing LEC315 compass.
package lec315

// The host sends short fixed-layout frames:
//
//	READ: [ID][LEN=4][ADDR][CMD][CKSUM]
//	SET:  [ID][LEN][ADDR][CMD][DATA...][CKSUM]
//
// and the module answers with a single flag byte followed by a payload whose
// length is fixed per command. Numbers are sign-magnitude BCD: the first
// nibble is the sign, the following nibbles are decimal digits.
//
// There is no sequence number on the wire. A response is recognized only by
// its flag byte, so any stray byte equal to the expected flag is taken as the
// start of the response.
//
// Producer: LEC315 firmware
// Consumer: host controller
