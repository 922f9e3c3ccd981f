package lec315

// Checksum computes the additive checksum of a frame.
// The last byte of frame is the checksum slot and is never summed.
func Checksum(frame []byte) byte {
	var sum byte
	for i := 0; i < len(frame)-1; i++ {
		sum += frame[i]
	}
	return sum
}
