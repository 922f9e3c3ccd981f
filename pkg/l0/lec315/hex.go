package lec315

// HexToUint converts up to 8 hex digits (MSB first) into a number.
func HexToUint(digits string) (uint32, error) {
	if len(digits) > 8 {
		return 0, ErrTooManyDigits
	}
	var val uint32
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		var nibble byte
		switch {
		case c >= '0' && c <= '9':
			nibble = c - '0'
		case c >= 'a' && c <= 'f':
			nibble = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			nibble = c - 'A' + 10
		default:
			return 0, &InvalidHexDigitError{Char: c, Index: i}
		}
		val = (val << 4) | uint32(nibble)
	}
	return val, nil
}
