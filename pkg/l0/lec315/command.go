package lec315

// Default identity of a module in factory settings.
const (
	DefaultDeviceID   byte = 0x77
	DefaultDeviceAddr byte = 0x00
)

// MaxResponseLen is the longest response payload of any command.
const MaxResponseLen = 9

// ReadCommand describes a query command.
type ReadCommand struct {
	Name         string
	Code         byte
	ResponseLen  byte
	ResponseFlag byte
}

// SetCommand describes a configuration command.
type SetCommand struct {
	Name         string
	Code         byte
	DataLen      byte
	ResponseLen  byte
	ResponseFlag byte
}

// Read commands.
var (
	ReadPitch          = ReadCommand{"pitch", 0x01, 3, 0x81}
	ReadRoll           = ReadCommand{"roll", 0x02, 3, 0x82}
	ReadAzimuth        = ReadCommand{"azimuth", 0x03, 3, 0x83}
	ReadAllAngles      = ReadCommand{"angles", 0x04, 9, 0x84}
	ReadMagneticDecl   = ReadCommand{"declination", 0x07, 2, 0x87}
	ReadCompassAddr    = ReadCommand{"address", 0x1F, 1, 0x1F}
	ReadSavingSettings = ReadCommand{"save", 0x0A, 1, 0x8A}
)

// Set commands.
var (
	SetBaudRate     = SetCommand{"baudrate", 0x0B, 1, 1, 0x8B}
	SetMagneticDecl = SetCommand{"declination", 0x06, 2, 1, 0x86}
	SetCompassAddr  = SetCommand{"address", 0x0F, 1, 1, 0x8F}
	SetOutputMode   = SetCommand{"mode", 0x0C, 1, 1, 0x8C}
)

// ReadCommands lists all read commands.
var ReadCommands = []ReadCommand{
	ReadPitch,
	ReadRoll,
	ReadAzimuth,
	ReadAllAngles,
	ReadMagneticDecl,
	ReadCompassAddr,
	ReadSavingSettings,
}

// SetCommands lists all set commands.
var SetCommands = []SetCommand{
	SetBaudRate,
	SetMagneticDecl,
	SetCompassAddr,
	SetOutputMode,
}

// LookupRead finds a read command by name.
func LookupRead(name string) (ReadCommand, bool) {
	for _, cmd := range ReadCommands {
		if cmd.Name == name {
			return cmd, true
		}
	}
	return ReadCommand{}, false
}

// LookupSet finds a set command by name.
func LookupSet(name string) (SetCommand, bool) {
	for _, cmd := range SetCommands {
		if cmd.Name == name {
			return cmd, true
		}
	}
	return SetCommand{}, false
}

// Baud rate codes for SetBaudRate.
const (
	Baud2400   byte = 0x00
	Baud4800   byte = 0x01
	Baud9600   byte = 0x02
	Baud19200  byte = 0x03
	Baud38400  byte = 0x04
	Baud115200 byte = 0x05
)

// Output mode codes for SetOutputMode.
const (
	OutputAnswer    byte = 0x00 // reply on request only
	OutputAuto5Hz   byte = 0x01
	OutputAuto15Hz  byte = 0x02
	OutputAuto25Hz  byte = 0x03
	OutputAuto35Hz  byte = 0x04
	OutputAuto50Hz  byte = 0x05
	OutputAuto100Hz byte = 0x06
)

// BaudRateCode maps a line speed to its SetBaudRate code.
func BaudRateCode(baud int) (byte, bool) {
	switch baud {
	case 2400:
		return Baud2400, true
	case 4800:
		return Baud4800, true
	case 9600:
		return Baud9600, true
	case 19200:
		return Baud19200, true
	case 38400:
		return Baud38400, true
	case 115200:
		return Baud115200, true
	}
	return 0, false
}

// BaudRate maps a SetBaudRate code back to its line speed.
func BaudRate(code byte) (int, bool) {
	for _, baud := range []int{2400, 4800, 9600, 19200, 38400, 115200} {
		if c, _ := BaudRateCode(baud); c == code {
			return baud, true
		}
	}
	return 0, false
}
