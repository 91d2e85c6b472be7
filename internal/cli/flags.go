package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile string
	Account string
	Issuer  string
	Verbose bool

	// Secret entry and presentation
	ManualSecret string
	QROutFile    string
	Window       bool
	TestCodes    bool

	// Store selection
	UseDB     bool
	StorePath string
	DBPath    string

	// Read-side operations
	Decrypt bool
	Rebuild bool

	// Encryption key sources
	Key      string
	KeyFile  string
	NoKeygen bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		StorePath: "totp.txt",
		DBPath:    "otp.s3db",
		KeyFile:   "fernet.key",
	}
}
