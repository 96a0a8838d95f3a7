package version

// Version is the current version of the trade analyzer.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/rxtech-lab/trade-analyzer/internal/version.Version=1.2.3"
// The value "main" marks a development build.
var Version = "v0.3.0"

// GetVersion returns the current version of the analyzer.
func GetVersion() string {
	return Version
}
