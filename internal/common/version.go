package common

// Version is the application version, overridable at build time via
// -ldflags "-X github.com/janmitra/janmitra/internal/common.Version=..."
var Version = "0.1.0-dev"
