package config

// Version is the followscope binary version.
// Set at build time via: -ldflags "-X github.com/followscope/followscope/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
