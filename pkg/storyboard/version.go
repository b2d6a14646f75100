package storyboard

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/mesh-intelligence/storyboard/pkg/storyboard.Version=...".
var Version = "0.1.0-dev"
