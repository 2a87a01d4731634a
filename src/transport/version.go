package transport

// Version is the current build version, injected at build time via ldflags:
//
//	-X github.com/Easy-Infra-Ltd/easy-phishcheck/src/transport.Version=<tag>
//
// Defaults to "dev" for local builds.
var Version = "dev"
