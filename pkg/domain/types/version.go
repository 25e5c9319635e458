package types

// Version is the panelship version, overwritten at build time with -ldflags
var Version = "dev"
