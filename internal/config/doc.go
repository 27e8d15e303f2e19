// Package config loads snap's settings from YAML files and the environment.
//
// Settings are layered: built-in defaults, then the user file
// ($SNAP_CONFIG or <user config dir>/snap/config.yaml), then the repository
// file (<git dir>/snap.yaml), then SNAP_REMOTE and SNAP_NO_PUSH.
package config
