// Package assets loads sound-effect files from a filesystem namespace into an
// sfx.Registry.
package assets
