// Package editor provides a Bubble Tea text surface backed by the buffer
// package.
//
// The surface handles keys, mouse, clipboard, soft wrapping and viewport
// scrolling. Hosts observe and intercept it through the hooks in Config:
// input notifications after text changes, and cancelable key, paste, copy and
// context-menu events.
package editor
