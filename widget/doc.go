// Package widget composes the editor surface, a vanish controller and a
// character counter into one Bubble Tea model.
//
// Typing starts a countdown; once it elapses the text turns invisible one
// rune per tick, left to right. Pastes are truncated to the length limit,
// copies and cuts put placeholders on the clipboard and the right-click
// paste is suppressed.
package widget
