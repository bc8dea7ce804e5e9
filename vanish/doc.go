// Package vanish implements the controller that makes typed text fade into
// invisible placeholder runes.
//
// A Controller mirrors the text of an editable Surface. The first non-empty
// input starts a countdown; when it elapses a recurring tick replaces one
// rune per interval, left to right, with a randomly chosen zero-width rune.
// The caret is captured before and restored after every rewrite so the user
// can keep typing undisturbed. Copies are obfuscated, pastes are truncated to
// the length limit and context menus are suppressed.
//
// Timers are Bubble Tea tick commands stamped with the controller id and a
// generation tag. Bumping the tag cancels every outstanding tick, which is how
// Dispose guarantees that nothing fires against a torn-down controller.
package vanish
