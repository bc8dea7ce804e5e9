package vanish

import (
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/evanesce/buffer"
)

type recordingSurface struct {
	*buffer.Buffer
	writes int
}

func (s *recordingSurface) SetText(text string) {
	s.writes++
	s.Buffer.SetText(text)
}

func (s *recordingSurface) InsertText(text string) {
	s.writes++
	s.Buffer.InsertText(text)
}

type textCounter struct {
	text    string
	updates int
}

func (c *textCounter) SetText(s string) {
	c.text = s
	c.updates++
}

type scheduled struct {
	delays []time.Duration
}

// tick runs timers immediately and records the requested delays.
func (s *scheduled) tick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	s.delays = append(s.delays, d)
	return func() tea.Msg { return fn(time.Time{}) }
}

type fixture struct {
	surface *recordingSurface
	counter *textCounter
	sched   *scheduled
	ctrl    *Controller
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()
	f := &fixture{
		surface: &recordingSurface{Buffer: buffer.New("")},
		counter: &textCounter{},
		sched:   &scheduled{},
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(1, 2))
	}
	cfg.Tick = f.sched.tick
	f.ctrl = New(f.surface, f.counter, cfg)
	return f
}

// typeText inserts s at the caret and ingests it like an input event would.
func (f *fixture) typeText(s string) tea.Cmd {
	f.surface.Buffer.InsertText(s)
	return f.ctrl.Ingest()
}

// deliver runs cmd and feeds its message back into the controller.
func (f *fixture) deliver(t *testing.T, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a scheduled command, got nil")
	}
	return f.ctrl.Update(cmd())
}

// startVanishing types text and fires the countdown, returning the first tick.
func (f *fixture) startVanishing(t *testing.T, text string) tea.Cmd {
	t.Helper()
	countdown := f.typeText(text)
	tick := f.deliver(t, countdown)
	if got := f.ctrl.State(); got != StateVanishing {
		t.Fatalf("state after countdown: got %v, want %v", got, StateVanishing)
	}
	return tick
}

func isPlaceholder(r rune) bool {
	return slices.Contains(DefaultPlaceholders, r)
}

func TestIngest_MirrorsTextWithinLimit(t *testing.T) {
	f := newFixture(t, Config{MaxCharacters: 10})

	for _, s := range []string{"", "a", "héllo", "ab\ncd", "0123456789"} {
		f.surface.Buffer.SetText(s)
		f.ctrl.Ingest()
		if got := f.ctrl.Buffer(); got != s {
			t.Fatalf("buffer: got %q, want %q", got, s)
		}
		if got, want := f.counter.text, strconv.Itoa(utf8.RuneCountInString(s)); got != want {
			t.Fatalf("count for %q: got %s, want %s", s, got, want)
		}
	}
}

func TestIngest_TruncatesOverLimit(t *testing.T) {
	f := newFixture(t, Config{MaxCharacters: 5})

	f.surface.Buffer.SetText("abcdefgh")
	f.surface.Buffer.SetCaretOffset(2)
	if cmd := f.ctrl.Ingest(); cmd != nil {
		t.Fatalf("truncating ingest must not schedule anything")
	}

	if got := f.surface.Text(); got != "abcde" {
		t.Fatalf("surface text: got %q, want %q", got, "abcde")
	}
	if got := f.ctrl.Buffer(); got != "abcde" {
		t.Fatalf("buffer: got %q, want %q", got, "abcde")
	}
	if got := f.surface.CaretOffset(); got != 5 {
		t.Fatalf("caret: got %d, want %d", got, 5)
	}
	if got := f.counter.text; got != "5" {
		t.Fatalf("count: got %q, want %q", got, "5")
	}
	if got := f.ctrl.State(); got != StateIdle {
		t.Fatalf("state: got %v, want %v", got, StateIdle)
	}
}

func TestIngest_StartsCountdownOnce(t *testing.T) {
	f := newFixture(t, Config{})

	if cmd := f.ctrl.Ingest(); cmd != nil {
		t.Fatalf("empty ingest must not start the countdown")
	}
	if got := f.ctrl.State(); got != StateIdle {
		t.Fatalf("state: got %v, want %v", got, StateIdle)
	}

	if cmd := f.typeText("a"); cmd == nil {
		t.Fatalf("first non-empty ingest must start the countdown")
	}
	if got := f.ctrl.State(); got != StateCountingDown {
		t.Fatalf("state: got %v, want %v", got, StateCountingDown)
	}
	if cmd := f.typeText("b"); cmd != nil {
		t.Fatalf("later edits must not restart the countdown")
	}

	f.surface.Buffer.SetText("")
	f.ctrl.Ingest()
	if cmd := f.typeText("c"); cmd != nil {
		t.Fatalf("retyping after clearing must not restart the countdown")
	}

	if len(f.sched.delays) != 1 || f.sched.delays[0] != DefaultCountdownDelay {
		t.Fatalf("scheduled delays: got %v, want [%v]", f.sched.delays, DefaultCountdownDelay)
	}
}

func TestCountdown_SchedulesRecurringTick(t *testing.T) {
	f := newFixture(t, Config{CountdownDelay: time.Second, TickInterval: 50 * time.Millisecond})

	tick := f.startVanishing(t, "abc")
	if tick == nil {
		t.Fatalf("expected the first tick to be scheduled")
	}
	if got := f.ctrl.Cursor(); got != 0 {
		t.Fatalf("cursor at vanish start: got %d, want 0", got)
	}
	want := []time.Duration{time.Second, 50 * time.Millisecond}
	if !slices.Equal(f.sched.delays, want) {
		t.Fatalf("delays: got %v, want %v", f.sched.delays, want)
	}

	// A duplicate countdown message is stale and changes nothing.
	if cmd := f.ctrl.Update(CountdownMsg{ID: f.ctrl.ID(), tag: 1}); cmd != nil {
		t.Fatalf("stale countdown must be ignored")
	}
	if got := f.ctrl.beginVanishing(); got != nil {
		t.Fatalf("beginVanishing while vanishing must be a no-op")
	}
}

func TestTick_VanishesLeftToRight(t *testing.T) {
	f := newFixture(t, Config{})
	const text = "vanishing ink"
	tick := f.startVanishing(t, text)

	orig := []rune(text)
	for n := 1; n <= len(orig); n++ {
		tick = f.deliver(t, tick)

		got := []rune(f.surface.Text())
		if len(got) != len(orig) {
			t.Fatalf("tick %d: length changed to %d", n, len(got))
		}
		for i := 0; i < n; i++ {
			if !isPlaceholder(got[i]) {
				t.Fatalf("tick %d: rune %d = %q, want a placeholder", n, i, got[i])
			}
		}
		if string(got[n:]) != string(orig[n:]) {
			t.Fatalf("tick %d: tail got %q, want %q", n, string(got[n:]), string(orig[n:]))
		}
		if got := f.ctrl.Cursor(); got != n {
			t.Fatalf("tick %d: cursor got %d", n, got)
		}
	}
}

func TestTick_PreservesCaret(t *testing.T) {
	f := newFixture(t, Config{})
	tick := f.startVanishing(t, "first line\nsecond")

	f.surface.Buffer.SetCaretOffset(13)
	for i := 0; i < 8; i++ {
		tick = f.deliver(t, tick)
		if got := f.surface.CaretOffset(); got != 13 {
			t.Fatalf("tick %d: caret got %d, want %d", i+1, got, 13)
		}
	}
}

func TestTick_IdleWhenCaughtUpThenResumesOnGrowth(t *testing.T) {
	f := newFixture(t, Config{})
	tick := f.startVanishing(t, "ab")

	tick = f.deliver(t, tick)
	tick = f.deliver(t, tick)
	writes := f.surface.writes
	tick = f.deliver(t, tick)
	if f.surface.writes != writes {
		t.Fatalf("tick past the end must not write")
	}
	if tick == nil {
		t.Fatalf("idle tick must keep the loop alive")
	}

	f.surface.Buffer.CaretToEnd()
	f.typeText("cd")
	tick = f.deliver(t, tick)
	tick = f.deliver(t, tick)

	for i, r := range []rune(f.surface.Text()) {
		if !isPlaceholder(r) {
			t.Fatalf("rune %d = %q, want a placeholder", i, r)
		}
	}
	_ = tick
}

func TestTick_CursorNeverRewinds(t *testing.T) {
	f := newFixture(t, Config{})
	tick := f.startVanishing(t, "hello")
	for i := 0; i < 3; i++ {
		tick = f.deliver(t, tick)
	}

	// The user wipes everything and types a shorter text.
	f.surface.Buffer.SetText("")
	f.typeText("xy")
	tick = f.deliver(t, tick)
	if got := f.surface.Text(); got != "xy" {
		t.Fatalf("text after idle tick: got %q, want %q", got, "xy")
	}

	f.typeText("zw")
	tick = f.deliver(t, tick)
	got := []rune(f.surface.Text())
	if string(got[:3]) != "xyz" || !isPlaceholder(got[3]) {
		t.Fatalf("text after growth: got %q, want %q + placeholder", string(got), "xyz")
	}
	if c := f.ctrl.Cursor(); c != 4 {
		t.Fatalf("cursor: got %d, want %d", c, 4)
	}
	_ = tick
}

func TestEndToEnd_Hello(t *testing.T) {
	f := newFixture(t, Config{})

	var countdown tea.Cmd
	for _, r := range "hello" {
		if cmd := f.typeText(string(r)); cmd != nil {
			countdown = cmd
		}
	}
	if got := f.counter.text; got != "5" {
		t.Fatalf("count: got %q, want %q", got, "5")
	}

	tick := f.deliver(t, countdown)
	for i := 0; i < 3; i++ {
		tick = f.deliver(t, tick)
	}
	got := []rune(f.surface.Text())
	for i := 0; i < 3; i++ {
		if !isPlaceholder(got[i]) {
			t.Fatalf("after 3 ticks rune %d = %q, want a placeholder", i, got[i])
		}
	}
	if string(got[3:]) != "lo" {
		t.Fatalf("after 3 ticks tail: got %q, want %q", string(got[3:]), "lo")
	}

	tick = f.deliver(t, tick)
	tick = f.deliver(t, tick)
	final := f.surface.Text()
	for i, r := range []rune(final) {
		if !isPlaceholder(r) {
			t.Fatalf("after 5 ticks rune %d = %q, want a placeholder", i, r)
		}
	}

	writes := f.surface.writes
	for i := 0; i < 3; i++ {
		tick = f.deliver(t, tick)
	}
	if f.surface.writes != writes || f.surface.Text() != final {
		t.Fatalf("ticks past the end must be no-ops")
	}
}

func TestDispose_MidCountdown(t *testing.T) {
	f := newFixture(t, Config{})
	countdown := f.typeText("secret")

	f.ctrl.Dispose()
	writes := f.surface.writes
	if cmd := f.ctrl.Update(countdown()); cmd != nil {
		t.Fatalf("countdown after dispose must not schedule ticks")
	}
	if f.surface.writes != writes || f.surface.Text() != "secret" {
		t.Fatalf("surface mutated after dispose")
	}
	if got := f.ctrl.State(); got != StateCountingDown {
		t.Fatalf("state after dispose: got %v, want %v", got, StateCountingDown)
	}
}

func TestDispose_MidVanishing(t *testing.T) {
	f := newFixture(t, Config{MaxCharacters: 4})
	tick := f.startVanishing(t, "abcd")
	tick = f.deliver(t, tick)

	f.ctrl.Dispose()
	f.ctrl.Dispose()
	before := f.surface.Text()
	writes := f.surface.writes

	if cmd := f.ctrl.Update(tick()); cmd != nil {
		t.Fatalf("pending tick after dispose must not reschedule")
	}
	f.surface.Buffer.CaretToEnd()
	f.surface.Buffer.InsertText("zzz")
	if cmd := f.ctrl.Ingest(); cmd != nil {
		t.Fatalf("ingest after dispose must be a no-op")
	}
	f.ctrl.Paste("more")
	if f.surface.writes != writes {
		t.Fatalf("controller wrote to the surface after dispose")
	}
	if got := f.surface.Text(); got != before+"zzz" {
		t.Fatalf("surface text: got %q, want %q", got, before+"zzz")
	}
}

func TestUpdate_IgnoresForeignAndStaleMessages(t *testing.T) {
	f := newFixture(t, Config{})
	other := newFixture(t, Config{})
	tick := f.startVanishing(t, "abc")

	writes := f.surface.writes
	msg := tick().(TickMsg)

	for _, m := range []tea.Msg{
		TickMsg{ID: other.ctrl.ID(), tag: msg.tag},
		TickMsg{ID: msg.ID, tag: msg.tag - 1},
		CountdownMsg{ID: msg.ID, tag: msg.tag},
		tea.KeyMsg{Type: tea.KeyEnter},
	} {
		if cmd := f.ctrl.Update(m); cmd != nil {
			t.Fatalf("message %#v must be ignored", m)
		}
	}
	if f.surface.writes != writes {
		t.Fatalf("ignored messages mutated the surface")
	}

	// The genuine tick still works, and replaying it afterwards is stale.
	if cmd := f.ctrl.Update(msg); cmd == nil {
		t.Fatalf("current tick must reschedule")
	}
	if cmd := f.ctrl.Update(msg); cmd != nil {
		t.Fatalf("replayed tick must be ignored")
	}
}

func TestPaste_WithinLimitInsertsVerbatim(t *testing.T) {
	f := newFixture(t, Config{MaxCharacters: 10})
	f.typeText("abc")
	f.surface.Buffer.SetCaretOffset(1)

	f.ctrl.Paste("XY")
	if got := f.surface.Text(); got != "aXYbc" {
		t.Fatalf("text: got %q, want %q", got, "aXYbc")
	}
}

func TestPaste_TruncatesToLimit(t *testing.T) {
	f := newFixture(t, Config{MaxCharacters: 8})
	f.typeText("hello")
	pre := len([]rune(f.surface.Text()))

	f.ctrl.Paste("world!!")
	got := f.surface.Text()
	if n := len([]rune(got)); n != 8 {
		t.Fatalf("length after paste: got %d, want %d", n, 8)
	}
	if want := "hello" + "world!!"[:8-pre]; got != want {
		t.Fatalf("text after paste: got %q, want %q", got, want)
	}

	writes := f.surface.writes
	f.ctrl.Paste("more")
	if f.surface.writes != writes {
		t.Fatalf("paste at the limit must not write")
	}
}

func TestPaste_CountsRunesAndNormalizesNewlines(t *testing.T) {
	f := newFixture(t, Config{MaxCharacters: 4})
	f.ctrl.Paste("日\r\n本語")
	if got := f.surface.Text(); got != "日\n本語" {
		t.Fatalf("text: got %q, want %q", got, "日\n本語")
	}
}

func TestObfuscate_ReplacesEveryRune(t *testing.T) {
	f := newFixture(t, Config{})

	seen := map[rune]bool{}
	for i := 0; i < 500; i++ {
		out, ok := f.ctrl.Obfuscate("ABCDE")
		if !ok {
			t.Fatalf("expected a payload")
		}
		runes := []rune(out)
		if len(runes) != 5 {
			t.Fatalf("payload length: got %d, want %d", len(runes), 5)
		}
		for _, r := range runes {
			if !isPlaceholder(r) {
				t.Fatalf("payload rune %q is not a placeholder", r)
			}
			seen[r] = true
		}
		if strings.ContainsAny(out, "ABCDE") {
			t.Fatalf("payload leaks the selection: %q", out)
		}
	}
	if len(seen) != len(DefaultPlaceholders) {
		t.Fatalf("placeholders seen: got %d, want %d", len(seen), len(DefaultPlaceholders))
	}
}

func TestObfuscate_EmptySelection(t *testing.T) {
	f := newFixture(t, Config{})
	if out, ok := f.ctrl.Obfuscate(""); ok || out != "" {
		t.Fatalf("empty selection: got (%q, %v), want (\"\", false)", out, ok)
	}
}

func TestContextMenu_AlwaysSuppressed(t *testing.T) {
	f := newFixture(t, Config{})
	if !f.ctrl.ContextMenu() {
		t.Fatalf("context menu must be suppressed")
	}
}

func TestAllowInsert(t *testing.T) {
	f := newFixture(t, Config{MaxCharacters: 3})
	f.typeText("ab")
	if !f.ctrl.AllowInsert() {
		t.Fatalf("insert below the limit must be allowed")
	}

	f.typeText("c")
	if f.ctrl.AllowInsert() {
		t.Fatalf("insert at the limit must be refused")
	}

	f.surface.Buffer.SetSelection(buffer.Range{End: buffer.Pos{Col: 1}})
	if !f.ctrl.AllowInsert() {
		t.Fatalf("insert replacing a selection must be allowed")
	}
}

func TestConfig_Defaults(t *testing.T) {
	c := Config{}.withDefaults()
	if c.MaxCharacters != 1000 || c.CountdownDelay != 2*time.Second || c.TickInterval != 100*time.Millisecond {
		t.Fatalf("defaults: got %+v", c)
	}
	if len(c.Placeholders) != 5 {
		t.Fatalf("placeholders: got %d, want 5", len(c.Placeholders))
	}

	custom := []rune{'\u200b'}
	c = Config{Placeholders: custom}.withDefaults()
	custom[0] = 'x'
	if c.Placeholders[0] != '\u200b' {
		t.Fatalf("placeholders must be copied")
	}
}

func TestState_String(t *testing.T) {
	cases := map[State]string{
		StateIdle:         "idle",
		StateCountingDown: "counting-down",
		StateVanishing:    "vanishing",
		State(9):          "unknown",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Fatalf("State(%d).String(): got %q, want %q", s, got, want)
		}
	}
}
