package bot

import (
	"fmt"
	"testing"
	"time"

	"github.com/scourbot/scour/internal/search"
	"github.com/scourbot/scour/internal/session"
)

func makeResults(n int) []search.Result {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	results := make([]search.Result, n)
	for i := range results {
		results[i] = search.Result{
			Content:   fmt.Sprintf("matching message number %d", i+1),
			Link:      fmt.Sprintf("https://discord.com/channels/g/c/%d", i+1),
			Channel:   "general",
			Author:    "alice",
			Timestamp: base.Add(-time.Duration(i) * time.Minute),
		}
	}
	return results
}

func newTestController(t *testing.T) (*Controller, *session.Store) {
	t.Helper()
	store := session.NewStore(time.Minute, nil)
	return NewController(store, nil), store
}

func TestNavigate_Next(t *testing.T) {
	c, store := newTestController(t)
	store.Put("u1", "cat", 80, "view-1", makeResults(12))

	outcome := c.Navigate("u1", "u1", "view-1", +1)
	if outcome.Action != NavRender {
		t.Fatalf("action = %v, want NavRender", outcome.Action)
	}
	if outcome.PageNum != 2 {
		t.Errorf("page = %d, want 2", outcome.PageNum)
	}
	if outcome.Page.Footer != "Page 2/3" {
		t.Errorf("footer = %q, want Page 2/3", outcome.Page.Footer)
	}
	if len(outcome.Page.Items) != 5 {
		t.Errorf("items = %d, want 5", len(outcome.Page.Items))
	}
}

func TestNavigate_PreviousFromFirstPageIgnored(t *testing.T) {
	c, store := newTestController(t)
	store.Put("u1", "cat", 80, "view-1", makeResults(12))

	outcome := c.Navigate("u1", "u1", "view-1", -1)
	if outcome.Action != NavIgnore {
		t.Fatalf("action = %v, want NavIgnore", outcome.Action)
	}

	// Page unchanged.
	sess, ok := store.Get("u1")
	if !ok || sess.Page != 1 {
		t.Errorf("session page = %d (ok=%v), want unchanged 1", sess.Page, ok)
	}
}

func TestNavigate_NextBeyondLastPageIgnored(t *testing.T) {
	c, store := newTestController(t)
	store.Put("u1", "cat", 80, "view-1", makeResults(7)) // 2 pages

	c.Navigate("u1", "u1", "view-1", +1)

	outcome := c.Navigate("u1", "u1", "view-1", +1)
	if outcome.Action != NavIgnore {
		t.Fatalf("action = %v, want NavIgnore", outcome.Action)
	}
	if sess, _ := store.Get("u1"); sess.Page != 2 {
		t.Errorf("session page = %d, want unchanged 2", sess.Page)
	}
}

func TestNavigate_NoSession(t *testing.T) {
	c, _ := newTestController(t)

	outcome := c.Navigate("u1", "u1", "view-1", +1)
	if outcome.Action != NavExpired {
		t.Errorf("action = %v, want NavExpired", outcome.Action)
	}
}

func TestNavigate_StaleViewAfterNewSearch(t *testing.T) {
	c, store := newTestController(t)
	store.Put("u1", "cat", 80, "view-1", makeResults(12))
	store.Put("u1", "dog", 80, "view-2", makeResults(6))

	// Buttons from the cat search are orphaned now.
	outcome := c.Navigate("u1", "u1", "view-1", +1)
	if outcome.Action != NavExpired {
		t.Fatalf("stale view action = %v, want NavExpired", outcome.Action)
	}

	// The dog search is unaffected.
	if sess, _ := store.Get("u1"); sess.Query != "dog" || sess.Page != 1 {
		t.Errorf("live session disturbed: %+v", sess)
	}
}

func TestNavigate_ForeignClickerGetsExpired(t *testing.T) {
	c, store := newTestController(t)
	store.Put("u1", "cat", 80, "view-1", makeResults(12))

	outcome := c.Navigate("u1", "intruder", "view-1", +1)
	if outcome.Action != NavExpired {
		t.Fatalf("foreign clicker action = %v, want NavExpired", outcome.Action)
	}

	// The owner's session must be untouched.
	if sess, _ := store.Get("u1"); sess.Page != 1 {
		t.Errorf("owner session page = %d, want untouched 1", sess.Page)
	}
}

func TestNavigate_WalkAllPages(t *testing.T) {
	c, store := newTestController(t)
	store.Put("u1", "cat", 80, "view-1", makeResults(12)) // pages: 5, 5, 2

	two := c.Navigate("u1", "u1", "view-1", +1)
	three := c.Navigate("u1", "u1", "view-1", +1)

	if two.PageNum != 2 || three.PageNum != 3 {
		t.Fatalf("pages = %d, %d, want 2, 3", two.PageNum, three.PageNum)
	}
	if len(three.Page.Items) != 2 {
		t.Errorf("last page items = %d, want 2 with no padding", len(three.Page.Items))
	}

	back := c.Navigate("u1", "u1", "view-1", -1)
	if back.Action != NavRender || back.PageNum != 2 {
		t.Errorf("back navigation = %v page %d, want NavRender page 2", back.Action, back.PageNum)
	}
}
