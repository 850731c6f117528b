package pager

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/scourbot/scour/internal/search"
)

func makeResults(n int) []search.Result {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	results := make([]search.Result, n)
	for i := range results {
		results[i] = search.Result{
			Content:   fmt.Sprintf("result number %d with some padding text", i+1),
			Link:      fmt.Sprintf("https://discord.com/channels/g/c/%d", i+1),
			Channel:   "general",
			Author:    "alice",
			Timestamp: base.Add(-time.Duration(i) * time.Minute),
		}
	}
	return results
}

func TestTotalPages(t *testing.T) {
	cases := []struct{ n, want int }{
		{0, 1},
		{1, 1},
		{5, 1},
		{6, 2},
		{10, 2},
		{11, 3},
		{12, 3},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.n); got != tc.want {
			t.Errorf("TotalPages(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestRender_FirstPage(t *testing.T) {
	results := makeResults(12)
	page := Render("cat", 80, results, 1)

	if len(page.Items) != 5 {
		t.Fatalf("page 1 items = %d, want 5", len(page.Items))
	}
	if !strings.HasPrefix(page.Items[0].Heading, "1. ") {
		t.Errorf("first heading = %q, want rank 1", page.Items[0].Heading)
	}
	if !strings.HasPrefix(page.Items[4].Heading, "5. ") {
		t.Errorf("fifth heading = %q, want rank 5", page.Items[4].Heading)
	}
	if page.Footer != "Page 1/3" {
		t.Errorf("footer = %q, want Page 1/3", page.Footer)
	}
	if page.Description != "" {
		t.Errorf("unexpected description on non-empty page: %q", page.Description)
	}
}

func TestRender_LastPartialPage(t *testing.T) {
	results := makeResults(12)
	page := Render("cat", 80, results, 3)

	if len(page.Items) != 2 {
		t.Fatalf("page 3 items = %d, want 2 (no padding)", len(page.Items))
	}
	if !strings.HasPrefix(page.Items[0].Heading, "11. ") {
		t.Errorf("heading = %q, want global rank 11", page.Items[0].Heading)
	}
	if !strings.HasPrefix(page.Items[1].Heading, "12. ") {
		t.Errorf("heading = %q, want global rank 12", page.Items[1].Heading)
	}
	if page.Footer != "Page 3/3" {
		t.Errorf("footer = %q, want Page 3/3", page.Footer)
	}
}

func TestRender_HeadingIncludesAuthorAndChannel(t *testing.T) {
	page := Render("cat", 80, makeResults(1), 1)
	want := "1. From @alice in #general"
	if page.Items[0].Heading != want {
		t.Errorf("heading = %q, want %q", page.Items[0].Heading, want)
	}
}

func TestRender_EmptyResults(t *testing.T) {
	page := Render("cat", 80, nil, 1)

	if len(page.Items) != 0 {
		t.Errorf("items = %d, want 0", len(page.Items))
	}
	if page.Description != "No results on this page." {
		t.Errorf("description = %q", page.Description)
	}
	if page.Footer != "Page 1/1" {
		t.Errorf("footer = %q, want Page 1/1 (floor of one page)", page.Footer)
	}
}

func TestRender_PageBeyondData(t *testing.T) {
	page := Render("cat", 80, makeResults(3), 7)

	if len(page.Items) != 0 {
		t.Errorf("items = %d, want 0 for out-of-range page", len(page.Items))
	}
	if page.Description != "No results on this page." {
		t.Errorf("description = %q", page.Description)
	}
}

func TestRender_TitleMentionsQueryAndLimit(t *testing.T) {
	page := Render("cat", 40, makeResults(1), 1)
	if !strings.Contains(page.Title, `"cat"`) {
		t.Errorf("title missing query: %q", page.Title)
	}
	if !strings.Contains(page.Title, "40") {
		t.Errorf("title missing min length: %q", page.Title)
	}
}

func TestPreview_ShortPassesThrough(t *testing.T) {
	if got := Preview("hello world"); got != "hello world" {
		t.Errorf("Preview = %q, want unchanged", got)
	}
}

func TestPreview_TruncatesWithMarker(t *testing.T) {
	got := Preview(strings.Repeat("a", 40))
	want := strings.Repeat("a", 30) + "...more"
	if got != want {
		t.Errorf("Preview = %q, want %q", got, want)
	}
}

func TestPreview_FlattensMarkdown(t *testing.T) {
	if got := Preview("**bold** and *italic*"); got != "bold and italic" {
		t.Errorf("Preview = %q, want formatting stripped", got)
	}
}

func TestPreview_FlattensLinks(t *testing.T) {
	if got := Preview("see [the docs](https://x.y)"); got != "see the docs" {
		t.Errorf("Preview = %q, want link text only", got)
	}
}

func TestPreview_CollapsesNewlines(t *testing.T) {
	if got := Preview("line one\nline two"); got != "line one line two" {
		t.Errorf("Preview = %q, want single spaces", got)
	}
}

func TestPreview_CodeBlockContentKept(t *testing.T) {
	got := Preview("```\ncode here\n```")
	if got != "code here" {
		t.Errorf("Preview = %q, want code block content", got)
	}
}
