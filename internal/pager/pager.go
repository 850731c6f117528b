// Package pager renders search results into display pages. Rendering is
// pure: the same query, results, and page number always produce the same
// page, and nothing here touches the session store or the network.
package pager

import (
	"fmt"

	"github.com/scourbot/scour/internal/search"
)

// PageSize is the number of results shown per page. Shared by the
// session store's bounds checks and the renderer's slicing.
const PageSize = 5

// Item is one rendered result line.
type Item struct {
	Heading string // rank, author, and channel
	Body    string // truncated content preview
	Link    string // deep link to the message
}

// Page is a fully rendered results page.
type Page struct {
	Title string
	// Description is only set when the page has no items.
	Description string
	Items       []Item
	Footer      string
}

// TotalPages returns the page count for n results, with a floor of one
// page even when there are no results.
func TotalPages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}

// Render produces the display page for the given page number. Results
// are sliced to the window [(page-1)*PageSize, page*PageSize), clipped
// to the result count. An empty window (which the navigation bounds
// check should prevent, but is handled anyway) yields a placeholder
// description and no items.
func Render(query string, minLength int, results []search.Result, page int) Page {
	p := Page{
		Title:  fmt.Sprintf("Search results for %q (>= %d chars)", query, minLength),
		Footer: fmt.Sprintf("Page %d/%d", page, TotalPages(len(results))),
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start < 0 || start >= len(results) {
		p.Description = "No results on this page."
		return p
	}
	if end > len(results) {
		end = len(results)
	}

	for i, r := range results[start:end] {
		p.Items = append(p.Items, Item{
			Heading: fmt.Sprintf("%d. From @%s in #%s", start+i+1, r.Author, r.Channel),
			Body:    Preview(r.Content),
			Link:    r.Link,
		})
	}

	return p
}
