package bot

import (
	"log/slog"

	"github.com/scourbot/scour/internal/pager"
	"github.com/scourbot/scour/internal/session"
)

// NavAction is what the platform layer should do in response to a
// navigation click.
type NavAction int

const (
	// NavRender replaces the displayed page with Outcome.Page.
	NavRender NavAction = iota
	// NavIgnore acknowledges the click with no visible change
	// (out-of-range page target).
	NavIgnore
	// NavExpired tells the clicking user their session is gone, in a
	// reply only they can see.
	NavExpired
)

// NavOutcome is the result of one navigation click.
type NavOutcome struct {
	Action  NavAction
	Page    pager.Page // set when Action == NavRender
	PageNum int
}

// Controller decides how pagination clicks change session state. It is
// platform-agnostic: the Discord layer maps each NavOutcome onto an
// interaction response.
type Controller struct {
	sessions *session.Store
	logger   *slog.Logger
}

// NewController creates a pagination controller over the given store.
func NewController(sessions *session.Store, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{sessions: sessions, logger: logger}
}

// Navigate handles a previous/next click. ownerID is the user the
// controls were created for (encoded in the button), clickerID is
// whoever actually clicked, and viewID identifies the control instance.
//
// Clicks from anyone but the owner take the expired branch — they must
// never read or move another user's session. A stale viewID (controls
// from a search that has since been replaced) also reads as expired.
// Out-of-range targets are silently ignored.
func (c *Controller) Navigate(ownerID, clickerID, viewID string, delta int) NavOutcome {
	if clickerID != ownerID {
		return NavOutcome{Action: NavExpired}
	}

	sess, status := c.sessions.Advance(ownerID, viewID, delta)
	switch status {
	case session.StatusExpired:
		return NavOutcome{Action: NavExpired}
	case session.StatusOutOfRange:
		return NavOutcome{Action: NavIgnore}
	}

	c.logger.Info("navigated search results",
		"user", ownerID,
		"query", sess.Query,
		"page", sess.Page,
		"total_pages", sess.TotalPages())

	return NavOutcome{
		Action:  NavRender,
		Page:    pager.Render(sess.Query, sess.MinLength, sess.Results, sess.Page),
		PageNum: sess.Page,
	}
}
