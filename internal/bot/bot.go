// Package bot wires the search engine, session store, and pagination
// controller to the Discord gateway: slash-command registration, the
// /search handler, and the button-click protocol.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/scourbot/scour/internal/discord"
	"github.com/scourbot/scour/internal/pager"
	"github.com/scourbot/scour/internal/search"
	"github.com/scourbot/scour/internal/session"
)

const (
	commandName = "search"

	// customIDPrefix namespaces this bot's component custom IDs:
	// scour:<prev|next>:<ownerID>:<viewID>
	customIDPrefix = "scour"

	noResultsNotice = "No results found."
	expiredNotice   = "This search session expired."
	failedNotice    = "Search failed, try again later."
)

// Bot handles Discord events for the search command and its pagination
// buttons.
type Bot struct {
	// ctx bounds work started from gateway callbacks, which discordgo
	// invokes without a context of their own.
	ctx context.Context

	dg         *discordgo.Session
	sessions   *session.Store
	controller *Controller

	// engine is constructed on Ready, once the bot's own user ID is known.
	engine *search.Engine

	defaultMinLength int
	logger           *slog.Logger
}

// New registers a Bot's handlers on the given Discord session. The
// session is not opened here; the caller owns the connection lifecycle.
func New(ctx context.Context, dg *discordgo.Session, sessions *session.Store, defaultMinLength int, logger *slog.Logger) *Bot {
	if logger == nil {
		logger = slog.Default()
	}

	b := &Bot{
		ctx:              ctx,
		dg:               dg,
		sessions:         sessions,
		controller:       NewController(sessions, logger),
		defaultMinLength: defaultMinLength,
		logger:           logger,
	}

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onInteraction)
	return b
}

// Intents returns the gateway intents the bot needs: guild and channel
// metadata, message history with content, and members for display names.
func Intents() discordgo.Intent {
	return discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentMessageContent
}

// onReady completes startup: builds the engine around the now-known bot
// identity and syncs the slash command definition with Discord.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.engine = search.NewEngine(discord.NewBrowser(s), r.User.ID, b.logger)
	b.logger.Info("logged in", "user", r.User.Username, "id", r.User.ID)

	minLimit := float64(1)
	cmd := &discordgo.ApplicationCommand{
		Name:        commandName,
		Description: "Search recent messages in all channels",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "word",
				Description: "Word to search for",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "limit",
				Description: fmt.Sprintf("Minimum message length (default %d)", b.defaultMinLength),
				MinValue:    &minLimit,
			},
		},
	}

	if _, err := s.ApplicationCommandCreate(r.User.ID, "", cmd); err != nil {
		b.logger.Error("slash command registration failed", "error", err)
		return
	}
	b.logger.Info("slash command synced, bot is ready")
}

// onInteraction dispatches slash-command invocations and button clicks.
func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if i.ApplicationCommandData().Name == commandName {
			b.handleSearch(s, i)
		}
	case discordgo.InteractionMessageComponent:
		b.handleNavClick(s, i)
	}
}

// handleSearch runs a full channel scan for a /search invocation. The
// response is deferred up front: scans routinely outlive the 3-second
// interaction acknowledgment window.
func (b *Bot) handleSearch(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	if user == nil || b.engine == nil {
		return
	}

	word := ""
	minLength := b.defaultMinLength
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "word":
			word = opt.StringValue()
		case "limit":
			minLength = int(opt.IntValue())
		}
	}

	b.logger.Info("search triggered", "user", user.Username, "query", word, "min_length", minLength)

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		b.logger.Error("deferring search response failed", "error", err)
		return
	}

	results, err := b.engine.Search(b.ctx, word, minLength)
	if err != nil {
		b.logger.Error("search failed", "query", word, "error", err)
		b.followup(s, i, failedNotice)
		return
	}

	if len(results) == 0 {
		b.logger.Info("no results", "query", word, "user", user.Username)
		b.followup(s, i, noResultsNotice)
		return
	}

	viewID := uuid.NewString()
	sess := b.sessions.Put(user.ID, word, minLength, viewID, results)

	page := pager.Render(word, minLength, results, sess.Page)
	_, err = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds:     []*discordgo.MessageEmbed{resultEmbed(page)},
		Components: navComponents(user.ID, viewID),
	})
	if err != nil {
		b.logger.Error("sending search results failed", "error", err)
	}
}

// handleNavClick routes a Previous/Next button press through the
// controller and maps the outcome onto an interaction response.
func (b *Bot) handleNavClick(s *discordgo.Session, i *discordgo.InteractionCreate) {
	direction, ownerID, viewID, ok := parseNavCustomID(i.MessageComponentData().CustomID)
	if !ok {
		return // not one of ours
	}

	delta := +1
	if direction == "prev" {
		delta = -1
	}

	clicker := interactionUser(i)
	if clicker == nil {
		return
	}

	outcome := b.controller.Navigate(ownerID, clicker.ID, viewID, delta)
	switch outcome.Action {
	case NavExpired:
		err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: expiredNotice,
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		if err != nil {
			b.logger.Error("expired-session notice failed", "error", err)
		}

	case NavIgnore:
		// Acknowledge so the client stops spinning, change nothing.
		err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredMessageUpdate,
		})
		if err != nil {
			b.logger.Error("acknowledging no-op click failed", "error", err)
		}

	case NavRender:
		err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Embeds:     []*discordgo.MessageEmbed{resultEmbed(outcome.Page)},
				Components: navComponents(ownerID, viewID),
			},
		})
		if err != nil {
			b.logger.Error("updating results page failed", "error", err)
		}
	}
}

// followup sends a plain-text followup to a deferred interaction.
func (b *Bot) followup(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
	})
	if err != nil {
		b.logger.Error("followup failed", "error", err)
	}
}

// interactionUser returns the invoking user for both guild interactions
// (delivered as a member) and DM interactions.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// navCustomID encodes a navigation button's identity:
// scour:<direction>:<ownerID>:<viewID>.
func navCustomID(direction, ownerID, viewID string) string {
	return strings.Join([]string{customIDPrefix, direction, ownerID, viewID}, ":")
}

// parseNavCustomID is the inverse of navCustomID. ok is false for
// custom IDs that don't belong to this bot's navigation buttons.
func parseNavCustomID(id string) (direction, ownerID, viewID string, ok bool) {
	parts := strings.Split(id, ":")
	if len(parts) != 4 || parts[0] != customIDPrefix {
		return "", "", "", false
	}
	if parts[1] != "prev" && parts[1] != "next" {
		return "", "", "", false
	}
	return parts[1], parts[2], parts[3], true
}
