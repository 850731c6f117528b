// Package search implements the channel scan behind the /search command.
// The Discord client is abstracted behind the Browser interface so the
// engine can be exercised in tests without a gateway connection.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// HistoryCap is the per-channel scan depth: only the most recent
// HistoryCap messages of each channel are considered. This is a hard
// cap, not a tunable — deeper scans multiply gateway round-trips across
// every channel of every guild.
const HistoryCap = 500

// Guild is a server the bot has joined, with its readable text channels.
type Guild struct {
	ID       string
	Name     string
	Channels []Channel
}

// Channel is a single text channel within a guild.
type Channel struct {
	ID   string
	Name string
}

// Message is one fetched message. AuthorName is the resolved display
// name (server nickname when set, otherwise the account's display name).
type Message struct {
	ID         string
	Content    string
	AuthorID   string
	AuthorName string
	Timestamp  time.Time
}

// Browser abstracts the platform client's read surface: guild/channel
// enumeration and bounded recent-message fetches. Implemented by
// internal/discord for the real gateway and by fakes in tests.
type Browser interface {
	// Guilds returns all joined guilds with their text channels.
	Guilds(ctx context.Context) ([]Guild, error)

	// RecentMessages returns up to limit of the channel's most recent
	// messages, newest first.
	RecentMessages(ctx context.Context, channelID string, limit int) ([]Message, error)
}

// Result is one search hit. Results are immutable once emitted.
type Result struct {
	Content   string
	Link      string
	Channel   string
	Author    string
	Timestamp time.Time
}

// Engine scans recent messages across every readable channel.
type Engine struct {
	browser Browser
	selfID  string // bot's own user ID, excluded from results
	logger  *slog.Logger
}

// NewEngine creates a search engine. selfID is the bot's own user ID;
// its messages are never returned as results.
func NewEngine(browser Browser, selfID string, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{browser: browser, selfID: selfID, logger: logger}
}

// Search scans up to HistoryCap recent messages in every text channel of
// every joined guild and returns the messages whose content contains
// query (case-insensitive) and is at least minLength characters, sorted
// by timestamp descending. A channel that fails to fetch is logged and
// skipped; the scan continues. Context cancellation aborts the scan
// between fetches.
func (e *Engine) Search(ctx context.Context, query string, minLength int) ([]Result, error) {
	start := time.Now()
	needle := strings.ToLower(query)

	guilds, err := e.browser.Guilds(ctx)
	if err != nil {
		return nil, fmt.Errorf("list guilds: %w", err)
	}

	var results []Result
	for _, guild := range guilds {
		e.logger.Info("searching guild", "guild", guild.Name, "channels", len(guild.Channels))

		for _, ch := range guild.Channels {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			msgs, err := e.browser.RecentMessages(ctx, ch.ID, HistoryCap)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				e.logger.Warn("channel fetch failed, skipping",
					"guild", guild.Name, "channel", ch.Name, "error", err)
				continue
			}

			for _, msg := range msgs {
				if msg.AuthorID == e.selfID {
					continue
				}
				if utf8.RuneCountInString(msg.Content) < minLength {
					continue
				}
				if !strings.Contains(strings.ToLower(msg.Content), needle) {
					continue
				}
				results = append(results, Result{
					Content:   msg.Content,
					Link:      DeepLink(guild.ID, ch.ID, msg.ID),
					Channel:   ch.Name,
					Author:    msg.AuthorName,
					Timestamp: msg.Timestamp,
				})
			}
		}
	}

	// One total order across all channels, regardless of fetch order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Timestamp.After(results[j].Timestamp)
	})

	e.logger.Info("search complete",
		"query", query,
		"min_length", minLength,
		"results", len(results),
		"elapsed", time.Since(start).Round(time.Millisecond))

	return results, nil
}

// DeepLink builds the canonical URL that jumps straight to a message.
func DeepLink(guildID, channelID, messageID string) string {
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", guildID, channelID, messageID)
}
