// Package discord adapts the discordgo client to the search engine's
// Browser interface: guild/channel enumeration from the gateway state
// cache and bounded history fetches over the REST API.
package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/scourbot/scour/internal/search"
)

// fetchBatch is the REST API's maximum page size for channel messages.
const fetchBatch = 100

// Browser implements search.Browser over a connected discordgo session.
type Browser struct {
	s *discordgo.Session
}

// NewBrowser wraps a discordgo session. The session should be opened
// (or at least have a populated state cache) before the browser is used.
func NewBrowser(s *discordgo.Session) *Browser {
	return &Browser{s: s}
}

// Guilds returns every joined guild with its text channels, from the
// gateway state cache. Voice channels, categories, and threads are
// excluded; channels the bot cannot actually read surface later as
// per-channel fetch errors, which the engine skips.
func (b *Browser) Guilds(_ context.Context) ([]search.Guild, error) {
	b.s.State.RLock()
	defer b.s.State.RUnlock()

	guilds := make([]search.Guild, 0, len(b.s.State.Guilds))
	for _, g := range b.s.State.Guilds {
		sg := search.Guild{ID: g.ID, Name: g.Name}
		for _, ch := range g.Channels {
			if ch.Type != discordgo.ChannelTypeGuildText {
				continue
			}
			sg.Channels = append(sg.Channels, search.Channel{ID: ch.ID, Name: ch.Name})
		}
		guilds = append(guilds, sg)
	}
	return guilds, nil
}

// RecentMessages fetches up to limit of the channel's newest messages,
// paging backwards through the REST API in batches of fetchBatch.
func (b *Browser) RecentMessages(ctx context.Context, channelID string, limit int) ([]search.Message, error) {
	guildID := ""
	if ch, err := b.s.State.Channel(channelID); err == nil {
		guildID = ch.GuildID
	}

	var out []search.Message
	beforeID := ""
	for len(out) < limit {
		n := limit - len(out)
		if n > fetchBatch {
			n = fetchBatch
		}

		msgs, err := b.s.ChannelMessages(channelID, n, beforeID, "", "", discordgo.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		if len(msgs) == 0 {
			break // channel history exhausted
		}

		for _, m := range msgs {
			if m.Author == nil {
				continue
			}
			out = append(out, search.Message{
				ID:         m.ID,
				Content:    m.Content,
				AuthorID:   m.Author.ID,
				AuthorName: b.displayName(guildID, m.Author),
				Timestamp:  m.Timestamp,
			})
		}
		beforeID = msgs[len(msgs)-1].ID
	}

	return out, nil
}

// displayName resolves how the author should be shown: server nickname
// when the member is cached and has one, then the account display name,
// then the bare username.
func (b *Browser) displayName(guildID string, u *discordgo.User) string {
	if guildID != "" {
		if member, err := b.s.State.Member(guildID, u.ID); err == nil && member.Nick != "" {
			return member.Nick
		}
	}
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}
