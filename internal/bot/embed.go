package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/scourbot/scour/internal/pager"
)

// embedColor is the accent color for result embeds.
const embedColor = 0x2ecc71

// resultEmbed maps a rendered page onto a Discord embed: one field per
// result with a jump link, and the page counter in the footer.
func resultEmbed(p pager.Page) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  p.Title,
		Color:  embedColor,
		Footer: &discordgo.MessageEmbedFooter{Text: p.Footer},
	}

	if len(p.Items) == 0 {
		embed.Description = p.Description
		return embed
	}

	for _, item := range p.Items {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   item.Heading,
			Value:  fmt.Sprintf("%s\n[Jump to message](%s)", item.Body, item.Link),
			Inline: false,
		})
	}

	return embed
}

// navComponents builds the Previous/Next button row bound to one owner
// and one control instance.
func navComponents(ownerID, viewID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Previous",
					Style:    discordgo.SecondaryButton,
					CustomID: navCustomID("prev", ownerID, viewID),
				},
				discordgo.Button{
					Label:    "Next",
					Style:    discordgo.SecondaryButton,
					CustomID: navCustomID("next", ownerID, viewID),
				},
			},
		},
	}
}
