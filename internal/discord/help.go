package discord

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/brogergvhs/xkcdbot/internal/resolve"
)

const (
	repoURL   = "https://github.com/brogergvhs/xkcdbot"
	issuesURL = repoURL + "/issues"
)

func helpEmbed(version string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "xkcd Bot v" + version,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "About",
				Value: "This bot provides commands for the xkcd webcomic (https://xkcd.com/)",
			},
			{
				Name: "Commands",
				Value: "`/xkcd get <num>            `- Get a specific xkcd comic by its number\n" +
					"`/xkcd range <first> <last> `- Get a range of xkcd comics from first to last\n" +
					"`/xkcd random               `- Get a random xkcd comic\n" +
					"`/xkcd lookup <name>        `- Get a specific comic by its name\n" +
					"`/xkcd latest               `- Get the latest xkcd\n" +
					"`/xkcd update               `- Refresh the comic name index\n\n" +
					"Any parameter named \"buttons\" controls whether to attach the navigation buttons to the message.",
			},
		},
	}
}

func helpComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "GitHub", Style: discordgo.LinkButton, URL: repoURL},
			discordgo.Button{Label: "Report an Issue", Style: discordgo.LinkButton, URL: issuesURL},
		}},
	}
}

func rangeMessage(err error, max int) string {
	if errors.Is(err, resolve.ErrReversedRange) {
		return "The first comic must not come after the last one!"
	}
	return fmt.Sprintf("Cannot get more than %d comics at once!", max)
}
