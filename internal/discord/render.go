package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/brogergvhs/xkcdbot/internal/comic"
	"github.com/brogergvhs/xkcdbot/internal/navigator"
)

const customIDPrefix = "xkcd:"

func Embed(c comic.Comic) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       c.Title,
		Description: c.AltText,
		Image:       &discordgo.MessageEmbedImage{URL: c.ImageURL},
		Footer:      &discordgo.MessageEmbedFooter{Text: c.Footer()},
	}
}

// Components lays the controls out as a single row of buttons.
func Components(controls []navigator.Control) []discordgo.MessageComponent {
	if len(controls) == 0 {
		return []discordgo.MessageComponent{}
	}

	buttons := make([]discordgo.MessageComponent, 0, len(controls))
	for _, c := range controls {
		if c.IsLink() {
			buttons = append(buttons, discordgo.Button{
				Label: c.Label,
				Style: discordgo.LinkButton,
				URL:   c.URL,
			})
			continue
		}

		buttons = append(buttons, discordgo.Button{
			Label:    c.Label,
			Style:    discordgo.PrimaryButton,
			CustomID: CustomID(c.Action),
		})
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	}
}

func CustomID(a navigator.Action) string {
	return customIDPrefix + a.String()
}

func ParseCustomID(id string) (navigator.Action, bool) {
	rest, ok := strings.CutPrefix(id, customIDPrefix)
	if !ok {
		return 0, false
	}
	return navigator.ParseAction(rest)
}
