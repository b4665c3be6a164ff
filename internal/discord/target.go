package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/brogergvhs/xkcdbot/internal/navigator"
)

// messageTarget redraws one channel message in place.
type messageTarget struct {
	sess      session
	channelID string
	messageID string
}

func (t *messageTarget) ID() string {
	return t.messageID
}

// Render replaces content, embeds and components in a single edit.
func (t *messageTarget) Render(ctx context.Context, v navigator.View) error {
	content := ""
	embeds := []*discordgo.MessageEmbed{Embed(v.Comic)}
	components := Components(v.Controls)

	_, err := t.sess.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         t.messageID,
		Channel:    t.channelID,
		Content:    &content,
		Embeds:     &embeds,
		Components: &components,
	}, discordgo.WithContext(ctx))

	return err
}

func (t *messageTarget) Detach(ctx context.Context) error {
	components := []discordgo.MessageComponent{}

	_, err := t.sess.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         t.messageID,
		Channel:    t.channelID,
		Components: &components,
	}, discordgo.WithContext(ctx))

	return err
}
