package discord

import "github.com/bwmarrin/discordgo"

const CommandName = "xkcd"

func buttonsOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "buttons",
		Description: "Whether to show navigation buttons",
	}
}

// Commands is the slash command group registered with Discord.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandName,
			Description: "xkcd related commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "latest",
					Description: "Gets the latest xkcd",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "random",
					Description: "Get a random xkcd",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "range",
					Description: "Gets a range of xkcd comics",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "first",
							Description: "The first comic to get",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "last",
							Description: "The last comic to get",
							Required:    true,
						},
						buttonsOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "get",
					Description: "Get a specific xkcd comic",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "num",
							Description: "The comic to get",
							Required:    true,
						},
						buttonsOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "lookup",
					Description: "Get a comic by its name",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "The name of the comic to get",
							Required:    true,
						},
						buttonsOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "update",
					Description: "Force update the comic name to id map",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "help",
					Description: "Bot information and help",
				},
			},
		},
	}
}

type args map[string]*discordgo.ApplicationCommandInteractionDataOption

func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) args {
	m := make(args, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}

func (a args) intValue(name string) int {
	if o, ok := a[name]; ok {
		return int(o.IntValue())
	}
	return 0
}

func (a args) stringValue(name string) string {
	if o, ok := a[name]; ok {
		return o.StringValue()
	}
	return ""
}

func (a args) boolValue(name string) bool {
	if o, ok := a[name]; ok {
		return o.BoolValue()
	}
	return false
}
