package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/brogergvhs/xkcdbot/internal/comic"
	"github.com/brogergvhs/xkcdbot/internal/navigator"
	"github.com/brogergvhs/xkcdbot/internal/resolve"
)

// session is the part of *discordgo.Session the handlers use.
type session interface {
	InteractionRespond(i *discordgo.Interaction, r *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(i *discordgo.Interaction, e *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(i *discordgo.Interaction, wait bool, p *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type Logger interface {
	Debugf(string, ...any)
	Infof(string, ...any)
	Errorf(string, ...any)
}

type Options struct {
	Token   string
	GuildID string
	Status  string
	Version string
	// SweepInterval is how often expired navigators are retired.
	SweepInterval time.Duration
}

type Bot struct {
	dg       *discordgo.Session
	sess     session
	resolver *resolve.Resolver
	nav      *navigator.Navigator
	log      Logger
	opts     Options

	ctx context.Context
}

func New(resolver *resolve.Resolver, nav *navigator.Navigator, log Logger, opts Options) (*Bot, error) {
	if opts.Token == "" {
		return nil, errors.New("discord: empty token")
	}

	dg, err := discordgo.New("Bot " + opts.Token)
	if err != nil {
		return nil, fmt.Errorf("discord: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	b := newBot(dg, resolver, nav, log, opts)
	b.dg = dg

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onInteraction)

	return b, nil
}

func newBot(sess session, resolver *resolve.Resolver, nav *navigator.Navigator, log Logger, opts Options) *Bot {
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = time.Minute
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	return &Bot{
		sess:     sess,
		resolver: resolver,
		nav:      nav,
		log:      log,
		opts:     opts,
		ctx:      context.Background(),
	}
}

// Run connects, registers the command group and serves until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	b.ctx = ctx

	if n, err := b.resolver.UpdateIndex(ctx); err != nil {
		b.log.Errorf("%v\n", err)
	} else {
		b.log.Infof("Name index loaded: %d titles\n", n)
	}

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("discord: open session: %w", err)
	}
	defer func() {
		if err := b.dg.Close(); err != nil {
			b.log.Errorf("discord: close session: %v\n", err)
		}
	}()

	if _, err := b.dg.ApplicationCommandBulkOverwrite(b.dg.State.User.ID, b.opts.GuildID, Commands()); err != nil {
		return fmt.Errorf("discord: register commands: %w", err)
	}
	b.log.Infof("Registered /%s (guild=%q)\n", CommandName, b.opts.GuildID)

	go b.nav.Run(ctx, b.opts.SweepInterval)

	<-ctx.Done()
	b.log.Infof("Shutting down\n")

	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Infof("Logged in as %s\n", r.User.String())

	if b.opts.Status == "" {
		return
	}
	if err := s.UpdateWatchStatus(0, b.opts.Status); err != nil {
		b.log.Errorf("discord: presence: %v\n", err)
	}
}

func (b *Bot) onInteraction(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	b.handle(b.ctx, i.Interaction)
}

func (b *Bot) handle(ctx context.Context, i *discordgo.Interaction) {
	var err error

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		err = b.handleCommand(ctx, i)
	case discordgo.InteractionMessageComponent:
		err = b.handleButton(ctx, i)
	default:
		return
	}

	if err != nil {
		b.log.Errorf("discord: interaction %s: %v\n", i.ID, err)
	}
}

func (b *Bot) handleCommand(ctx context.Context, i *discordgo.Interaction) error {
	data := i.ApplicationCommandData()
	if data.Name != CommandName || len(data.Options) == 0 {
		return nil
	}

	sub := data.Options[0]
	a := optionMap(sub.Options)
	b.log.Debugf("/%s %s\n", data.Name, sub.Name)

	buttons := a.boolValue("buttons")

	switch sub.Name {
	case "latest":
		return b.replyComics(ctx, i, true, single(b.resolver.Latest))
	case "random":
		return b.replyComics(ctx, i, true, single(b.resolver.Random))
	case "get":
		n := a.intValue("num")
		return b.replyComics(ctx, i, buttons, single(func(ctx context.Context) comic.Comic {
			return b.resolver.Get(ctx, n)
		}))
	case "lookup":
		name := a.stringValue("name")
		return b.replyComics(ctx, i, buttons, single(func(ctx context.Context) comic.Comic {
			return b.resolver.Lookup(ctx, name)
		}))
	case "range":
		return b.replyRange(ctx, i, a.intValue("first"), a.intValue("last"), buttons)
	case "update":
		return b.replyUpdate(ctx, i)
	case "help":
		return b.sess.InteractionRespond(i, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Flags:      discordgo.MessageFlagsEphemeral,
				Embeds:     []*discordgo.MessageEmbed{helpEmbed(b.opts.Version)},
				Components: helpComponents(),
			},
		})
	default:
		return fmt.Errorf("unknown subcommand %q", sub.Name)
	}
}

// deferReply acknowledges the interaction so slow fetches do not hit the
// three second response window.
func (b *Bot) deferReply(i *discordgo.Interaction, ephemeral bool) error {
	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}
	if ephemeral {
		resp.Data = &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral}
	}
	return b.sess.InteractionRespond(i, resp)
}

// fetchFunc produces the comics for one command. It runs only after the
// interaction has been acknowledged.
type fetchFunc func(ctx context.Context) ([]comic.Comic, error)

func single(f func(context.Context) comic.Comic) fetchFunc {
	return func(ctx context.Context) ([]comic.Comic, error) {
		return []comic.Comic{f(ctx)}, nil
	}
}

func (b *Bot) replyComics(ctx context.Context, i *discordgo.Interaction, buttons bool, fetch fetchFunc) error {
	if err := b.deferReply(i, false); err != nil {
		return err
	}

	comics, err := fetch(ctx)
	if err != nil {
		content := "Something went wrong while fetching comics."
		if _, eerr := b.sess.InteractionResponseEdit(i, &discordgo.WebhookEdit{Content: &content}); eerr != nil {
			b.log.Errorf("discord: interaction %s: %v\n", i.ID, eerr)
		}
		return err
	}

	for idx, c := range comics {
		var msg *discordgo.Message

		embeds := []*discordgo.MessageEmbed{Embed(c)}
		if idx == 0 {
			msg, err = b.sess.InteractionResponseEdit(i, &discordgo.WebhookEdit{Embeds: &embeds})
		} else {
			msg, err = b.sess.FollowupMessageCreate(i, true, &discordgo.WebhookParams{Embeds: embeds})
		}
		if err != nil {
			return err
		}

		if !buttons {
			continue
		}

		target := &messageTarget{sess: b.sess, channelID: msg.ChannelID, messageID: msg.ID}
		if _, err := b.nav.Open(ctx, c, target); err != nil {
			return err
		}
	}

	return nil
}

// replyRange rejects bad ranges immediately and without fetching.
func (b *Bot) replyRange(ctx context.Context, i *discordgo.Interaction, first, last int, buttons bool) error {
	if err := b.resolver.CheckRange(first, last); err != nil {
		return b.sess.InteractionRespond(i, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{Content: rangeMessage(err, b.resolver.MaxRange())},
		})
	}

	return b.replyComics(ctx, i, buttons, func(ctx context.Context) ([]comic.Comic, error) {
		return b.resolver.Range(ctx, first, last)
	})
}

func (b *Bot) replyUpdate(ctx context.Context, i *discordgo.Interaction) error {
	if err := b.deferReply(i, true); err != nil {
		return err
	}

	content := "Updated"
	if n, err := b.resolver.UpdateIndex(ctx); err != nil {
		b.log.Errorf("%v\n", err)
		content = "Index update failed"
	} else {
		b.log.Infof("Name index updated: %d titles\n", n)
	}

	_, err := b.sess.InteractionResponseEdit(i, &discordgo.WebhookEdit{Content: &content})
	return err
}

func (b *Bot) handleButton(ctx context.Context, i *discordgo.Interaction) error {
	action, ok := ParseCustomID(i.MessageComponentData().CustomID)
	if !ok || i.Message == nil {
		return nil
	}

	if err := b.sess.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		return err
	}

	err := b.nav.Press(ctx, i.Message.ID, action)
	if errors.Is(err, navigator.ErrExpired) {
		_, ferr := b.sess.FollowupMessageCreate(i, false, &discordgo.WebhookParams{
			Content: "These buttons have expired. Run the command again for new ones.",
			Flags:   discordgo.MessageFlagsEphemeral,
		})
		return ferr
	}

	return err
}
