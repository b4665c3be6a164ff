package discord

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brogergvhs/xkcdbot/internal/comic"
	"github.com/brogergvhs/xkcdbot/internal/index"
	"github.com/brogergvhs/xkcdbot/internal/navigator"
	"github.com/brogergvhs/xkcdbot/internal/resolve"
	"github.com/brogergvhs/xkcdbot/internal/ui"
	"github.com/brogergvhs/xkcdbot/internal/xkcdtest"
)

type fakeSession struct {
	mu        sync.Mutex
	next      int
	responses []*discordgo.InteractionResponse
	edits     []*discordgo.WebhookEdit
	followups []*discordgo.WebhookParams
	messages  []*discordgo.MessageEdit

	// calls records responses and fetches in the order they happen.
	calls []string
}

func (s *fakeSession) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *fakeSession) callLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// orderedSource notes every fetch in the session's call log.
type orderedSource struct {
	comic.Source
	sess *fakeSession
}

func (o orderedSource) Fetch(ctx context.Context, loc comic.Locator) comic.Comic {
	o.sess.record("fetch " + loc.String())
	return o.Source.Fetch(ctx, loc)
}

func (s *fakeSession) message() *discordgo.Message {
	s.next++
	return &discordgo.Message{ID: fmt.Sprintf("m%d", s.next), ChannelID: "c1"}
}

func (s *fakeSession) InteractionRespond(_ *discordgo.Interaction, r *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, r)
	s.calls = append(s.calls, "respond")
	return nil
}

func (s *fakeSession) InteractionResponseEdit(_ *discordgo.Interaction, e *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edits = append(s.edits, e)
	return s.message(), nil
}

func (s *fakeSession) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, p *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.followups = append(s.followups, p)
	return s.message(), nil
}

func (s *fakeSession) ChannelMessageEditComplex(m *discordgo.MessageEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
	return &discordgo.Message{ID: m.ID, ChannelID: m.Channel}, nil
}

func (s *fakeSession) lastMessageEdit() *discordgo.MessageEdit {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) == 0 {
		return nil
	}
	return s.messages[len(s.messages)-1]
}

func sitePages(from, to int) []xkcdtest.Page {
	var out []xkcdtest.Page
	for n := from; n <= to; n++ {
		out = append(out, xkcdtest.Page{
			Number: n,
			Title:  fmt.Sprintf("Comic %d", n),
			Hover:  fmt.Sprintf("hover %d", n),
		})
	}
	return out
}

type harness struct {
	bot  *Bot
	sess *fakeSession
	srv  *xkcdtest.Server
	nav  *navigator.Navigator
	now  time.Time
}

func newHarness(t *testing.T, ps ...xkcdtest.Page) *harness {
	t.Helper()

	srv := xkcdtest.NewServer(ps...)
	t.Cleanup(srv.Close)

	client := &http.Client{Timeout: 2 * time.Second}
	sess := &fakeSession{}
	src := orderedSource{Source: comic.NewFetcher(client, srv.URL, nil), sess: sess}
	names := index.New(client, srv.URL, nil)

	h := &harness{sess: sess, srv: srv, now: time.Unix(1700000000, 0)}
	h.nav = navigator.New(src, navigator.Options{
		TTL: time.Minute,
		Now: func() time.Time { return h.now },
	})
	res := resolve.New(src, names, resolve.Options{Workers: 2})
	h.bot = newBot(h.sess, res, h.nav, ui.NewLoggerTo(io.Discard, true), Options{Version: "1.2.3"})

	return h
}

func command(sub string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:   "i1",
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name: CommandName,
			Options: []*discordgo.ApplicationCommandInteractionDataOption{{
				Name:    sub,
				Type:    discordgo.ApplicationCommandOptionSubCommand,
				Options: opts,
			}},
		},
	}
}

func intOpt(name string, v int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name: name, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(v),
	}
}

func strOpt(name, v string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name: name, Type: discordgo.ApplicationCommandOptionString, Value: v,
	}
}

func boolOpt(name string, v bool) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name: name, Type: discordgo.ApplicationCommandOptionBoolean, Value: v,
	}
}

func press(messageID string, a navigator.Action) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:      "i2",
		Type:    discordgo.InteractionMessageComponent,
		Message: &discordgo.Message{ID: messageID, ChannelID: "c1"},
		Data:    discordgo.MessageComponentInteractionData{CustomID: CustomID(a)},
	}
}

func TestGetWithoutButtons(t *testing.T) {
	h := newHarness(t, sitePages(1, 5)...)

	h.bot.handle(context.Background(), command("get", intOpt("num", 3)))

	require.Len(t, h.sess.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseDeferredChannelMessageWithSource, h.sess.responses[0].Type)

	require.Len(t, h.sess.edits, 1)
	embeds := *h.sess.edits[0].Embeds
	require.Len(t, embeds, 1)
	assert.Equal(t, "Comic 3", embeds[0].Title)
	assert.Equal(t, "hover 3", embeds[0].Description)
	assert.Equal(t, "xkcd #3", embeds[0].Footer.Text)

	assert.Equal(t, 0, h.nav.Len())
	assert.Empty(t, h.sess.messages)
}

func TestGetWithButtonsThenNext(t *testing.T) {
	h := newHarness(t, sitePages(1, 5)...)
	ctx := context.Background()

	h.bot.handle(ctx, command("get", intOpt("num", 3), boolOpt("buttons", true)))
	require.Equal(t, 1, h.nav.Len())

	first := h.sess.lastMessageEdit()
	require.NotNil(t, first)
	assert.Equal(t, "m1", first.ID)
	assert.Equal(t, "c1", first.Channel)
	assert.Equal(t, "Comic 3", (*first.Embeds)[0].Title)

	h.bot.handle(ctx, press("m1", navigator.Next))

	last := h.sess.lastMessageEdit()
	assert.Equal(t, "Comic 4", (*last.Embeds)[0].Title)
	assert.Equal(t, discordgo.InteractionResponseDeferredMessageUpdate, h.sess.responses[len(h.sess.responses)-1].Type)

	row := (*last.Components)[0].(discordgo.ActionsRow)
	require.Len(t, row.Components, 5)
	assert.Equal(t, "https://xkcd.com/4", row.Components[3].(discordgo.Button).URL)
	assert.Equal(t, "https://www.explainxkcd.com/4", row.Components[4].(discordgo.Button).URL)

	n, ok := h.nav.Current("m1")
	require.True(t, ok)
	assert.Equal(t, 4, n)
}

func TestCommandsAcknowledgeBeforeFetching(t *testing.T) {
	cases := []struct {
		name string
		cmd  *discordgo.Interaction
	}{
		{"latest", command("latest")},
		{"random", command("random")},
		{"get", command("get", intOpt("num", 3))},
		{"lookup", command("lookup", strOpt("name", "comic 2"))},
		{"range", command("range", intOpt("first", 1), intOpt("last", 3))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, sitePages(1, 5)...)

			h.bot.handle(context.Background(), tc.cmd)

			calls := h.sess.callLog()
			require.NotEmpty(t, calls)
			assert.Equal(t, "respond", calls[0], "calls: %v", calls)
			assert.Greater(t, len(calls), 1, "expected fetches after the acknowledgement")
		})
	}
}

func TestLatestAlwaysHasButtons(t *testing.T) {
	h := newHarness(t, sitePages(1, 5)...)

	h.bot.handle(context.Background(), command("latest"))

	assert.Equal(t, 1, h.nav.Len())
	edit := h.sess.lastMessageEdit()
	require.NotNil(t, edit)
	assert.Equal(t, "xkcd #5", (*edit.Embeds)[0].Footer.Text)
}

func TestRangeTooLargeFetchesNothing(t *testing.T) {
	h := newHarness(t, sitePages(1, 30)...)

	h.bot.handle(context.Background(), command("range", intOpt("first", 1), intOpt("last", 12)))

	require.Len(t, h.sess.responses, 1)
	assert.Equal(t, "Cannot get more than 10 comics at once!", h.sess.responses[0].Data.Content)
	assert.Empty(t, h.sess.edits)
	assert.Zero(t, h.srv.TotalHits())
}

func TestRangeReversed(t *testing.T) {
	h := newHarness(t, sitePages(1, 30)...)

	h.bot.handle(context.Background(), command("range", intOpt("first", 5), intOpt("last", 2)))

	require.Len(t, h.sess.responses, 1)
	assert.Contains(t, h.sess.responses[0].Data.Content, "must not come after")
	assert.Zero(t, h.srv.TotalHits())
}

func TestRangeSendsOneMessagePerComic(t *testing.T) {
	h := newHarness(t, sitePages(1, 30)...)

	h.bot.handle(context.Background(), command("range", intOpt("first", 4), intOpt("last", 6), boolOpt("buttons", true)))

	require.Len(t, h.sess.edits, 1)
	assert.Equal(t, "Comic 4", (*h.sess.edits[0].Embeds)[0].Title)
	require.Len(t, h.sess.followups, 2)
	assert.Equal(t, "Comic 5", h.sess.followups[0].Embeds[0].Title)
	assert.Equal(t, "Comic 6", h.sess.followups[1].Embeds[0].Title)
	assert.Equal(t, 3, h.nav.Len())
}

func TestLookup(t *testing.T) {
	h := newHarness(t, sitePages(1, 5)...)
	ctx := context.Background()

	h.bot.handle(ctx, command("update"))
	require.Len(t, h.sess.edits, 1)
	assert.Equal(t, "Updated", *h.sess.edits[0].Content)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, h.sess.responses[0].Data.Flags)

	h.bot.handle(ctx, command("lookup", strOpt("name", "comic 2")))
	require.Len(t, h.sess.edits, 2)
	assert.Equal(t, "xkcd #2", (*h.sess.edits[1].Embeds)[0].Footer.Text)

	h.bot.handle(ctx, command("lookup", strOpt("name", "no such comic")))
	require.Len(t, h.sess.edits, 3)
	assert.Equal(t, comic.NotFoundTitle, (*h.sess.edits[2].Embeds)[0].Title)
}

func TestUpdateFailure(t *testing.T) {
	h := newHarness(t, sitePages(1, 5)...)
	h.srv.Handle("/archive/", http.StatusInternalServerError, "boom")

	h.bot.handle(context.Background(), command("update"))

	require.Len(t, h.sess.edits, 1)
	assert.Equal(t, "Index update failed", *h.sess.edits[0].Content)
}

func TestExpiredButtons(t *testing.T) {
	h := newHarness(t, sitePages(1, 5)...)
	ctx := context.Background()

	h.bot.handle(ctx, command("get", intOpt("num", 2), boolOpt("buttons", true)))
	h.now = h.now.Add(2 * time.Minute)

	h.bot.handle(ctx, press("m1", navigator.Previous))

	require.Len(t, h.sess.followups, 1)
	assert.Contains(t, h.sess.followups[0].Content, "expired")
	assert.Equal(t, discordgo.MessageFlagsEphemeral, h.sess.followups[0].Flags)
}

func TestPressOnUnknownMessage(t *testing.T) {
	h := newHarness(t, sitePages(1, 5)...)

	h.bot.handle(context.Background(), press("nope", navigator.Next))

	require.Len(t, h.sess.followups, 1)
	assert.Empty(t, h.sess.messages)
}

func TestHelp(t *testing.T) {
	h := newHarness(t)

	h.bot.handle(context.Background(), command("help"))

	require.Len(t, h.sess.responses, 1)
	data := h.sess.responses[0].Data
	assert.Equal(t, discordgo.MessageFlagsEphemeral, data.Flags)
	assert.Equal(t, "xkcd Bot v1.2.3", data.Embeds[0].Title)
	require.Len(t, data.Components, 1)
}

func TestCustomID(t *testing.T) {
	for _, a := range []navigator.Action{navigator.Previous, navigator.Random, navigator.Next} {
		got, ok := ParseCustomID(CustomID(a))
		require.True(t, ok)
		assert.Equal(t, a, got)
	}

	_, ok := ParseCustomID("other:next")
	assert.False(t, ok)
	_, ok = ParseCustomID("xkcd:sideways")
	assert.False(t, ok)
}

func TestComponentsEmpty(t *testing.T) {
	assert.Empty(t, Components(nil))
}
