package discord

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

// pageSession is the live state of one paginated market message.
// Gateway events arrive on separate goroutines, so concurrent button
// clicks on the same message hit the same session; the page counter is
// mutex-guarded.
type pageSession struct {
	Title string
	Lines []string

	mu   sync.Mutex
	page int
}

// Page returns the current zero-based page.
func (p *pageSession) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// move shifts the page by delta, clamped to the valid range, and
// returns the resulting page.
func (p *pageSession) move(delta int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.page += delta
	if p.page < 0 {
		p.page = 0
	}
	if last := pageCount(len(p.Lines)) - 1; p.page > last {
		p.page = last
	}
	return p.page
}

// newPageSession stores pagination state and returns its key.
func newPageSession(svc *Services, title string, lines []string) (string, *pageSession) {
	key := uuid.NewString()
	session := &pageSession{Title: title, Lines: lines}
	svc.Pages.Add(key, session)
	return key, session
}

// renderPage builds the embed for the session's current page.
func renderPage(session *pageSession) *discordgo.MessageEmbed {
	page := session.Page()
	embed := createEmbed(session.Title, strings.Join(pageSlice(session.Lines, page), "\n\n"), ColorMarket)
	embed.Footer.Text = fmt.Sprintf("%s • Seite %d/%d", FooterMarketBot, page+1, pageCount(len(session.Lines)))
	return embed
}

// pageComponents builds the ⏪/⏩/Fertig button row for a session. The
// arrows are disabled at the edges instead of wrapping around.
func pageComponents(key string, session *pageSession) []discordgo.MessageComponent {
	page := session.Page()
	last := pageCount(len(session.Lines)) - 1
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Emoji:    &discordgo.ComponentEmoji{Name: "⏪"},
					Style:    discordgo.SecondaryButton,
					CustomID: ComponentPrevPage + ":" + key,
					Disabled: page == 0,
				},
				discordgo.Button{
					Emoji:    &discordgo.ComponentEmoji{Name: "⏩"},
					Style:    discordgo.SecondaryButton,
					CustomID: ComponentNextPage + ":" + key,
					Disabled: page >= last,
				},
				discordgo.Button{
					Label:    LabelDone,
					Style:    discordgo.DangerButton,
					CustomID: ComponentDone + ":" + key,
				},
			},
		},
	}
}

// HandleComponent processes pagination button clicks.
func HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
	action, key, ok := splitCustomID(i.MessageComponentData().CustomID)
	if !ok {
		return
	}

	if action == ComponentDone {
		svc.Pages.Remove(key)
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredMessageUpdate,
		}); err != nil {
			slog.Error("Failed to acknowledge done button", "error", err)
			return
		}
		if err := s.InteractionResponseDelete(i.Interaction); err != nil {
			slog.Debug("Failed to delete finished market message", "error", err)
		}
		return
	}

	session, ok := svc.Pages.Get(key)
	if !ok {
		// State expired; the stale message offers nothing to update.
		respondExpired(s, i)
		return
	}

	switch action {
	case ComponentPrevPage:
		session.move(-1)
	case ComponentNextPage:
		session.move(1)
	default:
		return
	}

	embed := renderPage(session)
	components := pageComponents(key, session)
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	}); err != nil {
		slog.Error("Failed to update paginated message", "error", err)
	}
}

// splitCustomID splits "action:key" component IDs.
func splitCustomID(customID string) (action, key string, ok bool) {
	action, key, ok = strings.Cut(customID, ":")
	return action, key, ok && key != ""
}

func respondExpired(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: MsgGenericError,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		slog.Error("Failed to respond to expired session", "error", err)
	}
}
