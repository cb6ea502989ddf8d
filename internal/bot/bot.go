// Package bot runs the Discord side of the stat tracker: admins mark
// scoreboard screenshots with a reaction to archive them, >update runs the
// extraction pipeline with progress posted to a log channel, and >tab
// serves the interactive leaderboard.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/config"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/ingest"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/report"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/storage"
)

// captureEmoji is the reaction admins use to archive a screenshot.
const captureEmoji = "✅"

// Bot wires a Discord session to the ingest pipeline and the stores.
type Bot struct {
	session *discordgo.Session
	cfg     *config.Config
	runner  *ingest.Runner
	log     *slog.Logger

	mu    sync.Mutex
	views map[string]*tableView
}

// New builds the session and registers the gateway handlers. The session
// is not opened until Run.
func New(cfg *config.Config, runner *ingest.Runner, logger *slog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentGuildMessages |
		discordgo.IntentGuildMessageReactions |
		discordgo.IntentMessageContent

	b := &Bot{
		session: session,
		cfg:     cfg,
		runner:  runner,
		log:     logger,
		views:   make(map[string]*tableView),
	}
	session.AddHandler(b.onReady)
	session.AddHandler(b.onMessageCreate)
	session.AddHandler(b.onReactionAdd)
	session.AddHandler(b.onReactionRemove)
	session.AddHandler(b.onInteraction)
	return b, nil
}

// Run prepares the on-disk stores, opens the gateway and blocks until ctx
// is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if err := storage.Init(b.runner.RawPath, b.runner.AveragesPath); err != nil {
		return fmt.Errorf("prepare stores: %w", err)
	}
	if err := os.MkdirAll(b.runner.Library.Dir(), 0o755); err != nil {
		return fmt.Errorf("prepare image dir: %w", err)
	}
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	<-ctx.Done()
	return b.session.Close()
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.log.Info("gateway ready", "user", r.User.Username)
}

func (b *Bot) isAdmin(userID string) bool {
	return slices.Contains(b.cfg.AdminIDs, userID)
}

// isCaptureEvent reports whether a reaction event should be treated as an
// archive command: right channel, right emoji, admin author.
func (b *Bot) isCaptureEvent(r *discordgo.MessageReaction) bool {
	return slices.Contains(b.cfg.TargetChannels, r.ChannelID) &&
		r.Emoji.Name == captureEmoji &&
		b.isAdmin(r.UserID)
}

func (b *Bot) reply(s *discordgo.Session, channelID, text string) {
	if _, err := s.ChannelMessageSend(channelID, text); err != nil {
		b.log.Warn("send message", "channel", channelID, "error", err)
	}
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	fields := strings.Fields(m.Content)
	if len(fields) == 0 {
		return
	}
	switch fields[0] {
	case ">update":
		b.handleUpdate(s, m)
	case ">tab":
		b.handleTab(s, m)
	}
}

func (b *Bot) handleUpdate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if !b.isAdmin(m.Author.ID) {
		b.reply(s, m.ChannelID, "❌ You do not have permission to run this command.")
		return
	}
	if _, err := s.Channel(b.cfg.LogChannelID); err != nil {
		b.log.Error("log channel lookup", "channel", b.cfg.LogChannelID, "error", err)
		b.reply(s, m.ChannelID, "❌ Configuration error: the log channel was not found.")
		return
	}
	b.reply(s, m.ChannelID, fmt.Sprintf(
		"✅ Command accepted. Starting a full statistics update; results will appear in <#%s>.",
		b.cfg.LogChannelID,
	))
	go b.runUpdate(s, m.Author.ID)
}

// runUpdate executes the whole pipeline on its own goroutine, posting each
// milestone to the log channel as it happens.
func (b *Bot) runUpdate(s *discordgo.Session, requesterID string) {
	sendLog := func(msg string) {
		b.reply(s, b.cfg.LogChannelID, msg)
	}
	sendLog(fmt.Sprintf("⏳ <@%s> started a full statistics update...", requesterID))

	rep, err := b.runner.Run(context.Background(), sendLog)
	if err != nil {
		b.log.Error("update run", "error", err)
		sendLog(fmt.Sprintf("❌ Update failed: %v", err))
		return
	}
	sendLog(updateSummary(rep, b.runner.MinGames, b.runner.RecentWindow))
}

// updateSummary renders the final log-channel message for one update run.
func updateSummary(rep *ingest.Report, minGames, recentWindow int) string {
	if rep.Result == nil {
		return "⚠️ Update finished, but there is no raw match data to analyze."
	}
	var sb strings.Builder
	sb.WriteString("🎉 **Update complete!**\n")
	fmt.Fprintf(&sb, "> Statistics updated for **%d** player(s).\n", rep.Result.Players)
	fmt.Fprintf(&sb, "> (Requirements: at least **%d** games and activity in the **%d** most recent matches.)\n",
		minGames, recentWindow)
	fmt.Fprintf(&sb, "⚔️ Total server kills: `%d`\n", rep.Result.TotalKills)
	fmt.Fprintf(&sb, "💀 Total server deaths: `%d`", rep.Result.TotalDeaths)
	return sb.String()
}

func (b *Bot) onReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if !b.isCaptureEvent(r.MessageReaction) {
		return
	}
	msg, err := s.ChannelMessage(r.ChannelID, r.MessageID)
	if err != nil {
		b.log.Warn("fetch reacted message", "message", r.MessageID, "error", err)
		return
	}
	for _, att := range msg.Attachments {
		if !strings.Contains(att.ContentType, "image") {
			continue
		}
		path, err := b.runner.Library.Save(context.Background(), r.MessageID, att.Filename, att.URL)
		if err != nil {
			b.log.Warn("save attachment", "attachment", att.Filename, "error", err)
			continue
		}
		b.log.Info("screenshot archived", "path", path)
	}
}

func (b *Bot) onReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	if !b.isCaptureEvent(r.MessageReaction) {
		return
	}
	msg, err := s.ChannelMessage(r.ChannelID, r.MessageID)
	if err != nil {
		b.log.Warn("fetch unreacted message", "message", r.MessageID, "error", err)
		return
	}
	for _, att := range msg.Attachments {
		if err := b.runner.Library.Remove(r.MessageID, att.Filename); err != nil {
			b.log.Warn("remove attachment", "attachment", att.Filename, "error", err)
			continue
		}
		b.log.Info("screenshot dropped", "message", r.MessageID, "attachment", att.Filename)
	}
}

func (b *Bot) handleTab(s *discordgo.Session, m *discordgo.MessageCreate) {
	averages, err := storage.LoadAverages(b.runner.AveragesPath)
	if err != nil {
		b.log.Warn("load averages", "error", err)
	}
	if len(averages) == 0 {
		b.reply(s, m.ChannelID, fmt.Sprintf(
			"No statistics yet, or nobody passed the filter (minimum **%d** games). Run `>update` first.",
			b.runner.MinGames,
		))
		return
	}

	view := newTableView(report.Rows(averages), b.runner.MinGames)
	msg, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{view.embed()},
		Components: view.components(),
	})
	if err != nil {
		b.log.Warn("send leaderboard", "error", err)
		return
	}
	b.registerView(msg.ID, view)
}

// registerView tracks the view behind a freshly sent leaderboard message
// and drops any views whose buttons have already gone stale.
func (b *Bot) registerView(messageID string, v *tableView) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, old := range b.views {
		if old.expired() {
			delete(b.views, id)
		}
	}
	b.views[messageID] = v
}

// renderPress applies one button press and returns the re-rendered message
// parts, or ok=false when the press changes nothing.
func (b *Bot) renderPress(messageID, customID string) (*discordgo.MessageEmbed, []discordgo.MessageComponent, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.views[messageID]
	if !ok || v.expired() {
		return nil, nil, false
	}
	if !v.apply(customID) {
		return nil, nil, false
	}
	return v.embed(), v.components(), true
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent || i.Message == nil {
		return
	}
	embed, components, ok := b.renderPress(i.Message.ID, i.MessageComponentData().CustomID)
	if !ok {
		// Stale view or a no-op press: acknowledge so Discord does not
		// show "interaction failed", leave the message alone.
		err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredMessageUpdate,
		})
		if err != nil {
			b.log.Warn("ack interaction", "error", err)
		}
		return
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
	if err != nil {
		b.log.Warn("update leaderboard message", "error", err)
	}
}
