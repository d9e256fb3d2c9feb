// Package senses connects external chat surfaces to the agent.
package senses

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/vthunder/optslot/internal/agent"
	"github.com/vthunder/optslot/internal/catalog"
	"github.com/vthunder/optslot/internal/logging"
)

const replyTimeout = 90 * time.Second

// DiscordSense listens to Discord messages and answers them through the
// agent
type DiscordSense struct {
	session   *discordgo.Session
	channelID string
	botID     string
	agent     *agent.Agent
	store     *catalog.Store
}

// DiscordConfig holds Discord connection settings
type DiscordConfig struct {
	Token     string
	ChannelID string
}

// NewDiscordSense creates a new Discord sense
func NewDiscordSense(cfg DiscordConfig, a *agent.Agent, store *catalog.Store) (*DiscordSense, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	sense := &DiscordSense{
		session:   session,
		channelID: cfg.ChannelID,
		agent:     a,
		store:     store,
	}

	session.AddHandler(sense.handleMessage)

	// We only need message content
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentsMessageContent

	return sense, nil
}

// Start connects to Discord and begins listening
func (d *DiscordSense) Start() error {
	if err := d.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	// Bot's user ID, for self-filtering
	d.botID = d.session.State.User.ID
	logging.Info("discord", "Connected as %s", d.session.State.User.Username)

	return nil
}

// Stop disconnects from Discord
func (d *DiscordSense) Stop() error {
	return d.session.Close()
}

// handleMessage answers one incoming Discord message
func (d *DiscordSense) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore messages from self
	if m.Author.ID == d.botID {
		return
	}

	// Only process messages from the configured channel (if set)
	if d.channelID != "" && m.ChannelID != d.channelID {
		return
	}

	message := strings.TrimSpace(m.Content)
	if message == "" {
		return
	}

	logging.Debug("discord", "message from %s: %s",
		m.Author.Username, logging.Truncate(message, 50))

	response := d.respond(message)
	if _, err := s.ChannelMessageSend(m.ChannelID, response); err != nil {
		logging.Warn("discord", "failed to send reply: %v", err)
	}
}

func (d *DiscordSense) respond(message string) string {
	if agent.IsHelpRequest(message) {
		return agent.Help(d.store)
	}

	ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
	defer cancel()

	return d.agent.ProcessMessage(ctx, message).Response
}
