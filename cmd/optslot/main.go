package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/vthunder/optslot/internal/agent"
	"github.com/vthunder/optslot/internal/catalog"
	"github.com/vthunder/optslot/internal/intent"
	"github.com/vthunder/optslot/internal/llm"
	"github.com/vthunder/optslot/internal/senses"
	"github.com/vthunder/optslot/internal/server"
	"github.com/vthunder/optslot/internal/tools"
)

func main() {
	log.Println("optslot - warehouse slotting assistant")
	log.Println("======================================")

	// Load .env file (optional - won't error if missing)
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, using environment variables")
	} else {
		log.Println("[config] Loaded .env file")
	}

	// Config from environment
	addr := os.Getenv("OPTSLOT_ADDR")
	if addr == "" {
		addr = ":8000"
	}
	rulesDir := os.Getenv("INTENT_RULES_DIR")
	discordToken := os.Getenv("DISCORD_TOKEN")
	discordChannel := os.Getenv("DISCORD_CHANNEL_ID")

	// Warehouse catalog with seed data
	store := catalog.NewStore()
	registry := tools.NewRegistry(tools.New(store))

	// Intent resolver, with optional extra rules
	resolver := intent.NewResolver(store)
	if rulesDir != "" {
		if err := resolver.LoadRulesDir(rulesDir); err != nil {
			log.Printf("[config] Warning: failed to load intent rules from %s: %v", rulesDir, err)
		}
	}

	// OpenAI client is optional; without it the agent degrades to tool
	// output only
	var chat llm.ChatClient
	if client, err := llm.NewOpenAIClient(); err != nil {
		log.Printf("[config] Warning: %v, responses will use tool output only", err)
	} else {
		chat = client
	}

	a := agent.New(resolver, registry, chat)

	// HTTP frontend
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.NewHandler(a, registry, store).Mux(),
	}
	go func() {
		log.Printf("[main] HTTP listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Discord frontend (optional)
	var discordSense *senses.DiscordSense
	if discordToken != "" {
		sense, err := senses.NewDiscordSense(senses.DiscordConfig{
			Token:     discordToken,
			ChannelID: discordChannel,
		}, a, store)
		if err != nil {
			log.Fatalf("Failed to create Discord sense: %v", err)
		}
		if err := sense.Start(); err != nil {
			log.Fatalf("Failed to start Discord sense: %v", err)
		}
		discordSense = sense
	} else {
		log.Println("[main] DISCORD_TOKEN not set, Discord frontend disabled")
	}

	log.Println("[main] All subsystems started. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("[main] Shutting down...")

	if discordSense != nil {
		if err := discordSense.Stop(); err != nil {
			log.Printf("Warning: failed to stop Discord sense: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Warning: HTTP shutdown: %v", err)
	}

	log.Println("[main] Goodbye!")
}
