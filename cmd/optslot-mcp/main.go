package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/vthunder/optslot/internal/catalog"
	"github.com/vthunder/optslot/internal/mcp"
	"github.com/vthunder/optslot/internal/tools"
)

func main() {
	// Log to stderr so stdout is clean for JSON-RPC
	log.SetOutput(os.Stderr)
	log.SetPrefix("[optslot-mcp] ")

	// Load .env file if present (don't error if missing)
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}

	log.Println("Starting optslot MCP server...")

	store := catalog.NewStore()
	registry := tools.NewRegistry(tools.New(store))

	server := mcp.NewServer(registry)
	if err := server.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
