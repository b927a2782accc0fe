package main

import (
	"context"
	"log"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	// stdout carries the protocol
	log.SetOutput(os.Stderr)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "cleaning-intake-summary-mcp",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse_intake_summary",
		Description: "Extracts the internal intake summary from a chat reply and reports which request fields are still missing",
	}, ParseIntakeSummary)

	log.Printf("Registered MCP tools: parse_intake_summary")

	transport := mcp.NewStdioTransport()
	if err := server.Run(context.Background(), transport); err != nil {
		log.Fatalf("Summary MCP server failed: %v", err)
	}
}
