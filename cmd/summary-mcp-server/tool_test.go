package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleaning-intake/internal/summary"
)

const completeReply = `Vielen Dank für Ihre Anfrage!

INTERNE_ZUSAMMENFASSUNG:
Neue Gebäudereinigungs-Anfrage:
- Reinigungsart: Büroreinigung
- Objekt/Fläche: Büro, 200 m²
- Besonderheiten: keine
- Terminwunsch: ab 1. November, wöchentlich
- Name: Erika Muster
- Telefon: 0151 2345678
- E-Mail: erika@example.com`

func call(t *testing.T, reply string) (*mcp.CallToolResultFor[any], ParseResult) {
	t.Helper()
	res, err := ParseIntakeSummary(context.Background(), nil, &mcp.CallToolParamsFor[ParseParams]{
		Arguments: ParseParams{Reply: reply},
	})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)

	var out ParseResult
	if !res.IsError {
		text := res.Content[0].(*mcp.TextContent).Text
		require.NoError(t, json.Unmarshal([]byte(text), &out))
	}
	return res, out
}

func TestParseIntakeSummary_Complete(t *testing.T) {
	_, out := call(t, completeReply)

	assert.True(t, out.HasSummary)
	assert.True(t, out.Complete)
	assert.Empty(t, out.Missing)
	assert.Equal(t, "Vielen Dank für Ihre Anfrage!", out.CustomerText)
	assert.Contains(t, out.Fields, summary.Field{Key: "Telefon", Value: "0151 2345678"})
}

func TestParseIntakeSummary_Incomplete(t *testing.T) {
	_, out := call(t, "Danke!\nINTERNE_ZUSAMMENFASSUNG:\n- Reinigungsart: Fensterreinigung\n- Telefon: ...")

	assert.True(t, out.HasSummary)
	assert.False(t, out.Complete)
	assert.Contains(t, out.Missing, "Telefon")
	assert.Contains(t, out.Missing, "Name")
	assert.NotContains(t, out.Missing, "Reinigungsart")
}

func TestParseIntakeSummary_NoMarker(t *testing.T) {
	_, out := call(t, "Um welche Art Reinigung geht es?")

	assert.False(t, out.HasSummary)
	assert.Empty(t, out.Fields)
	assert.Equal(t, "Um welche Art Reinigung geht es?", out.CustomerText)
}

func TestParseIntakeSummary_EmptyReply(t *testing.T) {
	res, _ := call(t, "")
	assert.True(t, res.IsError)
}
