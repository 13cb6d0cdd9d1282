package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/kb"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/tools"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/shared/database"
)

type callResponse struct {
	Result struct {
		IsError bool `json:"isError"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"result"`
}

func newTestServer(t *testing.T, customerID uint) (*server.MCPServer, *kb.Store) {
	t.Helper()
	db, err := database.NewMemoryDB()
	require.NoError(t, err)
	store := kb.NewStore(db, zerolog.Nop())
	registry := tools.MustNewRegistry(store, zerolog.Nop())

	s, err := New("chatherine-test", "1.0.0", registry, customerID, zerolog.Nop())
	require.NoError(t, err)
	return s, store
}

func handle(t *testing.T, s *server.MCPServer, msg string) []byte {
	t.Helper()
	result := s.HandleMessage(context.Background(), []byte(msg))
	data, err := json.Marshal(result)
	require.NoError(t, err)
	return data
}

func callTool(t *testing.T, s *server.MCPServer, name, args string) callResponse {
	t.Helper()
	msg := fmt.Sprintf(`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":%q,"arguments":%s}}`, name, args)
	var resp callResponse
	require.NoError(t, json.Unmarshal(handle(t, s, msg), &resp))
	require.NotEmpty(t, resp.Result.Content)
	return resp
}

func TestListToolsMatchesCatalogue(t *testing.T) {
	s, _ := newTestServer(t, 1)

	var response struct {
		Result struct {
			Tools []struct {
				Name        string `json:"name"`
				InputSchema struct {
					Type     string   `json:"type"`
					Required []string `json:"required"`
				} `json:"inputSchema"`
				Annotations struct {
					ReadOnlyHint *bool `json:"readOnlyHint"`
				} `json:"annotations"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(handle(t, s, `{"jsonrpc":"2.0","method":"tools/list","id":1}`), &response))

	byName := map[string]int{}
	for i, tool := range response.Result.Tools {
		byName[tool.Name] = i
	}
	for _, name := range []string{"search_facts", "get_revenue", "set_offering_price", "record_unanswered_question"} {
		assert.Contains(t, byName, name)
	}

	search := response.Result.Tools[byName["search_facts"]]
	assert.Equal(t, "object", search.InputSchema.Type)
	assert.Equal(t, []string{"query"}, search.InputSchema.Required)
	require.NotNil(t, search.Annotations.ReadOnlyHint)
	assert.True(t, *search.Annotations.ReadOnlyHint)

	price := response.Result.Tools[byName["set_offering_price"]]
	require.NotNil(t, price.Annotations.ReadOnlyHint)
	assert.False(t, *price.Annotations.ReadOnlyHint)
}

func TestCallToolRunsForConfiguredTenant(t *testing.T) {
	s, store := newTestServer(t, 3)

	resp := callTool(t, s, "update_location", `{"address":"9 Harbour Rd","customer_id":99}`)
	assert.False(t, resp.Result.IsError)
	assert.Equal(t, "Address updated to 9 Harbour Rd.", resp.Result.Content[0].Text)

	facts, err := store.SearchFacts(context.Background(), 3, "harbour")
	require.NoError(t, err)
	assert.Len(t, facts, 1)

	other, err := store.SearchFacts(context.Background(), 99, "harbour")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestCallToolErrors(t *testing.T) {
	s, _ := newTestServer(t, 1)

	resp := callTool(t, s, "search_facts", `{}`)
	assert.True(t, resp.Result.IsError)
	assert.Contains(t, resp.Result.Content[0].Text, "invalid arguments for search_facts")

	resp = callTool(t, s, "set_offering_price", `{"service_name":"Nothing","new_price":5}`)
	assert.True(t, resp.Result.IsError)
	assert.Contains(t, resp.Result.Content[0].Text, "set_offering_price failed")
}
