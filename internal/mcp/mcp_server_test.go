package mcp_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/techdebtgpt/maintsight/internal/contract"
	mcp_internal "github.com/techdebtgpt/maintsight/internal/mcp"
)

func baseConfig(t *testing.T) *contract.Config {
	t.Helper()
	return &contract.Config{
		RepoPath:    t.TempDir(),
		Branch:      "HEAD",
		WindowDays:  90,
		MaxCommits:  500,
		ResultLimit: 25,
	}
}

func TestMCPServerToolRegistration(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig(t), &contract.MockGitClient{})
	require.NotNil(t, s)

	tool := s.GetTool("predict_maintainability")
	require.NotNil(t, tool, "Tool predict_maintainability should exist")
}

func TestPredictMaintainabilityHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("analysis failure surfaces as tool error", func(t *testing.T) {
		baseCfg := baseConfig(t)
		mockClient := &contract.MockGitClient{}
		mockClient.On("GetRepoRoot", mock.Anything, baseCfg.RepoPath).
			Return("", errors.New("fatal: not a git repository"))

		s := mcp_internal.NewMCPServer(baseCfg, mockClient)
		tool := s.GetTool("predict_maintainability")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "predict_maintainability",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "analysis failed")
	})

	t.Run("empty repository yields empty result set", func(t *testing.T) {
		baseCfg := baseConfig(t)
		mockClient := &contract.MockGitClient{}
		mockClient.On("GetRepoRoot", mock.Anything, baseCfg.RepoPath).Return(baseCfg.RepoPath, nil)
		mockClient.On("ResolveRef", mock.Anything, baseCfg.RepoPath, "HEAD").Return("deadbeef", nil)
		mockClient.On("GetHistoryLog", mock.Anything, baseCfg.RepoPath, "HEAD", 500, mock.Anything).
			Return([]byte(""), nil)

		s := mcp_internal.NewMCPServer(baseCfg, mockClient)
		tool := s.GetTool("predict_maintainability")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "predict_maintainability",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		text := res.Content[0].(mcp.TextContent).Text
		assert.Equal(t, "[]", strings.TrimSpace(text))
	})

	t.Run("request overrides window and limit", func(t *testing.T) {
		baseCfg := baseConfig(t)
		mockClient := &contract.MockGitClient{}
		mockClient.On("GetRepoRoot", mock.Anything, baseCfg.RepoPath).Return(baseCfg.RepoPath, nil)
		mockClient.On("ResolveRef", mock.Anything, baseCfg.RepoPath, "main").Return("deadbeef", nil)
		mockClient.On("GetHistoryLog", mock.Anything, baseCfg.RepoPath, "main", 500, mock.Anything).
			Return([]byte(""), nil)

		s := mcp_internal.NewMCPServer(baseCfg, mockClient)
		tool := s.GetTool("predict_maintainability")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "predict_maintainability",
				Arguments: map[string]any{
					"branch": "main",
					"days":   30.0,
					"limit":  5.0,
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.IsError)
		mockClient.AssertExpectations(t)

		// The override never leaks into the shared base config.
		assert.Equal(t, "HEAD", baseCfg.Branch)
		assert.Equal(t, 90, baseCfg.WindowDays)
	})
}
