package telegram

import (
	"context"
	"testing"

	"github.com/quantex-lab/relayer/config"
	"github.com/quantex-lab/relayer/pkg/api"

	"github.com/stretchr/testify/require"
)

func TestSendMessage(t *testing.T) {
	var gotQuery api.Parameter
	generator := &api.MockAPIGenerator{
		MockClient: api.MockAPIClient{
			POSTFunc: func(ctx context.Context) (*api.Response, error) {
				return &api.Response{Code: 200, Body: api.JSON{"ok": true}}, nil
			},
		},
	}
	generator.MockClient.QueryFunc = func(query api.Parameter) api.Client {
		gotQuery = query
		return &generator.MockClient
	}

	endpoint := New(context.Background(), config.TelegramConfigs{BotToken: "xxx"})
	endpoint.apiGenerator = generator

	err := endpoint.SendMessage(context.Background(), "chat-1", "hello")
	require.NoError(t, err)
	require.Equal(t, "chat-1", gotQuery["chat_id"])
	require.Equal(t, "hello", gotQuery["text"])
}

func TestSendMessageRejected(t *testing.T) {
	generator := &api.MockAPIGenerator{
		MockClient: api.MockAPIClient{
			POSTFunc: func(ctx context.Context) (*api.Response, error) {
				return &api.Response{Code: 400, Body: api.JSON{"ok": false}}, nil
			},
		},
	}

	endpoint := New(context.Background(), config.TelegramConfigs{BotToken: "xxx"})
	endpoint.apiGenerator = generator

	err := endpoint.SendMessage(context.Background(), "chat-1", "hello")
	require.Error(t, err)
}
