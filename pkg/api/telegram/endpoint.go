package telegram

import (
	"context"
	"errors"
	"fmt"

	"github.com/quantex-lab/relayer/config"
	"github.com/quantex-lab/relayer/pkg/api"
)

const apiURL = "https://api.telegram.org"

type Endpoint struct {
	BotToken string

	apiGenerator api.Generator
}

func New(ctx context.Context, cfg config.TelegramConfigs) *Endpoint {
	return &Endpoint{
		BotToken:     cfg.BotToken,
		apiGenerator: api.NewGenerator(),
	}
}

func (e *Endpoint) SendMessage(ctx context.Context, chatID, text string) error {
	resp, err := e.apiGenerator.New(apiURL, "/bot%s/sendMessage", e.BotToken).
		Query(api.Parameter{
			"chat_id": chatID,
			"text":    text,
		}).
		POST(ctx)
	if err != nil {
		return err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return errors.New("invalid body type")
	}

	if ok, err := body.GetBool("ok"); err != nil || !ok {
		return fmt.Errorf("telegram rejected the message, status = %d", resp.Code)
	}

	return nil
}
