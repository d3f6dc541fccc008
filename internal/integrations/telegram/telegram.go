package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jarwatch/jarwatch/internal/config"
)

// Client posts messages and photos to a chat via the Telegram Bot API
type Client struct {
	token  string
	chatID string
	url    string
	client *http.Client
	log    *logrus.Logger
}

// apiResponse is the envelope every Bot API method returns
type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// NewClient initializes a new Telegram client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		token:  cfg.TelegramToken,
		chatID: cfg.TelegramChatID,
		url:    cfg.TelegramAPIURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// SendMessage posts a plain-text message to the configured chat
func (c *Client) SendMessage(ctx context.Context, text string) error {
	form := url.Values{}
	form.Set("chat_id", c.chatID)
	form.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL("sendMessage"), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if err := c.send(req, "sendMessage"); err != nil {
		return err
	}
	c.log.Infof("Telegram message sent to chat %s", c.chatID)
	return nil
}

// SendPhoto uploads a PNG with a caption to the configured chat
func (c *Client) SendPhoto(ctx context.Context, caption string, photo []byte) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("chat_id", c.chatID); err != nil {
		return fmt.Errorf("failed to build photo request: %w", err)
	}
	if err := writer.WriteField("caption", caption); err != nil {
		return fmt.Errorf("failed to build photo request: %w", err)
	}
	part, err := writer.CreateFormFile("photo", "jars.png")
	if err != nil {
		return fmt.Errorf("failed to build photo request: %w", err)
	}
	if _, err := part.Write(photo); err != nil {
		return fmt.Errorf("failed to build photo request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to build photo request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL("sendPhoto"), &body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	if err := c.send(req, "sendPhoto"); err != nil {
		return err
	}
	c.log.Infof("Telegram photo sent to chat %s (%d bytes)", c.chatID, len(photo))
	return nil
}

func (c *Client) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.url, c.token, method)
}

func (c *Client) send(req *http.Request, method string) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", method, err)
	}
	c.log.Debugf("Telegram %s response: %s", method, string(body))

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", method, err)
	}
	if !parsed.OK {
		return fmt.Errorf("%s rejected: %s", method, parsed.Description)
	}
	return nil
}
