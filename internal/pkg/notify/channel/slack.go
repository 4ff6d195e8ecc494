// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package channel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

var ErrSlackNotConfigured = errors.New("slack webhook url is not configured")

type Slack struct {
	WebhookURL string `mapstructure:"webhookURL"`
	Timeout    int    `mapstructure:"timeout"` // seconds
}

type SlackChannel struct {
	webhookURL string
	client     *resty.Client
}

func NewSlackChannel(conf Slack, client *resty.Client) *SlackChannel {
	if client == nil {
		timeout := time.Duration(conf.Timeout) * time.Second
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		client = resty.New().SetTimeout(timeout)
	}
	return &SlackChannel{webhookURL: conf.WebhookURL, client: client}
}

// Send posts text to the incoming webhook and returns the response body.
func (c *SlackChannel) Send(ctx context.Context, text string) (string, error) {
	if c.webhookURL == "" {
		return "", ErrSlackNotConfigured
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"text": text}).
		Post(c.webhookURL)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return resp.String(), fmt.Errorf("slack request failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	return resp.String(), nil
}
