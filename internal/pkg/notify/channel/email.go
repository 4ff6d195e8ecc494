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
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

type Mail struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	NotifyTo string `mapstructure:"notifyTo"` // recipient of admin notices
	Timeout  int    `mapstructure:"timeout"`  // seconds
}

// EmailResult mirrors what the SMTP server accepted.
type EmailResult struct {
	Accepted    []string `json:"accepted"`
	Rejected    []string `json:"rejected"`
	MessageSize int      `json:"messageSize"`
	Response    string   `json:"response"`
}

type EmailChannel struct {
	conf Mail
}

func NewEmailChannel(conf Mail) *EmailChannel {
	if conf.Timeout <= 0 {
		conf.Timeout = 10
	}
	return &EmailChannel{conf: conf}
}

func (c *EmailChannel) NotifyAddress() string {
	return c.conf.NotifyTo
}

func (c *EmailChannel) Validate() error {
	if c.conf.Host == "" {
		return fmt.Errorf("smtp host is required")
	}
	if c.conf.Port <= 0 {
		return fmt.Errorf("smtp port is required")
	}
	if c.conf.From == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

// Send delivers one html mail. Recipients refused at RCPT are reported in
// Rejected; the mail fails only when nobody accepted it.
func (c *EmailChannel) Send(ctx context.Context, to []string, subject, html string) (*EmailResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if len(to) == 0 {
		return nil, fmt.Errorf("to emails are required")
	}

	msg := buildMessage(c.conf.From, to, subject, html)

	client, err := c.dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect smtp: %w", err)
	}
	defer client.Close()

	if c.conf.Username != "" {
		auth := smtp.PlainAuth("", c.conf.Username, c.conf.Password, c.conf.Host)
		if err := client.Auth(auth); err != nil {
			return nil, fmt.Errorf("smtp auth failed: %w", err)
		}
	}
	if err := client.Mail(c.conf.From); err != nil {
		return nil, fmt.Errorf("smtp MAIL FROM failed: %w", err)
	}

	result := &EmailResult{MessageSize: len(msg)}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			result.Rejected = append(result.Rejected, rcpt)
			continue
		}
		result.Accepted = append(result.Accepted, rcpt)
	}
	if len(result.Accepted) == 0 {
		return result, fmt.Errorf("all recipients rejected")
	}

	w, err := client.Data()
	if err != nil {
		return result, fmt.Errorf("smtp DATA failed: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return result, fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return result, fmt.Errorf("failed to send email: %w", err)
	}
	result.Response = "250 Message accepted"
	return result, client.Quit()
}

func (c *EmailChannel) dial(ctx context.Context) (*smtp.Client, error) {
	addr := net.JoinHostPort(c.conf.Host, strconv.Itoa(c.conf.Port))
	dialer := &net.Dialer{Timeout: time.Duration(c.conf.Timeout) * time.Second}

	var conn net.Conn
	var err error
	if c.conf.Port == 465 {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: &tls.Config{ServerName: c.conf.Host}}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, c.conf.Host)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if ok, _ := client.Extension("STARTTLS"); ok && c.conf.Port != 465 {
		if err := client.StartTLS(&tls.Config{ServerName: c.conf.Host}); err != nil {
			client.Close()
			return nil, err
		}
	}
	return client, nil
}

func buildMessage(from string, to []string, subject, html string) []byte {
	var buf bytes.Buffer
	buf.WriteString("From: " + from + "\r\n")
	buf.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	buf.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(html)
	return buf.Bytes()
}
