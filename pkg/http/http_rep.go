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

package http

import (
	"errors"
	"time"

	"github.com/go-arcade/backoffice/pkg/log"
	"github.com/gofiber/fiber/v2"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Response is the envelope of every reply.
type Response struct {
	Result     bool   `json:"result"`
	StatusCode int    `json:"statusCode"`
	Request    string `json:"request"`
	Timestamp  string `json:"timestamp"`
	Message    any    `json:"message"`
}

type ErrorMessage struct {
	Error string `json:"error"`
}

// StatusCoder is implemented by errors that carry their HTTP status.
type StatusCoder interface {
	StatusCode() int
}

// Localizable is implemented by errors whose text has a message id.
type Localizable interface {
	Localized() (messageID string, data map[string]any)
	Error() string
}

func requestLine(c *fiber.Ctx) string {
	return c.Method() + " " + c.Path()
}

func now() string {
	return time.Now().Format(timestampLayout)
}

// WithRepJSON writes a successful envelope.
func WithRepJSON(c *fiber.Ctx, status int, message any) error {
	return c.Status(status).JSON(Response{
		Result:     true,
		StatusCode: status,
		Request:    requestLine(c),
		Timestamp:  now(),
		Message:    message,
	})
}

// WithRepErr writes a failed envelope with message {error}.
func WithRepErr(c *fiber.Ctx, status int, errMsg string) error {
	return c.Status(status).JSON(Response{
		Result:     false,
		StatusCode: status,
		Request:    requestLine(c),
		Timestamp:  now(),
		Message:    ErrorMessage{Error: errMsg},
	})
}

// ErrorHandler maps returned errors onto the failed envelope. Errors without
// a status are treated as dependency failures.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := InternalError.Status
	msg := Localize(c, InternalError.MessageID, InternalError.Msg, nil)

	var fe *fiber.Error
	var sc StatusCoder
	switch {
	case errors.As(err, &sc):
		status = sc.StatusCode()
		msg = err.Error()
		var le Localizable
		if errors.As(err, &le) {
			id, data := le.Localized()
			msg = Localize(c, id, le.Error(), data)
		}
	case errors.As(err, &fe):
		status = fe.Code
		msg = fe.Message
		if status == fiber.StatusNotFound {
			msg = Localize(c, NotFound.MessageID, NotFound.Msg, nil)
		}
	}

	if status >= fiber.StatusInternalServerError {
		log.Errorw("request failed", "request", requestLine(c), "status", status, "error", err)
	}
	return WithRepErr(c, status, msg)
}
