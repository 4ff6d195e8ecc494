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

import "github.com/gofiber/fiber/v2"

// Locals keys shared by handlers and middleware.
const (
	DETAIL    = "detail"
	STATUS    = "status"
	CLAIMS    = "claims"
	CLIENT_IP = "ip"
	REQUEST   = "request_id"
)

// Message ids of the boundary errors.
const (
	MsgTokenEmpty       = "tokenEmpty"
	MsgTokenInvalid     = "tokenInvalid"
	MsgTokenExpired     = "tokenExpired"
	MsgPermissionDenied = "permissionDenied"
	MsgTooManyRequests  = "tooManyRequests"
	MsgNotFound         = "routeNotFound"
	MsgInternal         = "internalError"
	MsgBadRequest       = "badRequest"
)

type Code struct {
	Status    int
	MessageID string
	Msg       string
}

var (
	TokenBeEmpty     = Code{401, MsgTokenEmpty, "Authorization token is required."}
	InvalidToken     = Code{401, MsgTokenInvalid, "Invalid token."}
	TokenExpired     = Code{401, MsgTokenExpired, "Token expired."}
	PermissionDenied = Code{401, MsgPermissionDenied, "Permission denied."}
	TooManyRequests  = Code{429, MsgTooManyRequests, "Too many requests, please try again later."}
	NotFound         = Code{404, MsgNotFound, "Cannot find the requested resource."}
	InternalError    = Code{503, MsgInternal, "Service temporarily unavailable."}
	BadRequest       = Code{400, MsgBadRequest, "Bad request."}
)

// Abort writes the envelope for one of the boundary codes.
func Abort(c *fiber.Ctx, cd Code) error {
	return WithRepErr(c, cd.Status, Localize(c, cd.MessageID, cd.Msg, nil))
}
