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

package service

import (
	"errors"
	"net/http"

	"github.com/go-arcade/backoffice/internal/engine/model"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
	KindUnavailable
	KindTooManyRequests
)

func (k Kind) Status() int {
	switch k {
	case KindValidation, KindNotFound, KindConflict:
		return http.StatusBadRequest
	case KindUnauthorized, KindForbidden:
		return http.StatusUnauthorized
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusServiceUnavailable
	}
}

// Error is a failure with a response kind. Msg is the English text shown to
// clients and MessageID its localization key; Err is only logged.
type Error struct {
	Kind      Kind
	Msg       string
	MessageID string
	Data      map[string]any
	Err       error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any copy of the same sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.MessageID != "" && t.MessageID == e.MessageID
}

func (e *Error) StatusCode() int {
	return e.Kind.Status()
}

func (e *Error) Localized() (string, map[string]any) {
	return e.MessageID, e.Data
}

func newError(kind Kind, id, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, MessageID: id}
}

// Wrap attaches a stack-carrying cause to a copy of e.
func (e *Error) Wrap(cause error) *Error {
	cp := *e
	cp.Err = pkgerrors.WithStack(cause)
	return &cp
}

// KindOf returns the kind of err, KindUnavailable for foreign errors.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnavailable
}

var (
	ErrNoRequestData       = newError(KindValidation, "noRequestData", "No request data.")
	ErrGrantsOneSided      = newError(KindValidation, "grantsOneSided", "Please select at least one branch and menu.")
	ErrBranchNotSelectable = newError(KindValidation, "branchNotSelectable", "A deleted or non-existent branch was selected.")
	ErrMenuNotSelectable   = newError(KindValidation, "menuNotSelectable", "A deleted or non-existent menu was selected.")

	ErrMemberNotFound   = newError(KindNotFound, "memberNotFound", "Member does not exist.")
	ErrMemberGone       = newError(KindNotFound, "memberGone", "Member was deleted or does not exist.")
	ErrBranchNotFound   = newError(KindNotFound, "branchNotFound", "Branch does not exist.")
	ErrMenuNotFound     = newError(KindNotFound, "menuNotFound", "Menu does not exist.")
	ErrNoFiles          = newError(KindValidation, "noFiles", "Please attach at least one file.")
	ErrTooManyFiles     = newError(KindValidation, "tooManyFiles", "Up to 10 files can be uploaded at once.")
	ErrFileTooLarge     = newError(KindValidation, "fileTooLarge", "Each file must be 10MB or smaller.")
	ErrUploadBranch     = newError(KindNotFound, "uploadBranchNotFound", "Branch deleted or does not exist.")
	ErrFileNotFound     = newError(KindNotFound, "fileNotFound", "File does not exist.")
	ErrObjectNotFound   = newError(KindNotFound, "objectNotFound", "Object does not exist.")

	ErrLoginIDTaken = newError(KindConflict, "loginIdTaken", "Login id is already in use.")
	ErrEmailTaken   = newError(KindConflict, "emailTaken", "Email is already in use.")

	ErrPasswordMismatch     = newError(KindUnauthorized, "passwordMismatch", "Password does not match.")
	ErrRefreshTokenMissing  = newError(KindUnauthorized, "refreshTokenMissing", "Refresh token does not exist, please log in again.")
	ErrRefreshTokenMismatch = newError(KindUnauthorized, "refreshTokenMismatch", "Refresh token does not match.")
	ErrRefreshTokenExpired  = newError(KindUnauthorized, "refreshTokenExpired", "Refresh token expired, please log in again.")
	ErrEmailTokenInvalid    = newError(KindUnauthorized, "emailTokenExpired", "Token expired. Please try again.")

	ErrMemberUpdateFailed = newError(KindUnavailable, "memberUpdateFailed", "Failed to update member info.")
	ErrDatabase           = newError(KindUnavailable, "databaseUnavailable", "Database is temporarily unavailable.")
	ErrStorage            = newError(KindUnavailable, "storageUnavailable", "File storage is temporarily unavailable.")
	ErrMail               = newError(KindUnavailable, "mailUnavailable", "Failed to send email.")
	ErrHealth             = newError(KindUnavailable, "healthCheckFailed", "Health check failed.")
)

// invalid turns a request violation into a validation error.
func invalid(v *model.Violation) *Error {
	return &Error{Kind: KindValidation, Msg: v.Msg, MessageID: v.MessageID, Data: v.TemplateData()}
}

// dbErr maps a persistence failure, translating a missing row to notFound.
func dbErr(err error, notFound *Error) error {
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	if notFound != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound.Wrap(err)
	}
	return ErrDatabase.Wrap(err)
}
