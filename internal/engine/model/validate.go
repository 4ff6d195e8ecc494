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

package model

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("password", strongPassword); err != nil {
		panic(err)
	}
	return v
}

// strongPassword needs at least one number, one symbol, one lower and one upper case letter.
func strongPassword(fl validator.FieldLevel) bool {
	var number, symbol, lower, upper bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsDigit(r):
			number = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return number && symbol && lower && upper
}

// Violation is the first rule a request broke.
type Violation struct {
	Field     string
	Param     string
	MessageID string
	Msg       string
}

func (v *Violation) Error() string {
	return v.Msg
}

func (v *Violation) TemplateData() map[string]any {
	return map[string]any{"Field": v.Field, "Param": v.Param}
}

// Validate checks req against its validate tags and returns the first
// violation, or nil.
func Validate(req any) *Violation {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return &Violation{MessageID: "fieldInvalid", Msg: err.Error()}
	}
	return violationOf(errs[0])
}

func violationOf(fe validator.FieldError) *Violation {
	field := fe.Field()
	v := &Violation{Field: field, Param: fe.Param()}
	text := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		v.MessageID, v.Msg = "fieldRequired", field+" is required."
	case "min":
		if text {
			v.MessageID, v.Msg = "fieldMinLength", field+" must be at least "+fe.Param()+" characters."
		} else {
			v.MessageID, v.Msg = "fieldMin", field+" must be at least "+fe.Param()+"."
		}
	case "max":
		if text {
			v.MessageID, v.Msg = "fieldMaxLength", field+" must be at most "+fe.Param()+" characters."
		} else {
			v.MessageID, v.Msg = "fieldMax", field+" must be at most "+fe.Param()+"."
		}
	case "gt", "gte":
		v.MessageID, v.Msg = "fieldPositive", field+" must be a positive number."
	case "email":
		v.MessageID, v.Msg = "fieldEmail", field+" must be an email address."
	case "alphanum":
		v.MessageID, v.Msg = "fieldAlphanum", field+" must contain only letters and numbers."
	case "http_url":
		v.MessageID, v.Msg = "fieldURL", field+" must be an http or https url."
	case "password":
		v.MessageID, v.Msg = "fieldPassword", field+" must mix upper and lower case letters with numbers and symbols."
	default:
		v.MessageID, v.Msg = "fieldInvalid", field+" is invalid."
	}
	return v
}
