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
	"embed"

	"github.com/gofiber/contrib/fiberi18n/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const i18nReady = "i18n_ready"

// I18n loads {rootPath}/{lang}.yaml bundles from fs. The language comes
// from the lang query or Accept-Language header.
func I18n(fs embed.FS, rootPath string) fiber.Handler {
	localize := fiberi18n.New(&fiberi18n.Config{
		RootPath:         rootPath,
		AcceptLanguages:  []language.Tag{language.English, language.Korean},
		DefaultLanguage:  language.English,
		FormatBundleFile: "yaml",
		UnmarshalFunc:    yaml.Unmarshal,
		Loader:           &fiberi18n.EmbedLoader{FS: fs},
	})
	return func(c *fiber.Ctx) error {
		c.Locals(i18nReady, true)
		return localize(c)
	}
}

// Localize renders messageID for the request language, falling back to
// the given English text.
func Localize(c *fiber.Ctx, messageID, fallback string, data map[string]any) string {
	if messageID == "" || c.Locals(i18nReady) == nil {
		return fallback
	}
	msg, err := fiberi18n.Localize(c, &i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil || msg == "" {
		return fallback
	}
	return msg
}
