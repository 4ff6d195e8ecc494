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

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetIfNotNil(t *testing.T) {
	m := map[string]any{}
	zero, name := 0, "main"
	var missing *bool

	SetIfNotNil(m, "seq", &zero)
	SetIfNotNil(m, "name", &name)
	SetIfNotNil(m, "is_show", missing)

	assert.Equal(t, map[string]any{"seq": 0, "name": "main"}, m)
}
