// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import "strings"

// The summary and classification payloads are flat objects with a fixed
// key vocabulary. Repair is scoped to it so stray identifier-plus-colon
// runs inside prose values are never mistaken for keys.
var responseKeys = map[string]bool{
	"summary":         true,
	"key_points":      true,
	"action_items":    true,
	"important_dates": true,
	"contacts":        true,
	"importance":      true,
	"category":        true,
}

// repairJSON fixes the quoting slips models make around response keys:
// a missing opening quote (`{importance": "high"}`) or a fully bare key
// (`{importance: "high"}`). Key positions inside string values are left
// alone, as is anything outside the known key vocabulary.
func repairJSON(s string) string {
	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s) + 8)

	inString := false
	for i := 0; i < len(runes); {
		ch := runes[i]
		b.WriteRune(ch)
		i++

		switch {
		case ch == '\\' && inString && i < len(runes):
			b.WriteRune(runes[i])
			i++
			continue
		case ch == '"':
			inString = !inString
			continue
		}
		if inString || (ch != '{' && ch != ',') {
			continue
		}

		for i < len(runes) && isSpace(runes[i]) {
			b.WriteRune(runes[i])
			i++
		}

		start := i
		for i < len(runes) && isKeyRune(runes[i]) {
			i++
		}
		if i == start {
			continue
		}
		key := string(runes[start:i])

		switch {
		case !responseKeys[key]:
			b.WriteString(key)
		case i+1 < len(runes) && runes[i] == '"' && runes[i+1] == ':':
			// importance": -> "importance": the stray closing quote is
			// consumed here so it cannot flip the string state
			b.WriteByte('"')
			b.WriteString(key)
			b.WriteByte('"')
			i++
		case i < len(runes) && runes[i] == ':':
			// importance: -> "importance":
			b.WriteByte('"')
			b.WriteString(key)
			b.WriteByte('"')
		default:
			b.WriteString(key)
		}
	}

	return b.String()
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// isKeyRune matches the identifier characters the response keys use.
func isKeyRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
