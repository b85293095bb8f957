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

import (
	"encoding/json"
	"strings"
)

// parseMode records which stage of the fallback chain produced a result.
type parseMode string

const (
	parseDirect    parseMode = "direct"
	parseRecovered parseMode = "recovered"
	parseRepaired  parseMode = "repaired"
	parseFailed    parseMode = "failed"
)

// parseModelJSON decodes a model response into dst, working through a
// fallback chain: decode the trimmed response as-is, then the first
// balanced JSON object embedded in surrounding prose, then a repaired
// form of that object. Markdown code fences are stripped before the
// first attempt. Returns the stage that succeeded, or parseFailed with
// the last decode error.
func parseModelJSON(response string, dst any) (parseMode, error) {
	text := stripCodeFences(response)

	err := json.Unmarshal([]byte(text), dst)
	if err == nil {
		return parseDirect, nil
	}

	extracted, ok := extractJSONObject(text)
	if ok {
		if jsonErr := json.Unmarshal([]byte(extracted), dst); jsonErr == nil {
			return parseRecovered, nil
		}

		repaired := repairJSON(extracted)
		if jsonErr := json.Unmarshal([]byte(repaired), dst); jsonErr == nil {
			return parseRepaired, nil
		}
	}

	return parseFailed, err
}

// stripCodeFences removes markdown code fences wrapping a response.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// extractJSONObject returns the first balanced top-level JSON object in
// the text, tracking string literals so braces inside values don't
// confuse the depth count.
func extractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}
