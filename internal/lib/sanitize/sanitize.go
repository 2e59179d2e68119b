package sanitize

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripTagsPolicy = bluemonday.StripTagsPolicy()
	ugcPolicy       = bluemonday.UGCPolicy()
)

// StripHTML убирает все теги, остается простой текст
func StripHTML(s string) string {
	return strings.TrimSpace(stripTagsPolicy.Sanitize(s))
}

// Content чистит rich-text поле. Редактор хранит HTML строкой в JSON,
// такие значения пропускаются через UGC-политику. Структурированный JSON
// возвращается как есть, его экранирует клиентский рендерер.
func Content(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return raw
	}

	var html string
	if err := json.Unmarshal(trimmed, &html); err != nil {
		return raw
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ugcPolicy.Sanitize(html)); err != nil {
		return nil
	}
	return bytes.TrimRight(buf.Bytes(), "\n")
}
