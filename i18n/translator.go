package i18n

import "sync"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "ref" or "tag").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			msg = "型が不正です"
		case "parse_error":
			msg = "解析エラー"
		case "invalid_shape":
			msg = "形状の定義が不正です"
		case "unresolved_ref":
			msg = "参照を解決できません"
		case "unsupported":
			msg = "未対応のスキーマ機能です"
		case "invalid_option":
			msg = "オプションが不正です"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			msg = "invalid type"
		case "parse_error":
			msg = "parse error"
		case "invalid_shape":
			msg = "invalid shape"
		case "unresolved_ref":
			msg = "unresolved reference"
		case "unsupported":
			msg = "unsupported schema feature"
		case "invalid_option":
			msg = "invalid option"
		}
	}
	if msg == "" {
		return code
	}
	if ref := data["ref"]; ref != "" {
		msg += " (" + ref + ")"
	}
	return msg
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
