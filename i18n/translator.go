package i18n

import (
	"sort"
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata appended to the message (for example,
// "min" and "max").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var catalog = map[string]map[string]string{
	"en": {
		"invalid_schema":           "invalid schema",
		"degenerate_range":         "minimum is greater than maximum",
		"unsatisfiable_uniqueness": "not enough distinct values for unique items",
		"empty_choice":             "cannot choose from an empty set",
		"canceled":                 "generation canceled",
	},
	"ja": {
		"invalid_schema":           "スキーマが不正です",
		"degenerate_range":         "最小値が最大値を超えています",
		"unsatisfiable_uniqueness": "一意な要素を生成するための値が不足しています",
		"empty_choice":             "空の集合からは選択できません",
		"canceled":                 "生成が中断されました",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := catalog[t.lang][code]
	if !ok {
		msg = code
	}
	if len(data) == 0 {
		return msg
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b := &strings.Builder{}
	b.WriteString(msg)
	b.WriteString(" (")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(data[k])
	}
	b.WriteString(")")
	return b.String()
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
