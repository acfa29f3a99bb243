// Package locale translates UI strings and reminder texts.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-petcare/internal/appointment"
	"github.com/tartampluch/go-petcare/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves message ids against the embedded locale files.
// It is safe for concurrent use.
type Translator struct {
	bundle    *i18n.Bundle
	languages []string

	mu        sync.RWMutex
	lang      string
	localizer *i18n.Localizer
}

// New loads every embedded locale and selects lang (default when empty).
func New(lang string) *Translator {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	t := &Translator{bundle: bundle}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		t.languages = append(t.languages, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}
	slices.Sort(t.languages)

	t.SetLanguage(lang)
	return t
}

// SetLanguage switches the active language. Unknown codes fall back to the default.
func (t *Translator) SetLanguage(lang string) {
	if lang == "" || !slices.Contains(t.languages, lang) {
		lang = config.DefaultLanguage
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lang = lang
	t.localizer = i18n.NewLocalizer(t.bundle, lang)
}

// Language returns the active language code.
func (t *Translator) Language() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lang
}

// Languages lists the loaded language codes.
func (t *Translator) Languages() []string {
	return slices.Clone(t.languages)
}

// Msg translates key, returning the key itself when no translation exists.
func (t *Translator) Msg(key string) string {
	if msg, ok := t.localize(key, nil); ok {
		return msg
	}
	return key
}

// MsgData translates a templated key, or returns fallback formatted with args.
func (t *Translator) MsgData(key string, data map[string]any, fallback string, args ...any) string {
	if msg, ok := t.localize(key, data); ok {
		return msg
	}
	return fmt.Sprintf(fallback, args...)
}

// ReminderText returns the localized reminder title and body for a.
func (t *Translator) ReminderText(a appointment.Appointment) (string, string) {
	title, ok := t.localize(config.TKeyNotifTitle, nil)
	if !ok {
		title = config.FallbackNotifTitle
	}
	body := t.MsgData(config.TKeyNotifBody, map[string]any{
		"Reason":   a.Reason,
		"Provider": a.Provider,
		"Time":     a.Time,
	}, config.FallbackNotifBody, a.Reason, a.Provider, a.Time)
	return title, body
}

func (t *Translator) localize(key string, data map[string]any) (string, bool) {
	t.mu.RLock()
	loc := t.localizer
	t.mu.RUnlock()
	if loc == nil {
		return "", false
	}
	msg, err := loc.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return "", false
	}
	return msg, true
}
