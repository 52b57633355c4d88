// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n provides the admin UI translations (French by default).
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

//go:embed locales
var localesFS embed.FS

// Message is a single translatable message.
type Message struct {
	ID          string `json:"id"`
	Translation string `json:"translation"`
}

// MessageFile is the structure of a locales/<lang>/messages.json file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// Catalog holds the translations of every supported language.
type Catalog struct {
	mu           sync.RWMutex
	translations map[string]map[string]string
	matcher      language.Matcher
	supported    []language.Tag
	logger       *slog.Logger
}

// DefaultLanguage is used when no session language is set.
const DefaultLanguage = "fr"

// SupportedLanguages lists the admin UI languages, default first.
var SupportedLanguages = []string{"fr", "en"}

var catalog *Catalog

// Init loads every supported language from the embedded locales.
func Init(logger *slog.Logger) error {
	c := &Catalog{
		translations: make(map[string]map[string]string),
		logger:       logger,
	}

	for _, lang := range SupportedLanguages {
		c.supported = append(c.supported, language.MustParse(lang))
	}
	c.matcher = language.NewMatcher(c.supported)

	for _, lang := range SupportedLanguages {
		if err := c.load(lang); err != nil {
			return fmt.Errorf("loading language %s: %w", lang, err)
		}
	}
	catalog = c

	if logger != nil {
		logger.Info("i18n initialized", "languages", SupportedLanguages)
	}
	return nil
}

func (c *Catalog) load(lang string) error {
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var f MessageFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	m := make(map[string]string, len(f.Messages))
	for _, msg := range f.Messages {
		m[msg.ID] = msg.Translation
	}

	c.mu.Lock()
	c.translations[lang] = m
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Debug("loaded translations", "language", lang, "count", len(m))
	}
	return nil
}

// T translates key into lang, falling back to the default language and then
// to the key itself. Optional args are applied with fmt.Sprintf.
func T(lang, key string, args ...any) string {
	if catalog == nil {
		return key
	}

	catalog.mu.RLock()
	translation, ok := catalog.translations[lang][key]
	if !ok {
		translation, ok = catalog.translations[DefaultLanguage][key]
	}
	catalog.mu.RUnlock()

	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(translation, args...)
	}
	return translation
}

// MatchLanguage returns the best supported language for an Accept-Language
// header or a bare language code.
func MatchLanguage(acceptLang string) string {
	if catalog == nil {
		return DefaultLanguage
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(acceptLang)
		if err != nil {
			return DefaultLanguage
		}
		tags = []language.Tag{tag}
	}

	_, idx, confidence := catalog.matcher.Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(SupportedLanguages) {
		return DefaultLanguage
	}
	return SupportedLanguages[idx]
}

// IsSupported reports whether lang is a supported admin UI language.
func IsSupported(lang string) bool {
	return slices.Contains(SupportedLanguages, strings.ToLower(lang))
}

// TranslationCount returns the number of messages loaded for lang.
func TranslationCount(lang string) int {
	if catalog == nil {
		return 0
	}
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()
	return len(catalog.translations[lang])
}

// Keys returns the message IDs loaded for lang, sorted.
func Keys(lang string) []string {
	if catalog == nil {
		return nil
	}
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()
	keys := make([]string, 0, len(catalog.translations[lang]))
	for k := range catalog.translations[lang] {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
