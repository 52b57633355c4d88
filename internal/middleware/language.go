// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"

	"github.com/olegiv/pharmaconnect-go/internal/i18n"
	"github.com/olegiv/pharmaconnect-go/internal/session"
)

// Language resolves the UI language for each request.
// Priority order:
// 1. Language saved in the session (user choice)
// 2. Accept-Language header
// 3. i18n.DefaultLanguage
func Language(store session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := store.Get(r.Context()).Lang
			if !i18n.IsSupported(lang) {
				lang = i18n.MatchLanguage(r.Header.Get("Accept-Language"))
			}
			ctx := context.WithValue(r.Context(), ContextKeyLanguage, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetLanguage returns the language chosen by Language, or the default.
func GetLanguage(ctx context.Context) string {
	if lang, ok := ctx.Value(ContextKeyLanguage).(string); ok && lang != "" {
		return lang
	}
	return i18n.DefaultLanguage
}
