// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package gate

import (
	"context"

	"github.com/olegiv/pharmaconnect-go/internal/access"
)

type ctxKey int

const decisionKey ctxKey = iota

// WithDecision stores a render decision in ctx.
func WithDecision(ctx context.Context, d Decision) context.Context {
	return context.WithValue(ctx, decisionKey, d)
}

// DecisionFrom returns the decision stored by the gate middleware.
func DecisionFrom(ctx context.Context) (Decision, bool) {
	d, ok := ctx.Value(decisionKey).(Decision)
	return d, ok
}

// EffectiveRole returns the effective role of the gated request, or RoleNone.
func EffectiveRole(ctx context.Context) access.Role {
	d, ok := DecisionFrom(ctx)
	if !ok {
		return access.RoleNone
	}
	return d.Actor.EffectiveRole()
}
