// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package access

// ActorKind tags the variant held by an Actor.
type ActorKind int

// Actor variants.
const (
	Anonymous ActorKind = iota
	Demo
	Real
)

func (k ActorKind) String() string {
	switch k {
	case Demo:
		return "demo"
	case Real:
		return "real"
	default:
		return "anonymous"
	}
}

// Actor is the resolved identity a navigation is evaluated for.
// Role is only meaningful for Real actors; Demo actors always act as
// RoleDemoFieldCoordinator.
type Actor struct {
	Kind ActorKind
	role Role
}

// AnonymousActor returns the actor with no credentials.
func AnonymousActor() Actor { return Actor{Kind: Anonymous} }

// DemoActor returns the demo-mode actor.
func DemoActor() Actor { return Actor{Kind: Demo, role: RoleDemoFieldCoordinator} }

// RealActor returns an authenticated actor holding role r.
// RoleNone is allowed and denotes an authenticated session without a usable role.
func RealActor(r Role) Actor { return Actor{Kind: Real, role: r} }

// EffectiveRole returns the role used for authorization decisions.
func (a Actor) EffectiveRole() Role {
	switch a.Kind {
	case Demo:
		return RoleDemoFieldCoordinator
	case Real:
		return a.role
	default:
		return RoleNone
	}
}

// IsAnonymous reports whether the actor holds no credentials at all.
func (a Actor) IsAnonymous() bool { return a.Kind == Anonymous }

// Credentials is the subset of session state needed to resolve an actor.
type Credentials struct {
	IsAuthenticated bool
	IsDemoMode      bool
	Role            string
}

// ResolveActor applies the demo override and role parsing rules:
// demo mode wins over any stored role, a parseable stored role yields a Real
// actor, an authenticated flag without a usable role yields Real(RoleNone),
// and everything else is anonymous.
func ResolveActor(c Credentials) Actor {
	if c.IsDemoMode {
		return DemoActor()
	}
	if r, ok := ParseRole(c.Role); ok {
		return RealActor(r)
	}
	if c.IsAuthenticated {
		return RealActor(RoleNone)
	}
	return AnonymousActor()
}
