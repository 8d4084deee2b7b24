// Package account holds the minimal account tuple the installer's Mojang
// layer consumes for authentication-argument substitution, and a small
// on-disk store for it. Acquiring the tuple (the Microsoft device-code
// flow, token refresh, Xbox/XSTS exchanges) is out of scope here —
// only the resulting tuple is modeled.
package account

import "time"

// Type distinguishes a Microsoft account from an offline/cracked one.
type Type string

const (
	TypeMSA     Type = "msa"
	TypeOffline Type = "offline"
)

// Account is the tuple substituted into auth_* argument tokens by the
// Mojang extension layer.
type Account struct {
	ID              string    `json:"id"`   // UUID, simple hex form (no dashes) when substituted
	Name            string    `json:"name"` // auth_player_name
	Type            Type      `json:"type"`
	AccessToken     string    `json:"accessToken"`
	XUID            string    `json:"xuid,omitempty"` // open question (a): present but whether required is unconfirmed, see DESIGN.md
	ClientID        string    `json:"clientId,omitempty"`
	ExpiresAt       time.Time `json:"expiresAt"`
	MSARefreshToken string    `json:"msaRefreshToken,omitempty"`
}

// IsExpired reports whether the access token needs refreshing, with a 5
// minute buffer. Offline accounts never expire.
func (a *Account) IsExpired() bool {
	if a.Type == TypeOffline {
		return false
	}
	return time.Now().Add(5 * time.Minute).After(a.ExpiresAt)
}

// SimpleUUID returns the account ID with dashes stripped, the form the
// Mojang layer substitutes for auth_uuid.
func (a *Account) SimpleUUID() string {
	out := make([]byte, 0, len(a.ID))
	for _, r := range a.ID {
		if r != '-' {
			out = append(out, byte(r))
		}
	}
	return string(out)
}

// LegacySession returns the legacy auth_session form `token:<token>:<uuid>`.
func (a *Account) LegacySession() string {
	return "token:" + a.AccessToken + ":" + a.SimpleUUID()
}
