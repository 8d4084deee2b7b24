package mojang

import (
	"os"

	"github.com/google/uuid"

	"github.com/quasar/mcinstall/internal/account"
)

// defaultAuthNamespace is the fixed namespace UUIDv5 derives a stand-in
// offline identity from when no account is configured.
var defaultAuthNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// defaultAccount synthesizes an offline account from the host's network
// name, used when Options.Account is nil.
func defaultAccount() *account.Account {
	name, err := os.Hostname()
	if err != nil || name == "" {
		name = "Player"
	}
	id := uuid.NewSHA1(defaultAuthNamespace, []byte(name))
	return &account.Account{
		ID:   id.String(),
		Name: name,
		Type: account.TypeOffline,
	}
}

// authVars builds the auth_*/user_*/clientid token substitution map.
// acc is never nil: callers substitute defaultAccount()
// first.
func authVars(acc *account.Account) map[string]string {
	return map[string]string{
		"auth_player_name":  acc.Name,
		"auth_uuid":         acc.SimpleUUID(),
		"auth_access_token": acc.AccessToken,
		"auth_xuid":         acc.XUID,
		"auth_session":      acc.LegacySession(),
		"user_type":         string(acc.Type),
		"user_properties":   "{}",
		"clientid":          acc.ClientID,
	}
}
