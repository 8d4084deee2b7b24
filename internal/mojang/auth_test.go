package mojang

import (
	"testing"

	"github.com/quasar/mcinstall/internal/account"
)

func TestAuthVars(t *testing.T) {
	acc := &account.Account{
		ID:          "11111111-2222-3333-4444-555555555555",
		Name:        "Steve",
		Type:        account.TypeMSA,
		AccessToken: "tok",
		XUID:        "xuid123",
		ClientID:    "client-1",
	}
	vars := authVars(acc)

	want := map[string]string{
		"auth_player_name":  "Steve",
		"auth_uuid":         "11111111222233334444555555555555",
		"auth_access_token": "tok",
		"auth_xuid":         "xuid123",
		"auth_session":      "token:tok:11111111222233334444555555555555",
		"user_type":         "msa",
		"user_properties":   "{}",
		"clientid":          "client-1",
	}
	for k, v := range want {
		if vars[k] != v {
			t.Errorf("vars[%q] = %q, want %q", k, vars[k], v)
		}
	}
}

func TestDefaultAccountIsOffline(t *testing.T) {
	acc := defaultAccount()
	if acc.Type != account.TypeOffline {
		t.Errorf("Type = %v, want offline", acc.Type)
	}
	if acc.Name == "" {
		t.Error("expected a non-empty derived name")
	}
	if acc.SimpleUUID() == "" {
		t.Error("expected a derived UUID")
	}
}

func TestDefaultAccountIsDeterministic(t *testing.T) {
	a := defaultAccount()
	b := defaultAccount()
	if a.ID != b.ID {
		t.Errorf("expected the same host to derive the same UUID twice, got %q and %q", a.ID, b.ID)
	}
}
