package domain

import "testing"

func TestUser_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{"valid defaults", User{Email: "a@b.io", PasswordHash: "h"}, false},
		{"explicit admin", User{Email: "a@b.io", PasswordHash: "h", Role: RoleAdmin}, false},
		{"missing email", User{PasswordHash: "h"}, true},
		{"missing hash", User{Email: "a@b.io"}, true},
		{"unknown role", User{Email: "a@b.io", PasswordHash: "h", Role: "root"}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u := tc.user
			err := u.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil {
				return
			}
			if u.Language != "en" || u.Timezone != "UTC" {
				t.Errorf("defaults = (%q, %q), want (en, UTC)", u.Language, u.Timezone)
			}
			if tc.user.Role == "" && u.Role != RoleUser {
				t.Errorf("Role = %q, want user", u.Role)
			}
		})
	}
}
