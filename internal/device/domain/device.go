package domain

import "time"

// Device is a push-notification target registered by a user. PushToken is unique per user.
type Device struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	PushToken   string    `json:"pushToken"`
	Platform    *string   `json:"platform"`
	DeviceModel *string   `json:"deviceModel"`
	Locale      *string   `json:"locale"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Registration is a request to register or refresh a push token. Nil fields keep stored values on update.
type Registration struct {
	PushToken   string
	Platform    *string
	DeviceModel *string
	Locale      *string
}
