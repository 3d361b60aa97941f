package services

import (
	"context"
	"net/http"
	"net/url"

	tradebridge "github.com/quantfold/trade-bridge"
)

// UsersService covers the current user's settings plus the admin-only
// user management endpoints.
type UsersService struct {
	t Transport
}

// Settings modes, mirroring the backend enums.
const (
	ModeDemo = "DEMO"
	ModeLive = "LIVE"
)

// UserSettings holds per-user trading configuration: which broker
// environment is active, the credentials for each, and the guard
// rails applied to incoming alerts.
type UserSettings struct {
	Mode string `json:"mode"`

	DemoAPIKey        *string `json:"demoApiKey"`
	DemoUsername      *string `json:"demoUsername"`
	DemoPassword      *string `json:"demoPassword"`
	DemoWebhookSecret *string `json:"demoWebhookSecret"`
	DemoAccountID     *string `json:"demoAccountId"`
	LiveAPIKey        *string `json:"liveApiKey"`
	LiveUsername      *string `json:"liveUsername"`
	LivePassword      *string `json:"livePassword"`
	LiveWebhookSecret *string `json:"liveWebhookSecret"`
	LiveAccountID     *string `json:"liveAccountId"`

	OrderType                                   string `json:"orderType"`
	MaximumOrderAgeInMinutes                    int    `json:"maximumOrderAgeInMinutes"`
	MaximumOpenPositions                        int    `json:"maximumOpenPositions"`
	MaximumOpenPositionsAndPendingOrders        int    `json:"maximumOpenPositionsAndPendingOrders"`
	MaximumAlertAgeInSeconds                    int    `json:"maximumAlertAgeInSeconds"`
	AvoidDividendDates                          bool   `json:"avoidDividendDates"`
	EnforceMaximumOpenPositions                 bool   `json:"enforceMaximumOpenPositions"`
	EnforceMaximumOpenPositionsAndPendingOrders bool   `json:"enforceMaximumOpenPositionsAndPendingOrders"`
	EnforceMaximumAlertAgeInSeconds             bool   `json:"enforceMaximumAlertAgeInSeconds"`
	PreventDuplicatePositionsForInstrument      bool   `json:"preventDuplicatePositionsForInstrument"`
}

// UserSettingsUpdate is the partial-update payload; nil fields are
// omitted and left unchanged server-side.
type UserSettingsUpdate struct {
	Mode *string `json:"mode,omitempty"`

	DemoAPIKey        *string `json:"demoApiKey,omitempty"`
	DemoUsername      *string `json:"demoUsername,omitempty"`
	DemoPassword      *string `json:"demoPassword,omitempty"`
	DemoWebhookSecret *string `json:"demoWebhookSecret,omitempty"`
	DemoAccountID     *string `json:"demoAccountId,omitempty"`
	LiveAPIKey        *string `json:"liveApiKey,omitempty"`
	LiveUsername      *string `json:"liveUsername,omitempty"`
	LivePassword      *string `json:"livePassword,omitempty"`
	LiveWebhookSecret *string `json:"liveWebhookSecret,omitempty"`
	LiveAccountID     *string `json:"liveAccountId,omitempty"`

	OrderType                                   *string `json:"orderType,omitempty"`
	MaximumOrderAgeInMinutes                    *int    `json:"maximumOrderAgeInMinutes,omitempty"`
	MaximumOpenPositions                        *int    `json:"maximumOpenPositions,omitempty"`
	MaximumOpenPositionsAndPendingOrders        *int    `json:"maximumOpenPositionsAndPendingOrders,omitempty"`
	MaximumAlertAgeInSeconds                    *int    `json:"maximumAlertAgeInSeconds,omitempty"`
	AvoidDividendDates                          *bool   `json:"avoidDividendDates,omitempty"`
	EnforceMaximumOpenPositions                 *bool   `json:"enforceMaximumOpenPositions,omitempty"`
	EnforceMaximumOpenPositionsAndPendingOrders *bool   `json:"enforceMaximumOpenPositionsAndPendingOrders,omitempty"`
	EnforceMaximumAlertAgeInSeconds             *bool   `json:"enforceMaximumAlertAgeInSeconds,omitempty"`
	PreventDuplicatePositionsForInstrument      *bool   `json:"preventDuplicatePositionsForInstrument,omitempty"`
}

// GetSettings returns the current user's settings.
func (s *UsersService) GetSettings(ctx context.Context) (*UserSettings, error) {
	return doJSON[UserSettings](ctx, s.t, &tradebridge.Request{
		Method:   http.MethodGet,
		Endpoint: "/users/me/settings",
	})
}

// UpdateSettings applies a partial update and returns the result.
func (s *UsersService) UpdateSettings(ctx context.Context, update UserSettingsUpdate) (*UserSettings, error) {
	return doJSON[UserSettings](ctx, s.t, &tradebridge.Request{
		Method:   http.MethodPatch,
		Endpoint: "/users/me/settings",
		Body:     update,
	})
}

// NewWebhookSecret rotates and returns the alert webhook secret for
// the active mode.
func (s *UsersService) NewWebhookSecret(ctx context.Context) (string, error) {
	out, err := doJSON[struct {
		Secret string `json:"secret"`
	}](ctx, s.t, &tradebridge.Request{
		Method:   http.MethodGet,
		Endpoint: "/users/me/settings/new-webhook-secret",
	})
	if err != nil {
		return "", err
	}
	return out.Secret, nil
}

// ChangePassword replaces the current user's password.
func (s *UsersService) ChangePassword(ctx context.Context, newPassword string) error {
	return doEmpty(ctx, s.t, &tradebridge.Request{
		Method:   http.MethodPatch,
		Endpoint: "/users/me/change-password",
		Body:     map[string]string{"newPassword": newPassword},
	})
}

// List returns all users. Admin only.
func (s *UsersService) List(ctx context.Context, page PageParams) (*Paginated[UserDetails], error) {
	q := url.Values{}
	page.apply(q)
	return doJSON[Paginated[UserDetails]](ctx, s.t, &tradebridge.Request{
		Method:   http.MethodGet,
		Endpoint: "/users",
		Query:    q,
	})
}

// Get returns one user by ID. Admin only.
func (s *UsersService) Get(ctx context.Context, userID string) (*UserDetails, error) {
	return doJSON[UserDetails](ctx, s.t, &tradebridge.Request{
		Method:   http.MethodGet,
		Endpoint: "/users/" + userID,
	})
}

// Delete removes a user. Admin only.
func (s *UsersService) Delete(ctx context.Context, userID string) error {
	return doEmpty(ctx, s.t, &tradebridge.Request{
		Method:   http.MethodDelete,
		Endpoint: "/users/" + userID,
	})
}
