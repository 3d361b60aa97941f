package services

import (
	"context"
	"net/http"

	tradebridge "github.com/quantfold/trade-bridge"
)

// AdminService reads and updates the application-wide settings.
// Admin only.
type AdminService struct {
	t Transport
}

// AppSettings are the global toggles.
type AppSettings struct {
	AllowUserRegistration bool `json:"allowUserRegistration"`
	AllowMultipleAdmins   bool `json:"allowMultipleAdmins"`
}

func (s *AdminService) GetAppSettings(ctx context.Context) (*AppSettings, error) {
	return doJSON[AppSettings](ctx, s.t, &tradebridge.Request{
		Method:   http.MethodGet,
		Endpoint: "/admin/settings",
	})
}

func (s *AdminService) UpdateAppSettings(ctx context.Context, settings AppSettings) error {
	return doEmpty(ctx, s.t, &tradebridge.Request{
		Method:   http.MethodPatch,
		Endpoint: "/admin/settings",
		Body:     settings,
	})
}
