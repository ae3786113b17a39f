package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func authApp(token string) *fiber.App {
	app := fiber.New()
	guarded := app.Group("/api", TokenRequired(token))
	guarded.Put("/teams/:name", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestTokenRequired(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		header     string
		wantStatus int
	}{
		{
			name:       "BearerToken",
			configured: "hunter2",
			header:     "Bearer hunter2",
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "RawToken",
			configured: "hunter2",
			header:     "hunter2",
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "WrongToken",
			configured: "hunter2",
			header:     "Bearer letmein",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "NoHeader",
			configured: "hunter2",
			header:     "",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "WritesDisabled",
			configured: "",
			header:     "Bearer anything",
			wantStatus: fiber.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := authApp(tt.configured)
			req := httptest.NewRequest(fiber.MethodPut, "/api/teams/Night%20Crew", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}
