package strapi

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/nderose7/shiptrack-app/errs"
	"github.com/nderose7/shiptrack-app/models"
)

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type loginResponse struct {
	JWT string `json:"jwt"`
}

// Login exchanges email+password for a bearer token and persists it
// through the credential store, replacing any previous record.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp loginResponse
	req := loginRequest{Identifier: email, Password: password}
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/local", req, &resp, false); err != nil {
		return err
	}
	if resp.JWT == "" {
		return errs.Decode("login response missing jwt", nil)
	}

	if err := c.creds.Save(models.Credential{Token: resp.JWT, Email: email}); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}

	c.logger.Info("logged in", zap.String("email", email))
	return nil
}

// Logout deletes the stored credential.
func (c *Client) Logout() error {
	return c.creds.Delete()
}
