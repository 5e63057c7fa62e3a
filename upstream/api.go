package upstream

import (
	"context"

	"vinworld/models"
)

// API is the remote docket backend. Endpoints, payload shapes and the
// success/message envelope are owned by that service; this interface only
// mirrors them.
type API interface {
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
	GetDockets(ctx context.Context, locationID int64, search string) ([]models.Docket, error)
	CreateDocket(ctx context.Context, payload *models.CreatePayload) error
	UpdateDocket(ctx context.Context, payload *models.UpdatePayload, image *ImageUpload) error
	GetConsignors(ctx context.Context) ([]models.Consignor, error)
}

// LoginResult is the successful outcome of login.php.
type LoginResult struct {
	User  models.UserProfile
	Token string
}

// ImageUpload is an optional document image attached to an update.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// APIError carries a backend-reported failure (success=false). Its message
// is surfaced to the user verbatim; every other error class is reported as
// a generic network failure.
type APIError struct {
	Message string
}

func (e *APIError) Error() string { return e.Message }
