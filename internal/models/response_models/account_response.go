package response_models

import "portal/internal/models/db_models"

type AccountResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Photo     string `json:"photo,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// FromAccount flattens a stored account for display; the password hash is
// never part of the response.
func FromAccount(a *db_models.Account) AccountResponse {
	photo := ""
	if a.Photo != nil {
		photo = *a.Photo
	}
	return AccountResponse{
		ID:        a.ID.String(),
		Username:  a.Username,
		Email:     a.Email,
		Role:      a.Role,
		Phone:     a.Phone,
		Address:   a.Address,
		Photo:     photo,
		CreatedAt: a.CreatedAt,
	}
}
