package response

import (
	"go-shop/internal/usecase/queries"

	"github.com/google/uuid"
)

type SignupResponse struct {
	ID string `json:"id"`
}

func FromSignup(id uuid.UUID) SignupResponse {
	return SignupResponse{ID: id.String()}
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func FromUserView(v *queries.AuthorizedUserView) UserResponse {
	return UserResponse{
		ID:    v.ID.String(),
		Email: v.Email,
		Role:  v.Role,
	}
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

func FromLogin(token string, v *queries.AuthorizedUserView) LoginResponse {
	return LoginResponse{
		AccessToken: token,
		User:        FromUserView(v),
	}
}
