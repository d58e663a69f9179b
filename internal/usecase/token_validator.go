package usecase

import (
	"order-fulfillment/internal/pkg/errs"
	"order-fulfillment/internal/pkg/jwt"
	"order-fulfillment/internal/usecase/shared"
)

var ErrUnknownRole = errs.Validation("unknown role in token")

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (shared.Actor, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (shared.Actor, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return shared.Actor{}, err
	}

	switch claims.Role {
	case shared.RoleCustomer, shared.RoleAdmin:
	default:
		return shared.Actor{}, errs.Wrapf(ErrUnknownRole, "role %q", claims.Role)
	}

	return shared.Actor{ID: claims.UserID, Role: claims.Role}, nil
}
