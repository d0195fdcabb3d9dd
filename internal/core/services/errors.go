package services

import (
	"fmt"

	"github.com/SscSPs/equity_management_app/internal/apperrors"
)

var errNoAuthorizer = fmt.Errorf("%w: no company authorizer configured", apperrors.ErrForbidden)
