package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/eventcrew/catering-api/internal/api/handler/v1/response"
	"github.com/eventcrew/catering-api/internal/api/middleware"
	"github.com/eventcrew/catering-api/internal/domain"
)

var errPrincipalMissing = errors.New("no authenticated principal in context")

func getPrincipalFromContext(ctx *gin.Context) (domain.Principal, *response.Err) {
	value, ok := ctx.Get(middleware.PrincipalKey)
	if !ok {
		return domain.Principal{}, response.ErrUnauthorized(errPrincipalMissing)
	}

	principal, ok := value.(domain.Principal)
	if !ok {
		return domain.Principal{}, response.ErrUnauthorized(errPrincipalMissing)
	}

	return principal, nil
}
