package middleware

import (
	"context"

	"go-personnel/internal/domain"
	"go-personnel/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RBACService is satisfied by anything that can decide an EnforceRequest.
type RBACService interface {
	Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		personnelID := c.GetString(ContextPersonnelID)
		companyID := c.GetString(ContextCompanyID)
		if personnelID == "" || companyID == "" {
			abortWithError(c, apperror.ErrUnauthorized)
			return
		}

		allowed, err := service.Enforce(c.Request.Context(), domain.EnforceRequest{
			PersonnelID: personnelID,
			CompanyID:   companyID,
			Resource:    resource,
			Action:      action,
		})
		if err != nil {
			zap.L().Named("middleware.rbac").Error("rbac enforce failed",
				zap.String("personnel_id", personnelID),
				zap.String("company_id", companyID),
				zap.Error(err),
			)
			abortWithError(c, err)
			return
		}

		if !allowed {
			abortWithError(c, apperror.ErrForbidden.WithDetails(gin.H{"required": resource + ":" + action}))
			return
		}
		c.Next()
	}
}
