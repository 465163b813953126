package salary

import (
	"go-personnel/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	auth gin.HandlerFunc,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	salaries := r.Group("/salaries")
	salaries.Use(auth)
	salaries.Use(middleware.ContextLogger(logger))
	{
		salaries.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "salary", "read"),
			handler.GetAll,
		)

		salaries.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "salary", "read"),
			handler.GetByID,
		)

		salaries.GET("/:id/payslip",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, "salary", "read"),
			handler.Payslip,
		)

		salaries.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "salary", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		salaries.PUT("/:id",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "salary", "update"),
			handler.Update,
		)

		salaries.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "salary", "delete"),
			handler.Delete,
		)
	}

	personnelSalary := r.Group("/personnel/:id/salary")
	personnelSalary.Use(auth)
	personnelSalary.Use(middleware.ContextLogger(logger))
	personnelSalary.GET("",
		middleware.RateLimitByUser(3, 10),
		middleware.RBACAuthorize(rbacService, "salary", "read"),
		handler.GetByPersonnel,
	)
}
