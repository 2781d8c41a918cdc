package quota

import (
	"go-school/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	jwtSecret string,
) {
	quotas := r.Group("/quotas")
	quotas.Use(middleware.AuthMiddleware(jwtSecret))
	{
		quotas.GET("", middleware.RBACAuthorize(rbacService, "quota", "read"), handler.List)
		quotas.GET("/:role", middleware.RBACAuthorize(rbacService, "quota", "read"), handler.Get)
		quotas.PUT("/:role", middleware.RBACAuthorize(rbacService, "quota", "update"), handler.Update)
	}
}
