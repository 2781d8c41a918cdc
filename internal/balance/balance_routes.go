package balance

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
	balances := r.Group("/balances")
	balances.Use(middleware.AuthMiddleware(jwtSecret))
	{
		balances.GET("/me", middleware.RBACAuthorize(rbacService, "balance", "read"), handler.GetMine)
		balances.GET("/:applicant_id", middleware.RBACAuthorize(rbacService, "balance", "read_all"), handler.GetByApplicant)
		balances.PUT("/:applicant_id", middleware.RBACAuthorize(rbacService, "balance", "update"), handler.Set)
	}
}
