package leave

import (
	"go-school/internal/middleware"

	"github.com/gin-gonic/gin"
)

type RouteOptions struct {
	JWTSecret string
	// Submit runs before the handler on POST /leaves, e.g. rate limit and idempotency.
	Submit []gin.HandlerFunc
}

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	opts RouteOptions,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware(opts.JWTSecret))
	{
		submit := append([]gin.HandlerFunc{middleware.RBACAuthorize(rbacService, "leave", "create")}, opts.Submit...)
		leaves.POST("", append(submit, handler.Submit)...)
		leaves.GET("/me", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.ListMine)
		leaves.GET("/pending", middleware.RBACAuthorize(rbacService, "leave", "review"), handler.ListPending)
		leaves.GET("/applicants/:applicant_id", middleware.RBACAuthorize(rbacService, "leave", "review"), handler.ListByApplicant)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetByID)
		leaves.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "review"), handler.Approve)
		leaves.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "leave", "review"), handler.Reject)
	}
}
