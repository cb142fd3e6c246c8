package router

import (
	"paper-cloud/internal/controller"
	"paper-cloud/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetUpRouters(r *gin.Engine, uc *controller.UserController, pc *controller.PaperController) {
	api := r.Group("/api")
	{
		publicUser := api.Group("/users")
		{
			publicUser.POST("/register", uc.Register)
			publicUser.POST("/login", uc.Login)
		}

		papers := api.Group("/papers")
		papers.Use(middleware.JWTAuth())
		{
			papers.POST("/upload", pc.Upload)
			papers.GET("/page", pc.List)
			papers.GET("/search", pc.Search)
			papers.GET("/detail", pc.Detail)
			papers.GET("/download", pc.Download)
			papers.DELETE("/delete", pc.Delete)
			papers.POST("/retrieve", pc.Retrieve)
		}
	}
}
