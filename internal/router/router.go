package router

import (
	"github.com/avolkova/foodgram-backend/config"
	"github.com/avolkova/foodgram-backend/internal/app/controller"
	"github.com/avolkova/foodgram-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController       *controller.AuthController
	tagController        *controller.TagController
	ingredientController *controller.IngredientController
	recipeController     *controller.RecipeController
	cartController       *controller.CartController
	favoriteController   *controller.FavoriteController
	followController     *controller.FollowController
	uploadController     *controller.UploadController
	authMiddleware       *middleware.AuthMiddleware
	config               *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	tagController *controller.TagController,
	ingredientController *controller.IngredientController,
	recipeController *controller.RecipeController,
	cartController *controller.CartController,
	favoriteController *controller.FavoriteController,
	followController *controller.FollowController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:       authController,
		tagController:        tagController,
		ingredientController: ingredientController,
		recipeController:     recipeController,
		cartController:       cartController,
		favoriteController:   favoriteController,
		followController:     followController,
		uploadController:     uploadController,
		authMiddleware:       authMiddleware,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Foodgram API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.POST("/forgot-password", r.authController.ForgotPassword)
			auth.POST("/reset-password", r.authController.ResetPassword)
			auth.POST("/change-password", r.authMiddleware.Authenticate(), r.authController.ChangePassword)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
			auth.PATCH("/me", r.authMiddleware.Authenticate(), r.authController.UpdateMe)
		}

		tags := v1.Group("/tags")
		{
			tags.GET("", r.tagController.GetTags)
			tags.GET("/:id", r.tagController.GetTag)
		}

		ingredients := v1.Group("/ingredients")
		{
			ingredients.GET("", r.ingredientController.SearchIngredients)
			ingredients.GET("/:id", r.ingredientController.GetIngredient)
		}

		recipes := v1.Group("/recipes")
		{
			recipes.GET("", r.authMiddleware.OptionalAuthenticate(), r.recipeController.ListRecipes)

			// Fixed paths before the :id wildcard.
			recipes.GET("/download_shopping_cart",
				r.authMiddleware.Authenticate(),
				r.cartController.DownloadShoppingCart,
			)
			recipes.GET("/shopping_cart", r.authMiddleware.Authenticate(), r.cartController.GetCart)
			recipes.GET("/favorites", r.authMiddleware.Authenticate(), r.favoriteController.GetFavorites)

			recipes.GET("/:id", r.recipeController.GetRecipe)
			recipes.POST("", r.authMiddleware.Authenticate(), r.recipeController.CreateRecipe)
			recipes.PUT("/:id", r.authMiddleware.Authenticate(), r.recipeController.UpdateRecipe)
			recipes.DELETE("/:id", r.authMiddleware.Authenticate(), r.recipeController.DeleteRecipe)

			recipes.POST("/:id/shopping_cart", r.authMiddleware.Authenticate(), r.cartController.AddToCart)
			recipes.DELETE("/:id/shopping_cart", r.authMiddleware.Authenticate(), r.cartController.RemoveFromCart)

			recipes.POST("/:id/favorite", r.authMiddleware.Authenticate(), r.favoriteController.AddFavorite)
			recipes.DELETE("/:id/favorite", r.authMiddleware.Authenticate(), r.favoriteController.RemoveFavorite)
		}

		users := v1.Group("/users")
		users.Use(r.authMiddleware.Authenticate())
		{
			users.GET("/subscriptions", r.followController.GetSubscriptions)
			users.POST("/:id/subscribe", r.followController.Subscribe)
			users.DELETE("/:id/subscribe", r.followController.Unsubscribe)
		}

		upload := v1.Group("/upload")
		upload.Use(r.authMiddleware.Authenticate())
		{
			upload.POST("/presigned-url", r.uploadController.PresignUpload)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
