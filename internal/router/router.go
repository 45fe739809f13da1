// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"net/http"

	"github.com/deppfellow/foodgram/internal/handler"
	"github.com/deppfellow/foodgram/internal/middleware"
	"github.com/deppfellow/foodgram/internal/server"
	"github.com/deppfellow/foodgram/internal/service"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// NewRouter builds the echo instance with every route mounted.
//
// Middleware order matters: the request id and the New Relic transaction
// must exist before the context enhancer copies them into the logger, and
// the logger before anything that logs (rate limit denials included).
func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s, services.Auth)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// "/api/users/" and "/api/users" are the same route.
	router.Pre(echoMiddleware.RemoveTrailingSlash())

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.RateLimit.Limit(),
		middlewares.Global.BodyLimit(),
	)

	registerSystemRoutes(router, h, s)

	api := router.Group("/api")
	registerAuthRoutes(api, h, middlewares.Auth)
	registerUserRoutes(api, h, middlewares.Auth)
	registerCatalogRoutes(api, h)
	registerRecipeRoutes(api, h, middlewares.Auth)
	registerAdminRoutes(api, h, middlewares.Auth)

	router.GET("/s/:code", handler.HandleRedirect(h.Recipes.Handler, h.Recipes.ResolveShortLink, &handler.ShortLinkRequest{}))

	return router
}

func registerAuthRoutes(api *echo.Group, h *handler.Handlers, auth *middleware.AuthMiddleware) {
	a := h.Auth

	tokens := api.Group("/auth/token")
	tokens.POST("/login", handler.Handle(a.Handler, a.Login, http.StatusOK, &handler.LoginRequest{}))
	tokens.POST("/logout", handler.HandleNoContent(a.Handler, a.Logout, http.StatusNoContent, &handler.EmptyRequest{}), auth.RequireAuth)
}

func registerUserRoutes(api *echo.Group, h *handler.Handlers, auth *middleware.AuthMiddleware) {
	u := h.Users

	users := api.Group("/users")

	users.POST("", handler.Handle(u.Handler, u.CreateUser, http.StatusCreated, &handler.CreateUserRequest{}))
	users.GET("", handler.Handle(u.Handler, u.ListUsers, http.StatusOK, &handler.ListUsersRequest{}), auth.OptionalAuth)
	users.GET("/:id", handler.Handle(u.Handler, u.GetUser, http.StatusOK, &handler.IDRequest{}), auth.OptionalAuth)

	me := users.Group("", auth.RequireAuth)
	me.GET("/me", handler.Handle(u.Handler, u.Me, http.StatusOK, &handler.EmptyRequest{}))
	me.PUT("/me/avatar", handler.Handle(u.Handler, u.SetAvatar, http.StatusOK, &handler.SetAvatarRequest{}))
	me.DELETE("/me/avatar", handler.HandleNoContent(u.Handler, u.DeleteAvatar, http.StatusNoContent, &handler.EmptyRequest{}))
	me.POST("/set_password", handler.HandleNoContent(u.Handler, u.SetPassword, http.StatusNoContent, &handler.SetPasswordRequest{}))

	me.GET("/subscriptions", handler.Handle(u.Handler, u.ListSubscriptions, http.StatusOK, &handler.ListSubscriptionsRequest{}))
	me.POST("/:id/subscribe", handler.Handle(u.Handler, u.Subscribe, http.StatusCreated, &handler.IDRequest{}))
	me.DELETE("/:id/subscribe", handler.HandleNoContent(u.Handler, u.Unsubscribe, http.StatusNoContent, &handler.IDRequest{}))
}

// registerCatalogRoutes mounts the read-only tag and ingredient endpoints.
// They are public and unpaginated.
func registerCatalogRoutes(api *echo.Group, h *handler.Handlers) {
	t := h.Tags
	i := h.Ingredients

	api.GET("/tags", handler.Handle(t.Handler, t.ListTags, http.StatusOK, &handler.EmptyRequest{}))
	api.GET("/tags/:id", handler.Handle(t.Handler, t.GetTag, http.StatusOK, &handler.IDRequest{}))

	api.GET("/ingredients", handler.Handle(i.Handler, i.ListIngredients, http.StatusOK, &handler.ListIngredientsRequest{}))
	api.GET("/ingredients/:id", handler.Handle(i.Handler, i.GetIngredient, http.StatusOK, &handler.IDRequest{}))
}

func registerRecipeRoutes(api *echo.Group, h *handler.Handlers, auth *middleware.AuthMiddleware) {
	r := h.Recipes

	recipes := api.Group("/recipes")

	recipes.GET("", handler.Handle(r.Handler, r.ListRecipes, http.StatusOK, &handler.ListRecipesRequest{}), auth.OptionalAuth)
	recipes.GET("/:id", handler.Handle(r.Handler, r.GetRecipe, http.StatusOK, &handler.IDRequest{}), auth.OptionalAuth)
	recipes.GET("/:id/get-link", handler.Handle(r.Handler, r.GetLink, http.StatusOK, &handler.IDRequest{}))

	authed := recipes.Group("", auth.RequireAuth)
	authed.POST("", handler.Handle(r.Handler, r.CreateRecipe, http.StatusCreated, &handler.CreateRecipeRequest{}))
	authed.PATCH("/:id", handler.Handle(r.Handler, r.UpdateRecipe, http.StatusOK, &handler.UpdateRecipeRequest{}))
	authed.DELETE("/:id", handler.HandleNoContent(r.Handler, r.DeleteRecipe, http.StatusNoContent, &handler.IDRequest{}))

	authed.POST("/:id/favorite", handler.Handle(r.Handler, r.AddFavorite, http.StatusCreated, &handler.IDRequest{}))
	authed.DELETE("/:id/favorite", handler.HandleNoContent(r.Handler, r.RemoveFavorite, http.StatusNoContent, &handler.IDRequest{}))
	authed.POST("/:id/shopping_cart", handler.Handle(r.Handler, r.AddToShoppingCart, http.StatusCreated, &handler.IDRequest{}))
	authed.DELETE("/:id/shopping_cart", handler.HandleNoContent(r.Handler, r.RemoveFromShoppingCart, http.StatusNoContent, &handler.IDRequest{}))

	authed.GET("/download_shopping_cart", handler.HandleFile(r.Handler, r.DownloadShoppingCart, http.StatusOK, &handler.EmptyRequest{},
		service.ShoppingListFilename, "text/plain; charset=utf-8"))
}

// registerAdminRoutes mounts the staff-only catalog management endpoints.
func registerAdminRoutes(api *echo.Group, h *handler.Handlers, auth *middleware.AuthMiddleware) {
	t := h.Tags
	i := h.Ingredients

	admin := api.Group("/admin", auth.RequireAuth, auth.RequireStaff)

	admin.POST("/tags", handler.Handle(t.Handler, t.CreateTag, http.StatusCreated, &handler.CreateTagRequest{}))
	admin.POST("/tags/import", handler.Handle(t.Handler, t.ImportTags, http.StatusCreated, &handler.ImportTagsRequest{}))
	admin.PATCH("/tags/:id", handler.Handle(t.Handler, t.UpdateTag, http.StatusOK, &handler.UpdateTagRequest{}))
	admin.DELETE("/tags/:id", handler.HandleNoContent(t.Handler, t.DeleteTag, http.StatusNoContent, &handler.IDRequest{}))

	admin.POST("/ingredients", handler.Handle(i.Handler, i.CreateIngredient, http.StatusCreated, &handler.CreateIngredientRequest{}))
	admin.POST("/ingredients/import", handler.Handle(i.Handler, i.ImportIngredients, http.StatusCreated, &handler.ImportIngredientsRequest{}))
	admin.PATCH("/ingredients/:id", handler.Handle(i.Handler, i.UpdateIngredient, http.StatusOK, &handler.UpdateIngredientRequest{}))
	admin.DELETE("/ingredients/:id", handler.HandleNoContent(i.Handler, i.DeleteIngredient, http.StatusNoContent, &handler.IDRequest{}))
}
