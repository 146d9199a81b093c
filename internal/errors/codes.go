package errors

// Error code constants returned in the "error" field of failure responses.
// Format: CATEGORY_SPECIFIC_DETAIL; the frontend maps codes to messages.

const (
	// Authentication (AUTH_)
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"

	// Authorization (AUTHZ_)
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzOwnerOnly = "AUTHZ_OWNER_ONLY"

	// Validation (VALIDATION_)
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE"

	// Resources (RESOURCE_)
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// Recipes (RECIPE_)
	RecipeNotFound            = "RECIPE_NOT_FOUND"
	RecipeDuplicateIngredient = "RECIPE_DUPLICATE_INGREDIENT"
	RecipeInvalidCookingTime  = "RECIPE_INVALID_COOKING_TIME"

	// Ingredients / tags (CATALOG_)
	IngredientNotFound = "INGREDIENT_NOT_FOUND"
	TagNotFound        = "TAG_NOT_FOUND"

	// Cart (CART_)
	CartEntryExists   = "CART_ENTRY_EXISTS"
	CartEntryNotFound = "CART_ENTRY_NOT_FOUND"

	// Favorites (FAVORITE_)
	FavoriteExists   = "FAVORITE_EXISTS"
	FavoriteNotFound = "FAVORITE_NOT_FOUND"

	// Follows (FOLLOW_)
	FollowExists   = "FOLLOW_EXISTS"
	FollowNotFound = "FOLLOW_NOT_FOUND"
	FollowSelf     = "FOLLOW_SELF_FORBIDDEN"

	// Uploads (UPLOAD_)
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// Internal (INTERNAL_)
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalRenderError   = "INTERNAL_RENDER_ERROR"
)
