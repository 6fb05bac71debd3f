// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication (admin panel)
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Catalog
	KeyProductCreated  = "product.created"
	KeyProductUpdated  = "product.updated"
	KeyProductDeleted  = "product.deleted"
	KeyProductNotFound = "product.not_found"

	// Checkout / orders
	KeyOrderCreated           = "order.created"
	KeyOrderNotFound          = "order.not_found"
	KeyOrderEmptyCart         = "order.empty_cart"
	KeyOrderLineNotFound      = "order.line_not_found"
	KeyOrderInsufficientStock = "order.insufficient_stock"
	KeyOrderStorageFailure    = "order.storage_failure"
	KeyOrderStatusUpdated     = "order.status_updated"
	KeyOrderStatusEmailFailed = "order.status_email_failed"
	KeyOrderInvalidStatus     = "order.invalid_status"
	KeyOrderInvalidTransition = "order.invalid_transition"

	// Uploads
	KeyUploadNoFiles     = "upload.no_files"
	KeyUploadBadType     = "upload.bad_type"
	KeyUploadStorageDown = "upload.storage_down"
)
