package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The frontend maps these codes to its own messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed or tampered token
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate email

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // bad input
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // bad id
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT" // bad format
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"  // out of range
	ValidationRequired      = "VALIDATION_REQUIRED"       // missing required field

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // no such resource
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // already exists
	ResourceConflict      = "RESOURCE_CONFLICT"       // conflicting state

	// ==================== Customers (CUSTOMER_) ====================
	CustomerNotFound    = "CUSTOMER_NOT_FOUND"     // no such customer
	CustomerTaxIDExists = "CUSTOMER_TAXID_EXISTS"  // CPF/CNPJ already registered
	CustomerTaxIDLength = "CUSTOMER_TAXID_INVALID" // CPF/CNPJ with wrong digit count

	// ==================== Wizard (WIZARD_) ====================
	WizardNoProgress     = "WIZARD_NO_PROGRESS"     // no wizard session in flight
	WizardStepIncomplete = "WIZARD_STEP_INCOMPLETE" // prerequisite step missing

	// ==================== Documents (DOCUMENT_) ====================
	DocumentIncompleteData = "DOCUMENT_INCOMPLETE_DATA" // not enough data to compose
	DocumentRenderFailed   = "DOCUMENT_RENDER_FAILED"   // PDF generation failed

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // server error
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // DB error
	InternalStorageError  = "INTERNAL_STORAGE_ERROR"  // object storage error
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"   // configuration error
)
