package config

const (
	// MaxProjectTitleLength is the maximum length for project titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxProjectTitleLength = 255

	// MaxFileNameLength is the maximum length for uploaded file names.
	MaxFileNameLength = 255

	// MaxUploadBytes is the maximum size of a single uploaded document.
	// Files are stored inline in the database, so this is kept modest.
	MaxUploadBytes = 25 << 20

	// MaxNotificationMessageLength bounds free-text notification bodies.
	MaxNotificationMessageLength = 1000

	// PinLength is the exact length of a document share PIN.
	PinLength = 4

	// OTPLength is the length of password-reset one-time codes.
	OTPLength = 6
)
