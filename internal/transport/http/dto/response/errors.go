package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrAuthenticationFailed = ErrorResponse{
		Status: "error",
		Error:  "authentication_failed",
	}

	ErrUnauthorized = ErrorResponse{
		Status:  "error",
		Error:   "unauthorized",
		Details: "Admin session is missing or expired",
	}

	ErrNotFound = ErrorResponse{
		Status: "error",
		Error:  "not_found",
	}

	ErrPersistenceFailed = ErrorResponse{
		Status:  "error",
		Error:   "persistence_failed",
		Details: "Could not save changes, the draft was kept",
	}

	ErrUploadFailed = ErrorResponse{
		Status:  "error",
		Error:   "upload_failed",
		Details: "Upload failed",
	}

	ErrServiceUnavailable = ErrorResponse{
		Status:  "error",
		Error:   "service_unavailable",
		Details: "Content is temporarily unavailable",
	}

	ErrInternal = ErrorResponse{
		Status: "error",
		Error:  "internal_error",
	}
)
