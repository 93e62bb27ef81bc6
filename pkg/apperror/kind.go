package apperror

type Kind string

var (
	InvalidInput       Kind = "invalid_input"
	NotFound           Kind = "not_found"
	RequestTimeout     Kind = "request_timeout"
	StorageUnavailable Kind = "storage_unavailable"
	Internal           Kind = "internal"
)
