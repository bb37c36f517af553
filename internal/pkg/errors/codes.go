package errors

import "net/http"

var (
	// ErrCityNotFound - город не разрешился в коммуну с населением выше порога
	ErrCityNotFound = New(
		"CITY_NOT_FOUND",
		"City not found or below population threshold",
		http.StatusNotFound,
	)

	ErrSourceUnavailable = New(
		"SOURCE_UNAVAILABLE",
		"External data source unavailable",
		http.StatusBadGateway,
	)

	ErrDatasetMissing = New(
		"DATASET_MISSING",
		"No housing dataset could be loaded",
		http.StatusServiceUnavailable,
	)

	ErrConfigurationMissing = New(
		"CONFIGURATION_MISSING",
		"Required credentials are not configured",
		http.StatusServiceUnavailable,
	)

	ErrInvalidINSEECode = New(
		"INVALID_INSEE_CODE",
		"Invalid INSEE commune code",
		http.StatusBadRequest,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
