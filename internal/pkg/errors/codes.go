package errors

import "net/http"

var (
	ErrNetworkNotLoaded = New(
		"NETWORK_NOT_LOADED",
		"Road network is not loaded yet",
		http.StatusServiceUnavailable,
	)

	ErrEdgeNotFound = New(
		"EDGE_NOT_FOUND",
		"Edge not found in the road network",
		http.StatusNotFound,
	)

	ErrEdgeNotSelectable = New(
		"EDGE_NOT_SELECTABLE",
		"Express edges cannot be selected as start or destination",
		http.StatusUnprocessableEntity,
	)

	ErrSelectionLocked = New(
		"SELECTION_LOCKED",
		"Start and destination are already selected, reset selection first",
		http.StatusConflict,
	)

	ErrJourneyInFlight = New(
		"JOURNEY_IN_FLIGHT",
		"A journey is in progress, stop it before editing the selection",
		http.StatusConflict,
	)

	ErrSelectionIncomplete = New(
		"SELECTION_INCOMPLETE",
		"Both start and destination must be selected",
		http.StatusBadRequest,
	)

	ErrRouteNotFound = New(
		"ROUTE_NOT_FOUND",
		"No route found between the selected edges",
		http.StatusUnprocessableEntity,
	)

	ErrSimulationUnavailable = New(
		"SIMULATION_UNAVAILABLE",
		"Simulation backend request failed",
		http.StatusBadGateway,
	)

	ErrJourneyNotFound = New(
		"JOURNEY_NOT_FOUND",
		"Journey not found",
		http.StatusNotFound,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
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
