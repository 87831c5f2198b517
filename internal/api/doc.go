// Package api is the client for the users/posts REST backend.
//
// Every backend response is wrapped in a uniform envelope:
//
//	{ "success": bool, "message": string, "data": ... }
//
// A response is only successful when the HTTP status is below 400 AND the
// envelope reports success=true. Any other outcome is returned as an
// *APIError carrying the envelope message verbatim, so callers can surface
// it to the user unchanged. Transport failures are returned as *NetworkError.
//
// Outbound calls go through a circuit breaker, are counted in prometheus
// collectors, and GET responses can optionally be served from a TTL cache.
package api
