package global

const (
	AppName    = "Todo API"
	AppVersion = "1.0.0" // shown on / and by the version command

	// Gin context keys set by the auth and request-id middlewares.
	// Using string constants reduces the risk of typos and collisions.
	CtxUserIDKey    = "uid"
	CtxEmailKey     = "email"
	CtxRequestIDKey = "request_id"

	// HeaderRequestID is echoed back on every response.
	HeaderRequestID = "X-Request-ID"
)
