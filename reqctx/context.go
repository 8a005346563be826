package reqctx

import "context"

// Context key type
type contextKey string

const requestUIDKey contextKey = "request_uid"
const clientIPKey contextKey = "client_ip"
const userAgentKey contextKey = "user_agent"

// SetRequestUID adds the request uid to the context
func SetRequestUID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, requestUIDKey, uid)
}

// GetRequestUID retrieves the request uid from the context
func GetRequestUID(ctx context.Context) string {
	uid, _ := ctx.Value(requestUIDKey).(string)
	return uid
}

// SetClient adds the client ip address and user agent to the context
func SetClient(ctx context.Context, ip, userAgent string) context.Context {
	ctx = context.WithValue(ctx, clientIPKey, ip)
	return context.WithValue(ctx, userAgentKey, userAgent)
}

// GetClientIP retrieves the client ip address from the context
func GetClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey).(string)
	return ip
}

// GetUserAgent retrieves the client user agent from the context
func GetUserAgent(ctx context.Context) string {
	ua, _ := ctx.Value(userAgentKey).(string)
	return ua
}
