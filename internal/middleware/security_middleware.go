// Package middleware holds the HTTP middleware mounted by the server:
// panic recovery, request logging, rate limiting, and response headers.
package middleware

import (
	"net/http"

	"github.com/iamyashsharma43/SENTIFY/internal/constants"
)

// header is a single response header written before the handler runs.
type header struct{ name, value string }

var securityHeaders = []header{
	{constants.HeaderXContentTypeOptions, constants.ContentTypeOptionsNoSniff},
	{constants.HeaderXFrameOptions, constants.FrameOptionsDeny},
	{constants.HeaderXXSSProtection, constants.XSSProtectionModeBlock},
	{constants.HeaderReferrerPolicy, constants.ReferrerPolicyStrictOrigin},
	{constants.HeaderContentSecurityPolicy, constants.CSPDefaultSrc},
}

var noCacheHeaders = []header{
	{constants.HeaderCacheControl, constants.CacheControlNoStore},
	{constants.HeaderPragma, constants.PragmaNoCache},
	{constants.HeaderExpires, constants.ExpiresZero},
}

// SecurityHeaders adds the browser hardening headers to every response.
func SecurityHeaders() func(http.Handler) http.Handler {
	return withHeaders(securityHeaders)
}

// NoCache marks responses as not cacheable. Analysis results are per request.
func NoCache() func(http.Handler) http.Handler {
	return withHeaders(noCacheHeaders)
}

func withHeaders(headers []header) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, hd := range headers {
				h.Set(hd.name, hd.value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
