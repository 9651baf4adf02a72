// Package cors holds the cross-origin policy shared by every HTTP facing handler.
package cors

// Policy describes which origins, methods and headers browsers may use.
// Data responses use AllowMethods/AllowHeaders, preflight answers use the
// narrower Preflight* lists.
type Policy struct {
	AllowOrigin      string
	AllowMethods     string
	AllowHeaders     string
	PreflightMethods string
	PreflightHeaders string
}

// Permissive allows any origin, method and header on data responses.
func Permissive() Policy {
	return Policy{
		AllowOrigin:      "*",
		AllowMethods:     "*",
		AllowHeaders:     "*",
		PreflightMethods: "OPTIONS,POST",
		PreflightHeaders: "Content-Type",
	}
}

// Headers returns the headers attached to every JSON data or error response.
func (p Policy) Headers() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  p.AllowOrigin,
		"Access-Control-Allow-Headers": p.AllowHeaders,
		"Access-Control-Allow-Methods": p.AllowMethods,
	}
}

// Preflight returns the headers answering an OPTIONS request.
func (p Policy) Preflight() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  p.AllowOrigin,
		"Access-Control-Allow-Headers": p.PreflightHeaders,
		"Access-Control-Allow-Methods": p.PreflightMethods,
	}
}
