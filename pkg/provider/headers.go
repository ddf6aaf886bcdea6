package provider

import "net/http"

// forwardable is the allow-list of inbound headers that may travel to a
// downstream provider call. Cookies and everything else are dropped so
// credentials cannot leak through this hop.
var forwardable = []string{
	"Authorization",
	"X-Goog-Api-Key",
	"X-Api-Key",
	"Api-Key",
}

// ForwardHeaders extracts the allow-listed authorization headers from an
// inbound request header set.
func ForwardHeaders(in http.Header) http.Header {
	out := http.Header{}
	for _, k := range forwardable {
		if v := in.Get(k); v != "" {
			out.Set(k, v)
		}
	}
	return out
}
