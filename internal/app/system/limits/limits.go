// internal/app/system/limits/limits.go
package limits

import (
	"mime"
	"net/http"
)

// MaxFormSize caps urlencoded form and JSON bodies. Multipart uploads are
// capped per kind by the upload handler instead.
const MaxFormSize = 1 << 20 // 1 MB

// FormBody rejects non-multipart request bodies larger than max. A declared
// Content-Length over the cap fails fast with 413; otherwise the body is
// wrapped so ParseForm fails once max bytes have been read.
func FormBody(max int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody || isMultipart(r) {
				next.ServeHTTP(w, r)
				return
			}
			if r.ContentLength > max {
				http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, max)
			next.ServeHTTP(w, r)
		})
	}
}

func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}
