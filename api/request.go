package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/rpupo63/portfolio-cms-backend/errs"
)

// maxJSONBodySize bounds request bodies. Blog sections can carry long code samples.
const maxJSONBodySize int64 = 5 << 20

// decodeJSON reads a single JSON document from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			return errs.NewUnsupportedMediaTypeError(ct, []string{"application/json"})
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return errs.NewMaxBodySizeExceededError(maxErr.Limit)
		case errors.Is(err, io.EOF):
			return errs.NewMalformedPayloadError("JSON", errors.New("request body is empty"))
		default:
			return errs.NewInvalidJSONError(err)
		}
	}
	if dec.More() {
		return errs.NewMalformedPayloadError("JSON", errors.New("unexpected data after JSON document"))
	}
	return nil
}

// pagination reads limit and offset. Anything unparsable is left at zero and
// later replaced by the query defaults.
func pagination(r *http.Request) (limit, offset int) {
	q := r.URL.Query()
	limit, _ = strconv.Atoi(strings.TrimSpace(q.Get("limit")))
	offset, _ = strconv.Atoi(strings.TrimSpace(q.Get("offset")))
	return limit, offset
}
