// Package middleware coerces HTTP form submissions before they reach a
// handler. The coerced result is stored in the request context.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/elnormous/contenttype"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	formcoerce "github.com/reoring/formcoerce"
)

// DefaultMaxMemory bounds the in-memory part of multipart parsing.
const DefaultMaxMemory = 32 << 20

// ErrUnsupportedMediaType is returned by Negotiate for bodies it cannot read.
var ErrUnsupportedMediaType = errors.New("middleware: unsupported content type")

var (
	jsonMediaType       = contenttype.NewMediaType("application/json")
	urlencodedMediaType = contenttype.NewMediaType("application/x-www-form-urlencoded")
	multipartMediaType  = contenttype.NewMediaType("multipart/form-data")
)

type ctxKeyDecoded struct{}

// ContextWithDecoded attaches a coercion result to ctx.
func ContextWithDecoded(ctx context.Context, d formcoerce.Decoded) context.Context {
	return context.WithValue(ctx, ctxKeyDecoded{}, d)
}

// DecodedFromContext retrieves the coercion result stored by Coerce.
func DecodedFromContext(ctx context.Context) (formcoerce.Decoded, bool) {
	d, ok := ctx.Value(ctxKeyDecoded{}).(formcoerce.Decoded)
	return d, ok
}

// Extractor turns a request into the raw value representation.
type Extractor func(*http.Request) (any, error)

// Config configures Coerce. Zero values pick the defaults.
type Config struct {
	Coercer *formcoerce.Coercer // formcoerce.New(DefaultOptions()) when nil
	Extract Extractor           // Negotiate(DefaultMaxMemory) when nil
	Logger  *zap.Logger         // zap.NewNop() when nil
}

// Coerce returns middleware that extracts the submitted form, coerces it
// against shape and stores the result for DecodedFromContext. Extraction
// failures are answered with a JSON error body: 415 for
// ErrUnsupportedMediaType, 400 otherwise.
func Coerce(shape formcoerce.Describer, cfg Config) func(http.Handler) http.Handler {
	if cfg.Coercer == nil {
		cfg.Coercer = formcoerce.New(formcoerce.DefaultOptions())
	}
	if cfg.Extract == nil {
		cfg.Extract = Negotiate(DefaultMaxMemory)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := cfg.Extract(r)
			if err != nil {
				cfg.Logger.Debug("form extraction failed", zap.String("path", r.URL.Path), zap.Error(err))
				status := http.StatusBadRequest
				if errors.Is(err, ErrUnsupportedMediaType) {
					status = http.StatusUnsupportedMediaType
				}
				writeError(w, status, err)
				return
			}
			d := cfg.Coercer.CoerceWithMeta(raw, shape)
			next.ServeHTTP(w, r.WithContext(ContextWithDecoded(r.Context(), d)))
		})
	}
}

// Negotiate picks the extractor from the Content-Type header: JSON bodies of
// at most maxMemory bytes are decoded as records, form bodies go through FormExtractor, and requests
// without a body type fall back to their query string.
func Negotiate(maxMemory int64) Extractor {
	form := FormExtractor(maxMemory)
	return func(r *http.Request) (any, error) {
		if r.Header.Get("Content-Type") == "" {
			return form(r)
		}
		ctype, err := contenttype.GetMediaType(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
		}
		switch {
		case ctype.Matches(jsonMediaType):
			var v any
			body := http.MaxBytesReader(nil, r.Body, maxMemory)
			if err := json.NewDecoder(body).Decode(&v); err != nil {
				return nil, formcoerce.Issues{formcoerce.NewIssue("/", formcoerce.CodeParseError, "", err)}
			}
			return v, nil
		case ctype.Matches(urlencodedMediaType), ctype.Matches(multipartMediaType):
			return form(r)
		}
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, ctype.String())
	}
}

// FormExtractor reads urlencoded or multipart bodies into a flat record.
// Repeated fields become []any, uploaded files become *multipart.FileHeader.
// Without a body the query string is used.
// Field names are taken as-is; bracket or dot notation is not expanded.
func FormExtractor(maxMemory int64) Extractor {
	return func(r *http.Request) (any, error) {
		err := r.ParseMultipartForm(maxMemory)
		if err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, err
		}
		values := r.PostForm
		if len(values) == 0 && r.MultipartForm == nil {
			values = r.Form
		}
		out := make(map[string]any, len(values))
		for k, vs := range values {
			out[k] = flatten(vs)
		}
		if r.MultipartForm != nil {
			for k, fhs := range r.MultipartForm.File {
				out[k] = files(fhs)
			}
		}
		return out, nil
	}
}

func flatten(vs []string) any {
	if len(vs) == 1 {
		return vs[0]
	}
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

func files(fhs []*multipart.FileHeader) any {
	if len(fhs) == 1 {
		return fhs[0]
	}
	out := make([]any, len(fhs))
	for i, fh := range fhs {
		out[i] = fh
	}
	return out
}

// ErrorPayload shapes an error for JSON responses.
func ErrorPayload(err error) map[string]any {
	if iss, ok := formcoerce.AsIssues(err); ok {
		return map[string]any{"issues": iss}
	}
	return map[string]any{"error": err.Error()}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorPayload(err))
}
