package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	apperrors "github.com/kbukum/hydrokit/errors"
	"github.com/kbukum/hydrokit/hydrate"
	"github.com/kbukum/hydrokit/observability"
)

const defaultSourceTimeout = 10 * time.Second

// placeholderPattern matches {input} and {input.field} URL placeholders.
var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// HTTPSource builds Operations that fetch JSON documents over HTTP.
type HTTPSource struct {
	def    SourceDef
	client *http.Client
}

// NewHTTPSource creates a source for the given definition. A zero timeout
// falls back to 10 seconds. Header values may reference environment
// variables as ${VAR}, keeping API keys out of definition files.
func NewHTTPSource(def SourceDef) *HTTPSource {
	timeout := def.Timeout.Std()
	if timeout <= 0 {
		timeout = defaultSourceTimeout
	}
	if len(def.Headers) > 0 {
		expanded := make(map[string]string, len(def.Headers))
		for k, v := range def.Headers {
			expanded[k] = os.ExpandEnv(v)
		}
		def.Headers = expanded
	}
	return &HTTPSource{
		def:    def,
		client: &http.Client{Timeout: timeout},
	}
}

// Operation returns the fetch step for this source. The operation expands
// URL placeholders from its input, issues a GET, and decodes the JSON
// response body.
func (s *HTTPSource) Operation() hydrate.Operation {
	return func(ctx context.Context, input any) (any, error) {
		target, err := ExpandURL(s.def.URL, input)
		if err != nil {
			return nil, err
		}

		ctx, span := observability.StartSpan(ctx, observability.SpanFetch)
		defer span.End()
		observability.SetSpanAttribute(ctx, observability.AttrSource, target)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, apperrors.Upstream(target, err)
		}
		req.Header.Set("Accept", "application/json")
		for k, v := range s.def.Headers {
			req.Header.Set(k, v)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			observability.SetSpanError(ctx, err)
			return nil, apperrors.Upstream(target, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusBadRequest {
			statusErr := fmt.Errorf("status %d", resp.StatusCode)
			observability.SetSpanError(ctx, statusErr)
			return nil, apperrors.Upstream(target, statusErr)
		}

		var out any
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			observability.SetSpanError(ctx, err)
			return nil, apperrors.Upstream(target, err)
		}
		return out, nil
	}
}

// ExpandURL substitutes URL placeholders from the operation input. {input}
// takes the whole input; {input.field} takes a field of a string-keyed map
// input. Expanded values are path-escaped.
func ExpandURL(template string, input any) (string, error) {
	var expandErr error
	expanded := placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := match[1 : len(match)-1]
		val, err := resolvePlaceholder(key, input)
		if err != nil {
			if expandErr == nil {
				expandErr = err
			}
			return match
		}
		return url.PathEscape(val)
	})
	if expandErr != nil {
		return "", expandErr
	}
	return expanded, nil
}

func resolvePlaceholder(key string, input any) (string, error) {
	if key == "input" {
		if input == nil {
			return "", fmt.Errorf("catalog: url placeholder {input}: input is nil")
		}
		return fmt.Sprint(input), nil
	}

	field, ok := strings.CutPrefix(key, "input.")
	if !ok {
		return "", fmt.Errorf("catalog: unsupported url placeholder %q", key)
	}
	m, ok := input.(map[string]any)
	if !ok {
		return "", fmt.Errorf("catalog: url placeholder {%s} needs a map input, got %T", key, input)
	}
	val, ok := m[field]
	if !ok {
		return "", fmt.Errorf("catalog: url placeholder {%s}: field %q not in input", key, field)
	}
	return fmt.Sprint(val), nil
}
