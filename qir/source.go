package qir

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/pdfs"
)

const DefaultFetchTimeout = 30 * time.Second

type Kind string

const (
	Remote Kind = "url"
	Inline Kind = "base64"
)

// Reference points at a document: a URL to fetch or an inline base64 payload
type Reference struct {
	Kind    Kind
	Locator string
	Label   string
}

// Blank reports a reference without a usable locator
func (r Reference) Blank() bool {
	return strings.TrimSpace(r.Locator) == ""
}

// name identifies the reference in messages without dumping inline payloads
func (r Reference) name() string {
	if r.Label != "" {
		return r.Label
	}
	if r.Kind == Remote {
		return r.Locator
	}
	return string(r.Kind)
}

// Resolver turns references into loaded documents.
// Safe for concurrent use.
type Resolver struct {
	Client  *http.Client
	Timeout time.Duration // per remote fetch
	Limiter *rate.Limiter // optional, shared by all remote fetches
}

func NewResolver(client *http.Client, timeout time.Duration, limiter *rate.Limiter) *Resolver {
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Resolver{Client: client, Timeout: timeout, Limiter: limiter}
}

// Resolve fetches or decodes ref and parses the result.
// Errors are *FetchError, *DecodeError or *ParseError.
func (r *Resolver) Resolve(ctx context.Context, ref Reference) (*pdfs.Document, error) {
	var (
		data []byte
		err  error
	)
	switch ref.Kind {
	case Remote:
		data, err = r.fetch(ctx, strings.TrimSpace(ref.Locator))
	case Inline:
		data, err = DecodeInline(ref.Locator)
	default:
		err = &DecodeError{Err: fmt.Errorf("unsupported source type %q", ref.Kind)}
	}
	if err != nil {
		return nil, err
	}
	doc, err := pdfs.Load(data)
	if err != nil {
		return nil, &ParseError{Source: ref.name(), Err: err}
	}
	return doc, nil
}

// fetch performs a single GET bounded by r.Timeout. No retry.
func (r *Resolver) fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	if r.Limiter != nil {
		if err := r.Limiter.Wait(ctx); err != nil {
			return nil, &FetchError{URL: url, Err: err}
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/pdf, */*")
	res, err := r.Client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(ctxErr, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
		}
		return nil, &FetchError{URL: url, Err: err}
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			log.Printf("[WARN] closing response body of %s: %v", url, closeErr)
		}
	}()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: res.StatusCode}
	}
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return data, nil
}

// DecodeInline decodes a base64 payload. A data URI prefix
// ("data:application/pdf;base64,") and surrounding whitespace are accepted.
func DecodeInline(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if strings.HasPrefix(payload, "data:") {
		i := strings.Index(payload, ",")
		if i < 0 || !strings.HasSuffix(payload[:i], ";base64") {
			return nil, &DecodeError{Err: errors.New("data URI is not base64 encoded")}
		}
		payload = payload[i+1:]
	}
	if payload == "" {
		return nil, &DecodeError{Err: errors.New("empty payload")}
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// unpadded input
		if raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "=")); rawErr == nil {
			return raw, nil
		}
		return nil, &DecodeError{Err: err}
	}
	return data, nil
}
