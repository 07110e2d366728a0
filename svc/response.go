package svc

import "io"

// ApiResponse is the router's tagged-variant return type.
// Exactly one of the concrete kinds below is meaningful for a given Kind.
type ApiResponse struct {
	Kind        responseKind
	ContentType string
	Body        []byte
	File        io.ReadCloser
	Message     string // ServerError / Locked text
}

type responseKind int

const (
	KindText responseKind = iota
	KindFile
	KindNotFound
	KindUnknownContentType
	KindServerError
	KindLocked
)

// EndpointOutcome is what the Router returns: whether the response may
// be cached, plus the response itself.
type EndpointOutcome struct {
	Cacheable bool
	Response  ApiResponse
}

func textResponse(contentType string, body []byte) ApiResponse {
	return ApiResponse{Kind: KindText, ContentType: contentType, Body: body}
}

func fileResponse(contentType string, f io.ReadCloser) ApiResponse {
	return ApiResponse{Kind: KindFile, ContentType: contentType, File: f}
}

func notFoundResponse() ApiResponse { return ApiResponse{Kind: KindNotFound} }

func unknownContentTypeResponse() ApiResponse { return ApiResponse{Kind: KindUnknownContentType} }

func serverErrorResponse(msg string) ApiResponse {
	return ApiResponse{Kind: KindServerError, Message: msg}
}

func lockedResponse(msg string) ApiResponse {
	return ApiResponse{Kind: KindLocked, Message: msg}
}

// RequestParams is the frozen, per-request view the router, cache key
// derivation, and access logging all share. Keeping it frozen this way
// stops cache key derivation from drifting apart from dispatch logic.
type RequestParams struct {
	Method      string
	RawURL      string
	CleanedURL  string
	Items       []string // path segments, percent-decoded, items[0] is always ""
	ContentType string   // client-hint from the Content-Type header, first token
	RemoteIP    string
	Referer     string
	UserAgent   string
	Params      *ParameterExtractor
	ReceivedAt  struct {
		Sec  int64
		Nsec int64
	}
}
