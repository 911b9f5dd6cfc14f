package api

import (
	"errors"
	"strings"

	"github.com/kinoteka-cli/kinoteka/media"
)

// SourceResult is the outcome of a source lookup: SourceOK, SourceUnavailable or SourceError.
type SourceResult interface {
	sourceResult()
}

// SourceOK carries a playable URL.
type SourceOK struct {
	Kind media.Kind
	URL  string
}

// SourceUnavailable means the service has nothing to play or refuses to play it.
type SourceUnavailable struct {
	Reason string
}

// SourceError means the lookup itself failed.
type SourceError struct {
	Message string
}

func (SourceOK) sourceResult()          {}
func (SourceUnavailable) sourceResult() {}
func (SourceError) sourceResult()       {}

type rawSource struct {
	OK     bool   `json:"ok"`
	Kind   string `json:"kind"`
	URL    string `json:"url"`
	Reason string `json:"reason"`
	Detail string `json:"detail"`
}

func (r rawSource) toResult() SourceResult {
	url := strings.TrimSpace(r.URL)
	if !r.OK || url == "" {
		return SourceUnavailable{Reason: firstNonEmpty(r.Reason, r.Detail, "no source")}
	}

	kind, ok := media.ParseKind(r.Kind)
	if !ok {
		kind = media.Classify(url)
	}

	return SourceOK{Kind: kind, URL: url}
}

// sourceFromError shapes a failed source request.
// Forbidden and not found are answers, anything else is a failure.
func sourceFromError(err error) (SourceResult, error) {
	var status *StatusError
	if errors.As(err, &status) && (errors.Is(err, ErrNotEligible) || errors.Is(err, ErrUnavailable)) {
		return SourceUnavailable{Reason: firstNonEmpty(status.Detail, status.Error())}, nil
	}
	return SourceError{Message: err.Error()}, err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
