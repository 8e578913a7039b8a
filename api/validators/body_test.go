package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/ssh-randy/photosynthesis/pkg/errors"
)

type samplePayload struct {
	Title       string `json:"title" validate:"required"`
	Destination string `json:"destination" validate:"required,oneof=product checkout"`
}

func TestDecodeJSONBodyValid(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"Poster","destination":"product"}`))

	var dest samplePayload
	if err := DecodeJSONBody(r, &dest); err != nil {
		t.Fatalf("DecodeJSONBody: %v", err)
	}
	if dest.Title != "Poster" || dest.Destination != "product" {
		t.Fatalf("unexpected payload %+v", dest)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"Poster","destination":"product","scans":9}`))

	var dest samplePayload
	err := DecodeJSONBody(r, &dest)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyRejectsMalformedJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":`))

	var dest samplePayload
	err := DecodeJSONBody(r, &dest)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyReportsFieldDetails(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"","destination":"cart"}`))

	var dest samplePayload
	err := DecodeJSONBody(r, &dest)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	if details["title"] != "is required" {
		t.Fatalf("unexpected title detail %q", details["title"])
	}
	if !strings.Contains(details["destination"], "one of") {
		t.Fatalf("unexpected destination detail %q", details["destination"])
	}
}
