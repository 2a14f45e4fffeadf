package httpx

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestPaginate(t *testing.T) {
	cases := []struct {
		name               string
		page, limit, total int
		want               Pagination
	}{
		{"first of many", 1, 12, 30, Pagination{1, 3, 30, true, false}},
		{"middle page", 2, 12, 30, Pagination{2, 3, 30, true, true}},
		{"last page", 3, 12, 30, Pagination{3, 3, 30, false, true}},
		{"exact fit", 2, 10, 20, Pagination{2, 2, 20, false, true}},
		{"empty result", 1, 12, 0, Pagination{1, 0, 0, false, false}},
		{"single partial page", 1, 12, 5, Pagination{1, 1, 5, false, false}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := paginate(tc.page, tc.limit, tc.total)
			if got != tc.want {
				t.Fatalf("paginate(%d, %d, %d) = %+v, want %+v", tc.page, tc.limit, tc.total, got, tc.want)
			}
		})
	}
}

func TestEnvelopeShape(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, 404, "Product not found")

	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	if body["message"] != "Product not found" {
		t.Errorf("message = %v", body["message"])
	}
	if _, ok := body["data"]; ok {
		t.Error("data should be omitted on error responses")
	}
}

func TestRespondValidationShape(t *testing.T) {
	rec := httptest.NewRecorder()
	respondValidation(rec, []FieldError{{Field: "email", Message: "must be a valid email"}})

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var env struct {
		Success bool         `json:"success"`
		Message string       `json:"message"`
		Errors  []FieldError `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if env.Success || env.Message != "Validation failed" {
		t.Errorf("envelope = %+v", env)
	}
	if len(env.Errors) != 1 || env.Errors[0].Field != "email" {
		t.Errorf("errors = %+v", env.Errors)
	}
}

func TestValidateStructReportsJSONNames(t *testing.T) {
	var req registerReq
	errs := validateStruct(&req)
	if len(errs) != 3 {
		t.Fatalf("got %d errors, want 3: %+v", len(errs), errs)
	}
	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
		if e.Message != "is required" {
			t.Errorf("field %s: message = %q, want %q", e.Field, e.Message, "is required")
		}
	}
	for _, want := range []string{"username", "email", "password"} {
		if !fields[want] {
			t.Errorf("missing error for field %q", want)
		}
	}
}

func TestValidateStructCustomTags(t *testing.T) {
	req := registerReq{
		Username: "has spaces!",
		Email:    "buyer@example.com",
		Password: "alllowercase1",
	}
	errs := validateStruct(&req)
	byField := map[string]string{}
	for _, e := range errs {
		byField[e.Field] = e.Message
	}
	if byField["username"] != "can only contain letters, numbers, and underscores" {
		t.Errorf("username message = %q", byField["username"])
	}
	if byField["password"] != "must contain at least one uppercase letter, one lowercase letter, and one number" {
		t.Errorf("password message = %q", byField["password"])
	}

	ok := registerReq{Username: "eco_seller_9", Email: "s@example.com", Password: "Str0ngpass"}
	if errs := validateStruct(&ok); len(errs) != 0 {
		t.Errorf("valid payload rejected: %+v", errs)
	}
}
