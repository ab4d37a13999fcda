package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func TestCardBindingTags(t *testing.T) {
	v := validator.New()
	if err := v.RegisterValidation("profileid", validateProfileID); err != nil {
		t.Fatalf("register profileid: %v", err)
	}
	if err := v.RegisterValidation("cardsource", validateSource); err != nil {
		t.Fatalf("register cardsource: %v", err)
	}

	valid := []string{"jane", "a1b2-c3_d4", "0f8fad5b-d9cb-469f-a165-70867728950e"}
	for _, id := range valid {
		if err := v.Var(id, "required,profileid"); err != nil {
			t.Fatalf("expected %q to be a valid profile id: %v", id, err)
		}
	}
	invalid := []string{"", "jane doe", "../etc", "jane$"}
	for _, id := range invalid {
		if err := v.Var(id, "required,profileid"); err == nil {
			t.Fatalf("expected %q to be rejected", id)
		}
	}

	if err := v.Var("linkedin.post", "cardsource"); err != nil {
		t.Fatalf("expected source to be valid: %v", err)
	}
	if err := v.Var("<script>", "cardsource"); err == nil {
		t.Fatal("expected markup in source to be rejected")
	}
}

func TestRegisterCustomValidatorsIsIdempotent(t *testing.T) {
	if err := RegisterCustomValidators(); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if err := RegisterCustomValidators(); err != nil {
		t.Fatalf("second registration: %v", err)
	}
}

func TestBindCardQueryResetsOnlyInvalidFields(t *testing.T) {
	if err := RegisterCustomValidators(); err != nil {
		t.Fatalf("register validators: %v", err)
	}
	gin.SetMode(gin.TestMode)

	cases := []struct {
		target string
		want   cardQuery
		errors int
	}{
		{target: "/v/jane?format=json&source=qr", want: cardQuery{Format: "json", Source: "qr"}},
		{target: "/v/jane?format=pdf&source=qr", want: cardQuery{Source: "qr"}, errors: 1},
		{target: "/v/jane?format=json&source=%3Cscript%3E", want: cardQuery{Format: "json"}, errors: 1},
		{target: "/v/jane?format=pdf&source=%3Cscript%3E", want: cardQuery{}, errors: 1},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, tc.target, nil)

		if got := bindCardQuery(c); got != tc.want {
			t.Fatalf("%s: expected %+v, got %+v", tc.target, tc.want, got)
		}
		if len(c.Errors) != tc.errors {
			t.Fatalf("%s: expected %d recorded errors, got %d", tc.target, tc.errors, len(c.Errors))
		}
	}
}
