package service

import (
	"testing"

	"github.com/loopiify-next/internal/models"
)

func TestRenderMessageTemplate(t *testing.T) {
	customer := &models.Customer{FirstName: "Mei", LastName: "Ling", Phone: "60123456789"}
	vars := CustomerTemplateVars(customer)
	vars["prize_name"] = "免费咖啡"

	got := RenderMessageTemplate(DefaultWinnerMessage, vars)
	want := "Congratulations Mei! You've won 免费咖啡 in our lucky draw!"
	if got != want {
		t.Fatalf("render want %q got %q", want, got)
	}
}

func TestRenderMessageTemplateKeepsUnknownPlaceholders(t *testing.T) {
	got := RenderMessageTemplate("Hi {first_name}, use code {coupon}", map[string]string{"first_name": "Mei"})
	if got != "Hi Mei, use code {coupon}" {
		t.Fatalf("unknown placeholder must stay intact, got %q", got)
	}
}

func TestCustomerTemplateVarsNilCustomer(t *testing.T) {
	vars := CustomerTemplateVars(nil)
	if len(vars) != 0 {
		t.Fatalf("nil customer should yield empty vars")
	}
}
