package validation

import (
	"context"

	"pizzaria-api/internal/models"
)

// LoginValidator checks the login body.
type LoginValidator struct {
	rules RuleSet
}

func NewLoginValidator() *LoginValidator {
	return &LoginValidator{rules: RuleSet{
		{Name: "email", Rules: []Rule{
			Required("email").WithMessage("O campo email é obrigatório"),
			Email("email").WithMessage("O email fornecido não é válido"),
		}},
		{Name: "password", Rules: []Rule{
			Required("senha").WithMessage("O campo senha é obrigatório"),
			String("senha"),
		}},
	}}
}

func (v *LoginValidator) Validate(ctx context.Context, data map[string]any) ([]string, error) {
	return v.rules.Validate(ctx, data)
}

// MaxPreco is the largest value a DECIMAL(10,2) preco column holds.
const MaxPreco = 99999999.99

type FlavorValidator struct {
	create RuleSet
	update RuleSet
}

func NewFlavorValidator() *FlavorValidator {
	return &FlavorValidator{
		create: RuleSet{
			{Name: "sabor", Rules: []Rule{Required("sabor"), String("sabor"), MaxLength("sabor", 255)}},
			{Name: "preco", Rules: []Rule{Required("preco"), Numeric("preco"), Min("preco", 0), Max("preco", MaxPreco)}},
			{Name: "tamanho", Rules: []Rule{Required("tamanho"), In("tamanho", models.Tamanhos())}},
		},
		update: RuleSet{
			{Name: "sabor", Rules: []Rule{Filled("sabor"), String("sabor"), MaxLength("sabor", 255)}},
			{Name: "preco", Rules: []Rule{Filled("preco"), Numeric("preco"), Min("preco", 0), Max("preco", MaxPreco)}},
			{Name: "tamanho", Rules: []Rule{Filled("tamanho"), In("tamanho", models.Tamanhos())}},
		},
	}
}

func (v *FlavorValidator) ValidateCreate(ctx context.Context, data map[string]any) ([]string, error) {
	return v.create.Validate(ctx, data)
}

func (v *FlavorValidator) ValidateUpdate(ctx context.Context, data map[string]any) ([]string, error) {
	return v.update.Validate(ctx, data)
}

// EmailChecker is implemented by the user store.
type EmailChecker interface {
	EmailExists(ctx context.Context, email string) (bool, error)
}

type UserValidator struct {
	create RuleSet
	update RuleSet
}

func NewUserValidator(emails EmailChecker) *UserValidator {
	return &UserValidator{
		create: RuleSet{
			{Name: "name", Rules: []Rule{Required("nome"), String("nome"), MaxLength("nome", 255)}},
			{Name: "email", Rules: []Rule{Required("email"), Email("email"), Unique("email", emails.EmailExists)}},
			{Name: "password", Rules: []Rule{Required("senha"), MinLength("senha", 6)}},
		},
		update: RuleSet{
			{Name: "name", Rules: []Rule{Filled("nome"), String("nome"), MaxLength("nome", 255)}},
			{Name: "email", Rules: []Rule{Filled("email"), Email("email")}},
			{Name: "password", Rules: []Rule{Filled("senha"), MinLength("senha", 6)}},
		},
	}
}

func (v *UserValidator) ValidateCreate(ctx context.Context, data map[string]any) ([]string, error) {
	return v.create.Validate(ctx, data)
}

func (v *UserValidator) ValidateUpdate(ctx context.Context, data map[string]any) ([]string, error) {
	return v.update.Validate(ctx, data)
}
