package models

// Tamanho is the pizza size of a flavor.
type Tamanho string

const (
	TamanhoSmall  Tamanho = "small"
	TamanhoMedium Tamanho = "medium"
	TamanhoLarge  Tamanho = "large"
)

// Tamanhos lists every accepted size label, in display order.
func Tamanhos() []string {
	return []string{string(TamanhoSmall), string(TamanhoMedium), string(TamanhoLarge)}
}

type Flavor struct {
	ID      int     `json:"id"`
	Sabor   string  `json:"sabor"`
	Preco   float64 `json:"preco"`
	Tamanho Tamanho `json:"tamanho"`
}

type FlavorInput struct {
	Sabor   *string
	Preco   *float64
	Tamanho *Tamanho
}

// FlavorInputFromMap reads an already validated request body. preco may
// arrive as a JSON number or a numeric string.
func FlavorInputFromMap(data map[string]any) FlavorInput {
	in := FlavorInput{
		Sabor: stringField(data, "sabor"),
		Preco: floatField(data, "preco"),
	}
	if s := stringField(data, "tamanho"); s != nil {
		t := Tamanho(*s)
		in.Tamanho = &t
	}
	return in
}
