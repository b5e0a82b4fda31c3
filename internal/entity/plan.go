package entity

import "github.com/shopspring/decimal"

// Entidade: Plan
// Chave é a descrição. O valor é fixado na criação e nunca atualizado pelo
// import: drift de preço de plano não é corrigido aqui.
type Plan struct {
	ID        int64
	Descricao string
	Valor     decimal.Decimal
}
