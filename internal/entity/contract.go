package entity

// Value Object: Endereco
type Endereco struct {
	Logradouro  string
	Numero      string
	Bairro      string
	Cidade      string
	Complemento string
	CEP         string
	UF          string
}

// Entidade: Contract
// Pertence a exatamente um cliente, referencia um plano e um status. A chave
// de negócio completa (cliente + plano + endereço + vencimento) define a
// unicidade; duplicados são ignorados, nunca sobrescritos.
type Contract struct {
	ID            int64
	ClienteID     int64
	PlanoID       int64
	DiaVencimento int
	Isento        bool
	Endereco      Endereco
	StatusID      int64
}
