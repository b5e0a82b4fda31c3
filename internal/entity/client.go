package entity

import (
	"errors"
	"time"
	// IMPORTANTE: NÃO adicione imports de usecase ou infra aqui!
)

// Entidade: Client
// A chave natural é o CPF/CNPJ normalizado (11 dígitos para pessoa física,
// 14 para jurídica). A identidade nunca muda depois de criada; os demais
// atributos são sobrescritos no upsert.
type Client struct {
	ID              int64
	NomeRazaoSocial string
	NomeFantasia    string
	CPFCNPJ         string
	DataNascimento  *time.Time
	DataCadastro    *time.Time
}

// Factory
func NewClient(nomeRazaoSocial, nomeFantasia, cpfCNPJ string, dataNascimento, dataCadastro *time.Time) (*Client, error) {
	client := &Client{
		NomeRazaoSocial: nomeRazaoSocial,
		NomeFantasia:    nomeFantasia,
		CPFCNPJ:         cpfCNPJ,
		DataNascimento:  dataNascimento,
		DataCadastro:    dataCadastro,
	}

	if err := client.Validate(); err != nil {
		return nil, err
	}

	return client, nil
}

func (c *Client) Validate() error {
	if c.NomeRazaoSocial == "" {
		return errors.New("nome/razão social is required")
	}
	if len(c.CPFCNPJ) != 11 && len(c.CPFCNPJ) != 14 {
		return errors.New("cpf/cnpj must have 11 or 14 digits")
	}
	return nil
}
