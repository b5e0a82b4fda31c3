package usecase

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xavierca1/ligue-importer/internal/entity"
)

// Colunas obrigatórias da planilha de importação.
const (
	ColCPFCNPJ         = "CPF/CNPJ"
	ColNomeRazaoSocial = "Nome/Razão Social"
	ColNomeFantasia    = "Nome Fantasia"
	ColDataNascimento  = "Data Nasc."
	ColDataCadastro    = "Data Cadastro cliente"
	ColCelulares       = "Celulares"
	ColTelefones       = "Telefones"
	ColEmails          = "Emails"
	ColPlano           = "Plano"
	ColPlanoValor      = "Plano Valor"
	ColVencimento      = "Vencimento"
	ColIsento          = "Isento"
	ColEndereco        = "Endereço"
	ColNumero          = "Número"
	ColBairro          = "Bairro"
	ColCidade          = "Cidade"
	ColComplemento     = "Complemento"
	ColCEP             = "CEP"
	ColUF              = "UF"
	ColStatus          = "Status"
)

// ColMotivoErro é a coluna extra acrescentada nos relatórios de saída.
const ColMotivoErro = "Motivo do Erro"

// ExpectedColumns retorna as colunas obrigatórias na ordem da planilha.
func ExpectedColumns() []string {
	return []string{
		ColCPFCNPJ, ColNomeRazaoSocial, ColNomeFantasia, ColDataNascimento,
		ColDataCadastro, ColCelulares, ColTelefones, ColEmails, ColPlano,
		ColPlanoValor, ColVencimento, ColIsento, ColEndereco, ColNumero,
		ColBairro, ColCidade, ColComplemento, ColCEP, ColUF, ColStatus,
	}
}

type CellKind int

const (
	CellBlank CellKind = iota
	CellText
	CellNumber
)

// Cell é o escalar não tipado de uma célula: ausente, texto ou número.
// É normalizado pelos validadores em tipos concretos do domínio.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

func BlankCell() Cell           { return Cell{Kind: CellBlank} }
func TextCell(s string) Cell    { return Cell{Kind: CellText, Text: s} }
func NumberCell(f float64) Cell { return Cell{Kind: CellNumber, Number: f} }

// IsBlank cobre tanto a célula ausente quanto texto só de espaços.
func (c Cell) IsBlank() bool {
	switch c.Kind {
	case CellBlank:
		return true
	case CellText:
		return strings.TrimSpace(c.Text) == ""
	}
	return false
}

// String devolve o valor bruto para exibição em logs e relatórios.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	}
	return ""
}

// RawRecord é uma linha bruta da planilha, imutável depois de lida.
// A ordem dos campos é dada por ExpectedColumns.
type RawRecord map[string]Cell

// NormalizedRow carrega o valor normalizado de cada campo da linha. Campos
// inválidos carregam a sentinela documentada do seu validador.
type NormalizedRow struct {
	CPFCNPJ         string
	NomeRazaoSocial string
	NomeFantasia    string
	DataNascimento  *time.Time
	DataCadastro    *time.Time
	Celular         string
	Telefone        string
	Email           string
	PlanoDescricao  string
	PlanoValor      decimal.Decimal
	DiaVencimento   int
	Isento          bool
	Endereco        entity.Endereco
	Status          string
}

// RowOutcome é o resultado da validação de uma linha completa.
// Accepted é verdadeiro sse Reasons está vazio.
type RowOutcome struct {
	Accepted bool
	Row      NormalizedRow
	Reasons  []string
}

// ReportRow é uma linha de relatório: o registro original mais o motivo do
// erro (vazio para linhas aceitas).
type ReportRow struct {
	Record RawRecord
	Motivo string
}
