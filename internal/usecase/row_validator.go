package usecase

import (
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-importer/internal/entity"
)

// RowValidator aplica todos os validadores de campo a uma linha bruta e
// acumula os motivos. Não há curto-circuito: o relatório de erros precisa
// mostrar todos os defeitos da linha, não só o primeiro.
type RowValidator struct {
	log *zap.Logger
}

func NewRowValidator(log *zap.Logger) *RowValidator {
	return &RowValidator{log: log}
}

// Validate produz o RowOutcome de uma linha. Todo campo presente no registro
// bruto ganha um valor normalizado, mesmo quando inválido (sentinela).
func (v *RowValidator) Validate(rowNum int, rec RawRecord) RowOutcome {
	var row NormalizedRow
	var reasons []string

	collect := func(reason string) {
		if reason != "" {
			reasons = append(reasons, reason)
		}
	}

	var reason string

	row.CPFCNPJ, reason = CleanCPFCNPJ(rec[ColCPFCNPJ])
	v.logField(rowNum, ColCPFCNPJ, rec[ColCPFCNPJ], row.CPFCNPJ, reason)
	collect(reason)

	row.NomeRazaoSocial, _ = EncodeString(rec[ColNomeRazaoSocial], 255, "")
	row.NomeFantasia, _ = EncodeString(rec[ColNomeFantasia], 255, "")

	row.DataNascimento, reason = ConvertCellDate(rec[ColDataNascimento], ColDataNascimento)
	collect(reason)

	row.DataCadastro, reason = ConvertCellDate(rec[ColDataCadastro], ColDataCadastro)
	collect(reason)

	row.Celular, reason = CleanPhone(rec[ColCelulares], ColCelulares)
	v.logField(rowNum, ColCelulares, rec[ColCelulares], row.Celular, reason)
	collect(reason)

	row.Telefone, reason = CleanPhone(rec[ColTelefones], ColTelefones)
	collect(reason)

	row.Email, reason = CleanEmail(rec[ColEmails])
	collect(reason)

	row.PlanoDescricao, _ = EncodeString(rec[ColPlano], 255, "")

	row.PlanoValor, reason = ValidatePlanoValor(rec[ColPlanoValor])
	collect(reason)

	row.DiaVencimento, reason = ValidateDiaVencimento(rec[ColVencimento])
	collect(reason)

	row.Isento, reason = ValidateIsento(rec[ColIsento])
	collect(reason)

	row.Endereco = entity.Endereco{}
	row.Endereco.Logradouro, _ = EncodeString(rec[ColEndereco], 255, "")
	row.Endereco.Numero, _ = EncodeString(rec[ColNumero], 15, "")
	row.Endereco.Bairro, _ = EncodeString(rec[ColBairro], 255, "")
	row.Endereco.Cidade, _ = EncodeString(rec[ColCidade], 255, "")
	row.Endereco.Complemento, _ = EncodeString(rec[ColComplemento], 500, "")

	row.Endereco.CEP, reason = CleanCEP(rec[ColCEP])
	if reason == "" && rec[ColCEP].String() != row.Endereco.CEP {
		// CEP curto corrigido com zeros à esquerda: aceito, só registrado.
		v.log.Info("CEP normalizado",
			zap.Int("row", rowNum),
			zap.String("raw", rec[ColCEP].String()),
			zap.String("cleaned", row.Endereco.CEP))
	}
	collect(reason)

	row.Endereco.UF, reason = NormalizeUF(rec[ColUF])
	collect(reason)

	row.Status, _ = EncodeString(rec[ColStatus], 0, "")

	if len(reasons) > 0 {
		v.log.Warn("linha rejeitada na validação",
			zap.Int("row", rowNum),
			zap.Strings("reasons", reasons))
	}

	return RowOutcome{
		Accepted: len(reasons) == 0,
		Row:      row,
		Reasons:  reasons,
	}
}

func (v *RowValidator) logField(rowNum int, field string, raw Cell, cleaned, reason string) {
	if reason != "" {
		v.log.Warn("campo inválido",
			zap.Int("row", rowNum),
			zap.String("field", field),
			zap.String("raw", raw.String()),
			zap.String("reason", reason))
		return
	}
	v.log.Debug("campo validado",
		zap.Int("row", rowNum),
		zap.String("field", field),
		zap.String("raw", raw.String()),
		zap.String("cleaned", cleaned))
}
