package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validadores de campo: cada um recebe o valor bruto da célula e devolve o
// valor normalizado mais um motivo de rejeição (string vazia quando válido).
// Nenhum validador falha a linha sozinho: inválido vira sentinela + motivo,
// e a política de aceitação fica centralizada no RowValidator.

var (
	nonDigitRegex = regexp.MustCompile(`\D`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// CPFCNPJSentinel é devolvido para todo CPF/CNPJ rejeitado.
const CPFCNPJSentinel = "00000000000"

// CEPSentinel é devolvido para todo CEP rejeitado.
const CEPSentinel = "00000000"

// UFSentinel é devolvido para toda UF rejeitada.
const UFSentinel = "XX"

// Mapeamento de UFs (estados brasileiros)
var ufMapping = map[string]string{
	"ACRE": "AC", "ALAGOAS": "AL", "AMAPÁ": "AP", "AMAZONAS": "AM", "BAHIA": "BA",
	"CEARÁ": "CE", "DISTRITO FEDERAL": "DF", "ESPÍRITO SANTO": "ES", "GOIÁS": "GO",
	"MARANHÃO": "MA", "MATO GROSSO": "MT", "MATO GROSSO DO SUL": "MS", "MINAS GERAIS": "MG",
	"PARÁ": "PA", "PARAÍBA": "PB", "PARANÁ": "PR", "PERNAMBUCO": "PE", "PIAUÍ": "PI",
	"RIO DE JANEIRO": "RJ", "RIO GRANDE DO NORTE": "RN", "RIO GRANDE DO SUL": "RS",
	"RONDÔNIA": "RO", "RORAIMA": "RR", "SANTA CATARINA": "SC", "SÃO PAULO": "SP",
	"SERGIPE": "SE", "TOCANTINS": "TO",
}

var ufCodes = func() map[string]bool {
	codes := make(map[string]bool, len(ufMapping))
	for _, code := range ufMapping {
		codes[code] = true
	}
	return codes
}()

// CleanCPFCNPJ limpa e valida CPF (11 dígitos) ou CNPJ (14 dígitos) com
// checksum. Devolve a sentinela "00000000000" quando inválido.
func CleanCPFCNPJ(raw Cell) (string, string) {
	if raw.IsBlank() {
		return CPFCNPJSentinel, "CPF/CNPJ ausente ou vazio."
	}

	cleaned := nonDigitRegex.ReplaceAllString(raw.String(), "")
	if cleaned == "" {
		return CPFCNPJSentinel, "CPF/CNPJ vazio após limpeza."
	}

	switch len(cleaned) {
	case 11:
		if allDigitsEqual(cleaned) {
			return CPFCNPJSentinel, "CPF inválido (todos os dígitos iguais)."
		}
		if isSequentialRun(cleaned) {
			return CPFCNPJSentinel, "CPF inválido (dígitos sequenciais)."
		}

		digit1 := checkDigit(cleaned[:9], []int{10, 9, 8, 7, 6, 5, 4, 3, 2})
		digit2 := checkDigit(cleaned[:9]+strconv.Itoa(digit1), []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2})

		expected := fmt.Sprintf("%d%d", digit1, digit2)
		provided := cleaned[9:11]
		if provided != expected {
			return CPFCNPJSentinel, fmt.Sprintf("Checksum de CPF inválido (esperado: %s, fornecido: %s).", expected, provided)
		}
		return cleaned, ""

	case 14:
		if allDigitsEqual(cleaned) {
			return CPFCNPJSentinel, "CNPJ inválido (todos os dígitos iguais)."
		}

		digit1 := checkDigit(cleaned[:12], []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2})
		digit2 := checkDigit(cleaned[:12]+strconv.Itoa(digit1), []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2})

		expected := fmt.Sprintf("%d%d", digit1, digit2)
		provided := cleaned[12:14]
		if provided != expected {
			return CPFCNPJSentinel, fmt.Sprintf("Checksum de CNPJ inválido (esperado: %s, fornecido: %s).", expected, provided)
		}
		return cleaned, ""
	}

	return CPFCNPJSentinel, fmt.Sprintf("Comprimento de CPF/CNPJ inválido (%d dígitos, esperado 11 ou 14).", len(cleaned))
}

// checkDigit calcula um dígito verificador por soma ponderada módulo 11.
func checkDigit(digits string, weights []int) int {
	total := 0
	for i, w := range weights {
		total += int(digits[i]-'0') * w
	}
	remainder := total % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}

func allDigitsEqual(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// isSequentialRun detecta CPFs como 12345678901: cada dígito é o anterior
// mais um, módulo 10.
func isSequentialRun(s string) bool {
	first := int(s[0] - '0')
	for i := 1; i < len(s); i++ {
		if int(s[i]-'0') != (first+i)%10 {
			return false
		}
	}
	return true
}

// Layouts aceitos para datas em texto, com precedência dia-antes-do-mês.
var dateLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"02/01/2006 15:04:05",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/06",
}

// excelEpoch é o dia zero do sistema de datas da planilha (1899-12-30).
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// ConvertCellDate converte a célula em data: serial numérico da planilha
// (epoch 1899-12-30 + N dias) ou texto nos layouts aceitos. Devolve nil com
// motivo quando ausente ou não parseável.
func ConvertCellDate(raw Cell, fieldName string) (*time.Time, string) {
	if raw.IsBlank() {
		return nil, fmt.Sprintf("%s ausente ou vazio.", fieldName)
	}

	if raw.Kind == CellNumber {
		result := excelEpoch.Add(time.Duration(raw.Number * 24 * float64(time.Hour)))
		result = result.Truncate(24 * time.Hour)
		return &result, ""
	}

	text := strings.TrimSpace(raw.Text)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			// Só a data interessa; layouts com hora descartam o horário.
			parsed = parsed.Truncate(24 * time.Hour)
			return &parsed, ""
		}
	}

	return nil, fmt.Sprintf("Falha ao parsear data de string para %s: formato não reconhecido (%s).", fieldName, text)
}

// CleanPhone limpa e valida telefones brasileiros: 10 dígitos para fixo ou
// 11 dígitos com terceiro dígito 6/7/8/9 para móvel, normalizado com prefixo
// +55. Ausente não é erro. O prefixo de país 55 só é removido quando o
// comprimento pós-limpeza é 13, o que torna a normalização idempotente.
func CleanPhone(raw Cell, fieldName string) (string, string) {
	if raw.IsBlank() {
		return "", ""
	}

	cleaned := nonDigitRegex.ReplaceAllString(raw.String(), "")
	if cleaned == "" {
		return "", ""
	}

	// "+5511..." chega aqui como 13 dígitos: o '+' não sobrevive à limpeza.
	if strings.HasPrefix(cleaned, "55") && len(cleaned) == 13 {
		cleaned = cleaned[2:]
	}

	if len(cleaned) == 11 && strings.ContainsRune("9876", rune(cleaned[2])) {
		return "+55" + cleaned, ""
	}
	if len(cleaned) == 10 {
		return "+55" + cleaned, ""
	}

	return "", fmt.Sprintf("%s inválido (10 dígitos para fixo, 11 dígitos com terceiro dígito após DDD como 9/8/7/6 para móvel).", fieldName)
}

// CleanEmail valida o formato do email com um padrão conservador; não há
// verificação de entregabilidade. Ausente não é erro.
func CleanEmail(raw Cell) (string, string) {
	if raw.IsBlank() {
		return "", ""
	}

	email := strings.TrimSpace(raw.String())
	if !emailRegex.MatchString(email) {
		return "", "Formato de email inválido."
	}
	return email, ""
}

// CleanCEP normaliza o CEP para 8 dígitos. Menos de 8 dígitos é corrigido
// com zeros à esquerda (aceito); mais de 8 é rejeitado com a sentinela.
func CleanCEP(raw Cell) (string, string) {
	if raw.IsBlank() {
		return CEPSentinel, "CEP ausente ou vazio."
	}

	cleaned := nonDigitRegex.ReplaceAllString(raw.String(), "")
	if cleaned == "" {
		return CEPSentinel, "CEP inválido (contém caracteres não numéricos)."
	}

	if len(cleaned) > 8 {
		return CEPSentinel, "Comprimento de CEP inválido (deve ter 8 dígitos)."
	}
	if len(cleaned) < 8 {
		cleaned = strings.Repeat("0", 8-len(cleaned)) + cleaned
	}
	return cleaned, ""
}

// NormalizeUF normaliza a UF para o código de 2 letras: aceita o código
// canônico direto ou o nome completo do estado (case-insensitive).
func NormalizeUF(raw Cell) (string, string) {
	if raw.IsBlank() {
		return UFSentinel, "UF ausente ou vazio."
	}

	uf := strings.ToUpper(strings.TrimSpace(raw.String()))
	if len(uf) == 2 && ufCodes[uf] {
		return uf, ""
	}

	for name, code := range ufMapping {
		if strings.EqualFold(uf, name) {
			return code, ""
		}
	}

	return UFSentinel, "UF inválido."
}

// ValidateDiaVencimento valida o dia de vencimento (1-31). A sentinela 1 é
// em si um dia válido: a lista de motivos é o único jeito de distinguir
// "defaultado" de um 1 genuíno.
func ValidateDiaVencimento(raw Cell) (int, string) {
	if raw.IsBlank() {
		return 1, "Dia de vencimento ausente ou vazio."
	}

	parsed, err := strconv.ParseFloat(strings.TrimSpace(raw.String()), 64)
	if err != nil {
		return 1, "Dia de vencimento não é um número."
	}

	dia := int(parsed)
	if dia < 1 || dia > 31 {
		return 1, "Dia de vencimento inválido (deve ser entre 1 e 31)."
	}
	return dia, ""
}

// ValidatePlanoValor valida o valor do plano como decimal, aceitando
// separador de milhar. Sentinela 0 quando inválido ou ausente.
func ValidatePlanoValor(raw Cell) (decimal.Decimal, string) {
	if raw.IsBlank() {
		return decimal.Zero, "Plano Valor ausente ou vazio."
	}

	valorStr := strings.ReplaceAll(strings.TrimSpace(raw.String()), ",", "")
	valor, err := decimal.NewFromString(valorStr)
	if err != nil {
		return decimal.Zero, "Plano Valor inválido."
	}
	return valor, ""
}

// ValidateIsento interpreta o campo Isento como booleano. Ausente é false
// sem erro; tokens não reconhecidos são false com motivo.
func ValidateIsento(raw Cell) (bool, string) {
	if raw.IsBlank() {
		return false, ""
	}

	token := strings.ToLower(strings.TrimSpace(raw.String()))
	switch token {
	case "sim", "s", "yes", "true", "1":
		return true, ""
	case "não", "nao", "n", "no", "false", "0":
		return false, ""
	}

	return false, fmt.Sprintf("Valor de Isento inválido (%s).", token)
}

// EncodeString normaliza texto livre: trim, substituição de runas UTF-8
// malformadas e truncamento opcional. Ausente devolve o default do chamador,
// nunca um erro.
func EncodeString(raw Cell, maxLength int, defaultValue string) (string, string) {
	if raw.IsBlank() {
		return defaultValue, ""
	}

	value := strings.ToValidUTF8(strings.TrimSpace(raw.String()), "�")
	if value == "" {
		return defaultValue, ""
	}
	if maxLength > 0 {
		runes := []rune(value)
		if len(runes) > maxLength {
			value = string(runes[:maxLength])
		}
	}
	return value, ""
}
