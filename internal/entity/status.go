package entity

// Status de contrato. tbl_status_contrato é pré-carregada; a resolução por
// rótulo nunca falha a linha: rótulos desconhecidos caem no status padrão.
const (
	StatusAtivo              int64 = 1
	StatusVelocidadeReduzida int64 = 2
	StatusCancelado          int64 = 3
)

// DefaultStatusID é usado quando o rótulo de status da planilha não resolve.
const DefaultStatusID = StatusVelocidadeReduzida
