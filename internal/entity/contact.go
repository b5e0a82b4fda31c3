package entity

// Tipos de contato, com ids fixos em tbl_tipos_contato.
type ContactType int

const (
	ContactTelefone ContactType = 1
	ContactCelular  ContactType = 2
	ContactEmail    ContactType = 3
)

func (t ContactType) Label() string {
	switch t {
	case ContactTelefone:
		return "Telefone"
	case ContactCelular:
		return "Celular"
	case ContactEmail:
		return "E-Mail"
	}
	return "Desconhecido"
}

// Entidade: Contact
// Unicidade é (cliente, tipo, contato); duplicados são ignorados no insert,
// nunca tratados como erro.
type Contact struct {
	ID        int64
	ClienteID int64
	Tipo      ContactType
	Contato   string
}
