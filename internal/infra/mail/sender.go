package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendErrorReport avisa o operador que a importação terminou com linhas
// rejeitadas, anexando o relatório de erros quando disponível.
func (s *EmailSender) SendErrorReport(to, runID string, totalErros int, reportPath string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Importação %s concluída com %d erro(s)", runID, totalErros))
	m.SetBody("text/plain", fmt.Sprintf(
		"A importação %s terminou com %d registro(s) rejeitado(s).\n"+
			"Os motivos de cada linha estão na coluna 'Motivo do Erro' do relatório anexo.\n",
		runID, totalErros,
	))

	if reportPath != "" {
		m.Attach(reportPath)
	}

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
