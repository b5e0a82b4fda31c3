package usecase

import "strings"

// ReportSink acumula as duas sequências de saída da execução: linhas aceitas
// (motivo vazio) e rejeitadas (motivos juntados com "; ").
type ReportSink struct {
	accepted []ReportRow
	rejected []ReportRow
}

func NewReportSink() *ReportSink {
	return &ReportSink{}
}

func (s *ReportSink) Accept(rec RawRecord) {
	s.accepted = append(s.accepted, ReportRow{Record: rec, Motivo: ""})
}

func (s *ReportSink) Reject(rec RawRecord, reasons []string) {
	s.rejected = append(s.rejected, ReportRow{
		Record: rec,
		Motivo: strings.Join(reasons, "; "),
	})
}

func (s *ReportSink) Accepted() []ReportRow { return s.accepted }
func (s *ReportSink) Rejected() []ReportRow { return s.rejected }
