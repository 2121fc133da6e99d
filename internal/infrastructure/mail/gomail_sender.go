package mail

import (
	"context"
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"

	"github.com/nicklcsdev/inventario-lite/internal/application/ports"
	"github.com/nicklcsdev/inventario-lite/pkg/config"
)

var _ ports.ReporteMailer = (*GomailSender)(nil)

// GomailSender implementa ports.ReporteMailer sobre SMTP usando gomail.
type GomailSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewGomailSender construye el remitente. Devuelve error si falta el host SMTP.
func NewGomailSender(cfg config.SMTPConfig) (*GomailSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("mail: SMTP_HOST no configurado")
	}
	return &GomailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}, nil
}

// EnviarReporte envía el PDF adjunto al destinatario.
// gomail no acepta context; se respeta la cancelación verificando ctx antes de marcar.
func (s *GomailSender) EnviarReporte(ctx context.Context, destinatario, asunto string, pdf []byte, nombreArchivo string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", destinatario)
	m.SetHeader("Subject", asunto)
	m.SetBody("text/plain", "Adjunto encontrará el reporte de inventario solicitado.\n\nNICKLCSDEV - LITE THINKING")
	m.Attach(nombreArchivo, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdf)
		return err
	}))
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("mail: enviar reporte: %w", err)
	}
	return nil
}
