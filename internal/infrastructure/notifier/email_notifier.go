package notifier

import (
	"context"
	"fmt"
	htmltemplate "html/template"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
	"seller-panel.backend/internal/config"
	"seller-panel.backend/pkg/logger"
)

const otpSubject = "Your Seller Panel OTP"

var otpTemplate = htmltemplate.Must(htmltemplate.New("otp").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 480px; margin: auto; background-color: #ffffff; padding: 24px; border-radius: 8px;">
		<p>Hello {{.Name}},</p>
		<p>Your one-time password is:</p>
		<p style="font-size: 28px; font-weight: bold; letter-spacing: 6px;">{{.Code}}</p>
		<p>This code is valid for {{.Minutes}} minutes. Do not share it with anyone.</p>
	</div>
</body>
</html>`))

type otpView struct {
	Name    string
	Code    string
	Minutes int
}

var sendMail = func(ctx context.Context, client *mail.Client, msg *mail.Msg) error {
	return client.DialAndSendWithContext(ctx, msg)
}

// EmailNotifier delivers OTP codes over SMTP
type EmailNotifier struct {
	cfg config.SMTPConfig
}

// NewEmailNotifier creates an SMTP notifier
func NewEmailNotifier(cfg config.SMTPConfig) *EmailNotifier {
	return &EmailNotifier{cfg: cfg}
}

// SendOtp mails code to the seller
func (n *EmailNotifier) SendOtp(ctx context.Context, to, fullName, code string, validFor int) error {
	msg, err := buildOtpMessage(n.cfg.From, to, fullName, code, validFor)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(n.cfg.Host,
		mail.WithPort(n.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(n.cfg.Username),
		mail.WithPassword(n.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	if err := sendMail(ctx, client, msg); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}
	logger.Info(ctx, "OTP email sent", zap.String("to", to))
	return nil
}

func buildOtpMessage(from, to, fullName, code string, validFor int) (*mail.Msg, error) {
	if fullName == "" {
		fullName = "Seller"
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(otpSubject)

	view := otpView{Name: fullName, Code: code, Minutes: validFor}
	if err := msg.SetBodyHTMLTemplate(otpTemplate, view); err != nil {
		return nil, fmt.Errorf("failed to render otp email: %w", err)
	}
	msg.AddAlternativeString(mail.TypeTextPlain, fmt.Sprintf("Your OTP is %s. It expires in %d minutes.", code, validFor))
	return msg, nil
}

// LogNotifier writes OTP codes to the log instead of sending them; used when SMTP is not configured
type LogNotifier struct{}

func (LogNotifier) SendOtp(ctx context.Context, to, _, code string, validFor int) error {
	logger.Warn(ctx, "SMTP not configured, OTP logged instead of emailed",
		zap.String("to", to),
		zap.String("otp", code),
		zap.Int("valid_minutes", validFor),
	)
	return nil
}
