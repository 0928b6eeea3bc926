package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog/log"

	"treehole/internal/config"
)

// Sender 验证邮件发送器
// SMTP 配置不全时 Enabled 为 false，所有发送调用直接跳过
type Sender struct {
	host     string
	port     string
	username string
	password string
	from     string
	Enabled  bool
}

// NewSender 创建邮件发送器
func NewSender(cfg *config.MailConfig) *Sender {
	enabled := cfg.Host != "" && cfg.Port != "" && cfg.Username != "" && cfg.Password != "" && cfg.From != ""
	if !enabled {
		log.Warn().Msg("mail sender disabled: incomplete SMTP configuration")
	}
	return &Sender{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		Enabled:  enabled,
	}
}

// SendVerificationCode 发送邮箱验证码，异步发送不阻塞注册流程
func (s *Sender) SendVerificationCode(to, code string) {
	body := fmt.Sprintf("您的树洞邮箱验证码是：%s", code)
	s.sendAsync([]string{to}, "[树洞] 请验证您的邮箱", body)
}

func (s *Sender) sendAsync(to []string, subject, body string) {
	if !s.Enabled {
		return
	}

	go func() {
		auth := smtp.PlainAuth("", s.username, s.password, s.host)
		addr := fmt.Sprintf("%s:%s", s.host, s.port)

		mime := "MIME-version: 1.0;\nContent-Type: text/plain; charset=\"UTF-8\";\n\n"
		msg := []byte(fmt.Sprintf("To: %s\r\n"+
			"From: 树洞 <%s>\r\n"+
			"Subject: %s\r\n"+
			"%s\r\n%s", strings.Join(to, ","), s.from, subject, mime, body))

		if err := smtp.SendMail(addr, auth, s.from, to, msg); err != nil {
			log.Error().Err(err).Strs("to", to).Msg("failed to send email")
		} else {
			log.Info().Strs("to", to).Str("subject", subject).Msg("email sent")
		}
	}()
}
