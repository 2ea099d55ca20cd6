package mailer

import (
	"crypto/tls"

	"hospital-service/internal/app/config"

	"gopkg.in/gomail.v2"
)

func NewSMTPClient(driverConfig *config.DriverConfig) *gomail.Dialer {
	dialer := gomail.NewDialer(
		driverConfig.SMTP.Host,
		driverConfig.SMTP.Port,
		driverConfig.SMTP.Username,
		driverConfig.SMTP.Password,
	)
	dialer.TLSConfig = &tls.Config{ServerName: driverConfig.SMTP.Host}
	return dialer
}
