package services

import "github.com/sirupsen/logrus"

// SMSService simulates OTP delivery. No gateway is wired up; codes
// are logged so an operator can relay them out-of-band during
// development.
type SMSService struct {
	log *logrus.Entry
}

// NewSMSService creates an SMSService.
func NewSMSService() *SMSService {
	return &SMSService{log: logrus.WithField("service", "sms")}
}

// SendOTP records a simulated delivery of a verification code.
func (s *SMSService) SendOTP(phone, code string) {
	s.log.WithFields(logrus.Fields{
		"phone": phone,
		"code":  code,
	}).Info("simulated OTP delivery")
}
