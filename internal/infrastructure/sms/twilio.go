// Package sms sends text messages through a Twilio-compatible REST gateway.
// Messages are sent once; failures are returned to the caller and never
// retried or queued.
package sms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"immunization-tracker/config"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotConfigured = errors.New("sms transport is not configured")
	ErrEmptyMessage  = errors.New("message body is empty")
	ErrNoRecipient   = errors.New("recipient phone number is empty")
)

// Sender delivers a single text message and returns the gateway's message id.
type Sender interface {
	Send(ctx context.Context, to, body string) (string, error)
}

type messageResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type TwilioSender struct {
	client *resty.Client
	cfg    config.SMSConfig
	log    *logrus.Logger
}

func NewTwilioSender(cfg config.SMSConfig, log *logrus.Logger) *TwilioSender {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetBasicAuth(cfg.AccountSID, cfg.AuthToken).
		SetHeader("Accept", "application/json")

	return &TwilioSender{
		client: client,
		cfg:    cfg,
		log:    log,
	}
}

// Configured reports whether credentials and a sender number are present.
func (s *TwilioSender) Configured() bool {
	return s.cfg.BaseURL != "" && s.cfg.AccountSID != "" && s.cfg.AuthToken != "" && s.cfg.From != ""
}

func (s *TwilioSender) Send(ctx context.Context, to, body string) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(to) == "" {
		return "", ErrNoRecipient
	}
	if strings.TrimSpace(body) == "" {
		return "", ErrEmptyMessage
	}

	var result messageResponse
	var failure apiError
	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"To":   to,
			"From": s.cfg.From,
			"Body": body,
		}).
		SetResult(&result).
		SetError(&failure).
		Post(fmt.Sprintf("/2010-04-01/Accounts/%s/Messages.json", s.cfg.AccountSID))
	if err != nil {
		s.log.Warnf("SMS gateway call failed: %+v", err)
		return "", fmt.Errorf("send sms: %w", err)
	}

	if resp.IsError() {
		s.log.WithFields(logrus.Fields{
			"status": resp.StatusCode(),
			"code":   failure.Code,
		}).Warn("SMS gateway rejected message")
		if failure.Message != "" {
			return "", fmt.Errorf("send sms: gateway returned %d: %s", resp.StatusCode(), failure.Message)
		}
		return "", fmt.Errorf("send sms: gateway returned %d", resp.StatusCode())
	}

	s.log.WithFields(logrus.Fields{
		"sid":    result.SID,
		"status": result.Status,
	}).Info("SMS accepted by gateway")

	return result.SID, nil
}
