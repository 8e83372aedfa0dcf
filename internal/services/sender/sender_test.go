package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/opportunity-board/internal/lib/smtp"
	"github.com/magabrotheeeer/opportunity-board/internal/models"
)

type ClientMock struct {
	mock.Mock
	buf bytes.Buffer
}

func (m *ClientMock) Mail(from string) error { return m.Called(from).Error(0) }
func (m *ClientMock) Rcpt(to string) error   { return m.Called(to).Error(0) }
func (m *ClientMock) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Error(0) != nil {
		return nil, args.Error(0)
	}
	return nopWriteCloser{&m.buf}, nil
}
func (m *ClientMock) Quit() error  { return m.Called().Error(0) }
func (m *ClientMock) Close() error { return m.Called().Error(0) }

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

type TransportMock struct {
	mock.Mock
	client smtp.Client
}

func (m *TransportMock) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Error(0) != nil {
		return nil, args.Error(0)
	}
	return m.client, nil
}
func (m *TransportMock) GetSMTPUser() string {
	return m.Called().String(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSenderService_SendDeadlineReminder(t *testing.T) {
	reminder := models.ReminderInfo{
		Email:    "alice@example.com",
		Name:     "Alice",
		Title:    "Backend Developer",
		Deadline: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	body, err := json.Marshal(reminder)
	require.NoError(t, err)

	client := new(ClientMock)
	client.On("Mail", "noreply@example.com").Return(nil).Once()
	client.On("Rcpt", "alice@example.com").Return(nil).Once()
	client.On("Data").Return(nil).Once()
	client.On("Quit").Return(nil).Once()

	transport := &TransportMock{client: client}
	transport.On("Connect").Return(nil).Once()
	transport.On("GetSMTPUser").Return("noreply@example.com").Once()

	service := NewSenderService(transport, newNoopLogger())
	err = service.SendDeadlineReminder(body)

	require.NoError(t, err)
	assert.Contains(t, client.buf.String(), "Backend Developer")
	assert.Contains(t, client.buf.String(), "31-12-2026")
	client.AssertExpectations(t)
	transport.AssertExpectations(t)
}

func TestSenderService_SendDeadlineReminder_BadMessage(t *testing.T) {
	transport := &TransportMock{}

	service := NewSenderService(transport, newNoopLogger())
	err := service.SendDeadlineReminder([]byte("not-json"))

	assert.Error(t, err)
	transport.AssertNotCalled(t, "Connect")
}

func TestSenderService_SendVerificationCode(t *testing.T) {
	client := new(ClientMock)
	client.On("Mail", "noreply@example.com").Return(nil).Once()
	client.On("Rcpt", "alice@example.com").Return(nil).Once()
	client.On("Data").Return(nil).Once()
	client.On("Quit").Return(nil).Once()

	transport := &TransportMock{client: client}
	transport.On("Connect").Return(nil).Once()
	transport.On("GetSMTPUser").Return("noreply@example.com").Once()

	service := NewSenderService(transport, newNoopLogger())
	err := service.SendVerificationCode("alice@example.com", "123456")

	require.NoError(t, err)
	assert.Contains(t, client.buf.String(), "123456")
	client.AssertExpectations(t)
}

func TestSenderService_ConnectError(t *testing.T) {
	transport := &TransportMock{}
	transport.On("Connect").Return(errors.New("dial error")).Once()

	service := NewSenderService(transport, newNoopLogger())
	err := service.SendVerificationCode("alice@example.com", "123456")

	assert.Error(t, err)
}
