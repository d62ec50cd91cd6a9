package handlers

import (
	"net/http"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/service"
)

func newMailerHandler(capture *[]byte) *MailerHandler {
	return &MailerHandler{
		Service: &service.MailerService{
			Host:      "smtp.example.com",
			Port:      "587",
			From:      "shop@example.com",
			StaffAddr: "staff@example.com",
			SendMail: func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
				*capture = msg
				return nil
			},
		},
	}
}

func TestCallbackPhoneOnly(t *testing.T) {
	e := newTestEcho()
	var sent []byte
	h := newMailerHandler(&sent)

	ctx, rec := postJSON(e, "/api/mailer/callback", map[string]string{
		"phone": "+380501112233",
	})
	require.NoError(t, h.Callback(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, string(sent), "+380501112233")
}

func TestCallbackWithName(t *testing.T) {
	e := newTestEcho()
	var sent []byte
	h := newMailerHandler(&sent)

	ctx, rec := postJSON(e, "/api/mailer/callback", map[string]string{
		"phone": "+380671234567",
		"name":  "Олена",
	})
	require.NoError(t, h.Callback(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, string(sent), "+380671234567")
	require.Contains(t, string(sent), "Олена")
}

func TestCallbackMissingPhone(t *testing.T) {
	e := newTestEcho()
	var sent []byte
	h := newMailerHandler(&sent)

	ctx, _ := postJSON(e, "/api/mailer/callback", map[string]string{
		"name": "Олена",
	})
	err := h.Callback(ctx)
	require.Error(t, err)
	require.Equal(t, apperr.Validation, apperr.KindOf(err))
	require.Nil(t, sent)
}
