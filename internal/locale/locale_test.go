package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-petcare/internal/appointment"
	"github.com/tartampluch/go-petcare/internal/config"
	"github.com/tartampluch/go-petcare/internal/locale"
)

func TestTranslator_Languages(t *testing.T) {
	tr := locale.New("")
	assert.Equal(t, config.SupportedLanguages, tr.Languages())
	assert.Equal(t, config.DefaultLanguage, tr.Language())

	tr.SetLanguage("es")
	assert.Equal(t, "es", tr.Language())

	tr.SetLanguage("klingon")
	assert.Equal(t, config.DefaultLanguage, tr.Language(), "unknown languages fall back to the default")
}

func TestTranslator_Msg(t *testing.T) {
	tr := locale.New("es")
	assert.Equal(t, "Citas", tr.Msg(config.TKeyWinAppointments))
	assert.Equal(t, "no_such_key", tr.Msg("no_such_key"), "missing keys return the key")
}

func TestTranslator_ReminderText(t *testing.T) {
	a := appointment.Appointment{Reason: "Vacuna", Provider: "Dr. Rodrigo Pollo", Time: "8:00 AM"}

	tests := []struct {
		lang      string
		wantTitle string
		wantBody  string
	}{
		{"en", "Appointment reminder 🐾", "Vacuna with Dr. Rodrigo Pollo - 8:00 AM"},
		{"es", "Recordatorio de cita 🐾", "Vacuna con Dr. Rodrigo Pollo - 8:00 AM"},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			title, body := locale.New(tt.lang).ReminderText(a)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestTranslator_MsgDataFallback(t *testing.T) {
	tr := locale.New("en")
	got := tr.MsgData("missing_template", nil, config.FallbackTrayNext, "Checkup", "2025-03-10", "9:00 AM")
	assert.Equal(t, "Next: Checkup on 2025-03-10 9:00 AM", got)
}
