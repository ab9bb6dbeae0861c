package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventregistration/internal/domain"
)

func TestTemplateRenderer_RegistrationCreated(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	data := &domain.RegistrationCreatedEmailData{
		Name:      "Ada <Lovelace>",
		Email:     "ada@example.com",
		Title:     "Go Meetup",
		StartDate: "2026-11-02",
		StartTime: "18:00",
		EndDate:   "2026-11-02",
		EndTime:   "21:00",
	}
	subject, html, text, err := r.Render("registration_created", data)
	require.NoError(t, err)

	assert.Equal(t, "New event registration: Go Meetup", subject)
	assert.Contains(t, html, "Ada &lt;Lovelace&gt;")
	assert.Contains(t, text, "Ada <Lovelace>")
	assert.Contains(t, text, "2026-11-02 18:00")
	assert.Contains(t, text, "2026-11-02 21:00")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	_, _, _, err = r.Render("missing", nil)
	require.Error(t, err)
}
