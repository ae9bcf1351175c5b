package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactEmail(t *testing.T) {
	assert.Equal(t, "jo***@example.com", RedactEmail("john.doe@example.com"))
	assert.Equal(t, "***@example.com", RedactEmail("ab@example.com"))
	assert.Equal(t, "***@***", RedactEmail("not-an-email"))
}

func TestRedactPhone(t *testing.T) {
	assert.Equal(t, "*********56", RedactPhone("+4670123456"))
	assert.Equal(t, "**", RedactPhone("1"))
}

func TestRedactPIIValue(t *testing.T) {
	assert.Equal(t, "cu***@example.com", redactPIIValue("contact_email", "customer@example.com"))
	assert.Equal(t, "********90", redactPIIValue("phone", "+1234567890"))
	// Embedded email inside a generic field still gets masked
	assert.Equal(t, "lookup for cu***@example.com failed",
		redactPIIValue("detail", "lookup for customer@example.com failed"))
}
