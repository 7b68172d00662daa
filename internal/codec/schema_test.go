package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSchema_AcceptsWellFormedPayloads(t *testing.T) {
	payloads := []string{
		`[]`,
		`[{"id": 1, "title": "x", "desc": "", "date": "2024-03-15T00:00:00.000Z"}]`,
		`[{"id": 1700000000000, "title": "a", "desc": "b", "date": "1999-01-01T23:59:59.999Z"},
		  {"id": 2, "title": "c", "desc": "d", "date": "2024-02-29T00:00:00.000Z"}]`,
	}

	for _, p := range payloads {
		assert.NoError(t, validateSchema([]byte(p)), "payload: %s", p)
	}
}

func TestValidateSchema_RejectsShapeViolations(t *testing.T) {
	payloads := []string{
		`{"events": []}`,
		`[{"id": 1.5, "title": "x", "desc": "", "date": "2024-03-15T00:00:00.000Z"}]`,
		`[{"id": 1, "title": 2, "desc": "", "date": "2024-03-15T00:00:00.000Z"}]`,
		`[{"id": 1, "title": "x", "desc": "", "date": "not a date"}]`,
		`[{"id": 1, "title": "x", "desc": "", "date": "24-03-15T00:00:00.000Z"}]`,
	}

	for _, p := range payloads {
		assert.Error(t, validateSchema([]byte(p)), "payload: %s", p)
	}
}
