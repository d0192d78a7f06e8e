package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlexString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"string value", `"7"`, "7"},
		{"number value", `7`, "7"},
		{"float value", `1.5`, "1.5"},
		{"empty string", `""`, ""},
		{"null", `null`, ""},
		{"text", `"undefined"`, "undefined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexString
			err := json.Unmarshal([]byte(tt.input), &f)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, f.String())
		})
	}

	var f FlexString
	assert.Error(t, json.Unmarshal([]byte(`{"nested":true}`), &f))
}

func TestFlexString_Int(t *testing.T) {
	n, ok := FlexString("4").Int()
	assert.True(t, ok)
	assert.Equal(t, 4, n)

	n, ok = FlexString(" 12 ").Int()
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = FlexString("").Int()
	assert.False(t, ok)
	_, ok = FlexString("abc").Int()
	assert.False(t, ok)
	_, ok = FlexString("1.5").Int()
	assert.False(t, ok)
}

func TestFlexString_RoundTrip(t *testing.T) {
	payload := struct {
		QuestionID FlexString `json:"questionId"`
	}{}

	assert.NoError(t, json.Unmarshal([]byte(`{"questionId": 3}`), &payload))
	assert.Equal(t, "3", payload.QuestionID.String())

	out, err := json.Marshal(payload)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"questionId":"3"}`, string(out))
}
