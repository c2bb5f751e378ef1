package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalJSON_DateOnly(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-01-01"`), &d))
	assert.Equal(t, NewDate(2024, time.January, 1), d)
}

func TestDate_UnmarshalJSON_Timestamp(t *testing.T) {
	// The review screen historically sent full timestamps.
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-01-05T00:00:00.000Z"`), &d))
	assert.Equal(t, NewDate(2024, time.January, 5), d)
}

func TestDate_UnmarshalJSON_NullAndEmpty(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())
}

func TestDate_UnmarshalJSON_Invalid(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"01/02/2024"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`42`), &d))
}

func TestDate_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(NewDate(2024, time.January, 1))
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-01"`, string(out))

	out, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(out))
}

func TestLetter_MarshalJSON_NullSentDate(t *testing.T) {
	addr := "HQ"
	ld := NewDate(2024, time.January, 1)
	l := Letter{ID: 1, LetterDate: &ld, Address: &addr}

	out, err := json.Marshal(l)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"sent_date":null`)
	assert.Contains(t, string(out), `"letter_date":"2024-01-01"`)
}
