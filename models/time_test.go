package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestampRFC3339(t *testing.T) {
	parsed, err := ParseTimestamp(json.RawMessage(`"2026-01-05T12:30:00Z"`))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 5, 12, 30, 0, 0, time.UTC), parsed.UTC())
}

func TestParseTimestampDateOnly(t *testing.T) {
	parsed, err := ParseTimestamp(json.RawMessage(`"2026-01-05"`))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), parsed.UTC())
}

func TestParseTimestampUnixSeconds(t *testing.T) {
	parsed, err := ParseTimestamp(json.RawMessage(`1767614400`))
	require.NoError(t, err)
	assert.Equal(t, int64(1767614400), parsed.Unix())
}

func TestParseTimestampUnixMillis(t *testing.T) {
	parsed, err := ParseTimestamp(json.RawMessage(`1767614400000`))
	require.NoError(t, err)
	assert.Equal(t, int64(1767614400), parsed.Unix())
}

func TestParseTimestampObject(t *testing.T) {
	parsed, err := ParseTimestamp(json.RawMessage(`{"seconds":1767614400,"nanoseconds":500000000}`))
	require.NoError(t, err)
	assert.Equal(t, int64(1767614400), parsed.Unix())
	assert.Equal(t, 500000000, parsed.Nanosecond())
}

func TestParseTimestampRejects(t *testing.T) {
	for _, raw := range []string{`null`, `"not a date"`, `{}`, `""`} {
		_, err := ParseTimestamp(json.RawMessage(raw))
		assert.Error(t, err, raw)
	}
}

func TestFlexTimeUnmarshalCoercesGarbage(t *testing.T) {
	var ft FlexTime
	before := time.Now()
	require.NoError(t, json.Unmarshal([]byte(`"garbage"`), &ft))
	after := time.Now()

	// Bad input never fails document decode, it coerces to now.
	assert.False(t, ft.Time.Before(before))
	assert.False(t, ft.Time.After(after))
}

func TestFlexTimeRoundTrip(t *testing.T) {
	original := NewFlexTime(time.Date(2026, time.March, 1, 9, 15, 0, 0, time.UTC))
	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded FlexTime
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, original.Time.Equal(decoded.Time))
}

func TestTenantNormalizationInDocument(t *testing.T) {
	// Legacy documents may omit nested arrays entirely.
	raw := `{
		"id": "b1",
		"name": "Sunrise",
		"unitsCount": 1,
		"units": [
			{"id": "u1", "name": "Unit 1", "tenant": {"id": "t1", "name": "Asha", "contactNo": "9876543210", "active": true}}
		]
	}`
	var b Building
	require.NoError(t, json.Unmarshal([]byte(raw), &b))
	NormalizeBuilding(&b)

	require.Len(t, b.Units, 1)
	assert.NotNil(t, b.Units[0].PreviousTenants)
	require.NotNil(t, b.Units[0].Tenant)
	assert.NotNil(t, b.Units[0].Tenant.RentPayments)
	assert.NotNil(t, b.Units[0].Tenant.ElectricityRecords)
}

func TestCloneIsDeep(t *testing.T) {
	b := Building{
		ID: "b1",
		Units: []Unit{
			{
				ID: "u1",
				Tenant: &Tenant{
					ID:           "t1",
					RentPayments: []RentPayment{{ID: "p1", Amount: 5000}},
				},
			},
		},
	}

	clone := b.Clone()
	clone.Units[0].Tenant.RentPayments[0].Amount = 1
	clone.Units[0].Tenant.Name = "changed"

	assert.Equal(t, 5000.0, b.Units[0].Tenant.RentPayments[0].Amount)
	assert.Empty(t, b.Units[0].Tenant.Name)
}
