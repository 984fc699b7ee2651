package aiextract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterscan/internal/aiextract"
	"rosterscan/internal/domain"
)

func TestDecodeRecords_Valid(t *testing.T) {
	text := `{"records":[
		{"jersey":12,"position":"qb","first_name":"John","last_name":"Smith","overall":85,"attributes":{"SPD":88,"suffix":"Jr."}},
		{"position":"WR","last_name":"Ray","overall":80}
	]}`

	got, err := aiextract.DecodeRecords(text)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 12, got[0].Jersey)
	assert.True(t, got[0].HasJersey)
	assert.Equal(t, "QB", got[0].Position)
	assert.Equal(t, "Jr.", got[0].Suffix)
	assert.Equal(t, domain.Attributes{"SPD": 88, "OVR": 85}, got[0].Attributes)

	assert.False(t, got[1].HasJersey)
	assert.Equal(t, "", got[1].FirstName)
	assert.Equal(t, domain.Attributes{"OVR": 80}, got[1].Attributes)
}

func TestDecodeRecords_CodeFence(t *testing.T) {
	text := "```json\n{\"records\":[{\"position\":\"QB\",\"last_name\":\"Smith\",\"overall\":85}]}\n```"

	got, err := aiextract.DecodeRecords(text)

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestDecodeRecords_Empty(t *testing.T) {
	got, err := aiextract.DecodeRecords(`{"records":[]}`)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeRecords_SchemaViolations(t *testing.T) {
	tests := map[string]string{
		"not json":           `here are your players`,
		"missing records":    `{"players":[]}`,
		"missing last name":  `{"records":[{"position":"QB","overall":85}]}`,
		"string overall":     `{"records":[{"position":"QB","last_name":"Smith","overall":"85"}]}`,
		"string attribute":   `{"records":[{"position":"QB","last_name":"Smith","overall":85,"attributes":{"SPD":"fast"}}]}`,
		"unknown field":      `{"records":[{"position":"QB","last_name":"Smith","overall":85,"team":"X"}]}`,
		"fractional overall": `{"records":[{"position":"QB","last_name":"Smith","overall":85.5}]}`,
	}

	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := aiextract.DecodeRecords(text)
			assert.ErrorIs(t, err, aiextract.ErrInvalidOutput)
		})
	}
}

func TestBuildRosterPrompt(t *testing.T) {
	p := aiextract.BuildRosterPrompt(domain.ScreenDetail, "Cai WOODS")

	assert.Contains(t, p, "single-player detail screen")
	assert.Contains(t, p, `"records"`)
	assert.Contains(t, p, "Cai WOODS")
}
