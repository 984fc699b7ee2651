package aiextract_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rosterscan/internal/aiextract"
	"rosterscan/internal/domain"
	"rosterscan/internal/port"
	"rosterscan/mocks"
)

func output(model string, n int) *port.ExtractOutput {
	out := &port.ExtractOutput{ModelUsed: model}
	for i := 0; i < n; i++ {
		out.Records = append(out.Records, domain.RawCandidate{Position: "QB", LastName: "Smith", Overall: 80})
	}
	return out
}

var input = port.ExtractInput{Text: "12 QB John Smith 85", ScreenType: domain.ScreenList}

func TestFallbackExtractor_FirstSucceeds(t *testing.T) {
	e1 := new(mocks.MockRecordExtractor)
	e2 := new(mocks.MockRecordExtractor)
	e1.On("ExtractRecords", mock.Anything, input).Return(output("claude", 1), nil)

	fe := aiextract.NewFallbackExtractor([]port.RecordExtractor{e1, e2}, []string{"claude", "gemini"}, nil)
	result, err := fe.ExtractRecords(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "claude", result.ModelUsed)
	e2.AssertNotCalled(t, "ExtractRecords", mock.Anything, mock.Anything)
}

func TestFallbackExtractor_FirstFails_SecondSucceeds(t *testing.T) {
	e1 := new(mocks.MockRecordExtractor)
	e2 := new(mocks.MockRecordExtractor)
	e1.On("ExtractRecords", mock.Anything, input).Return(nil, errors.New("generic error"))
	e2.On("ExtractRecords", mock.Anything, input).Return(output("gemini", 2), nil)

	fe := aiextract.NewFallbackExtractor([]port.RecordExtractor{e1, e2}, []string{"claude", "gemini"}, nil)
	result, err := fe.ExtractRecords(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "gemini", result.ModelUsed)
	assert.Len(t, result.Records, 2)
}

func TestFallbackExtractor_EmptyAnswerTriesNext(t *testing.T) {
	e1 := new(mocks.MockRecordExtractor)
	e2 := new(mocks.MockRecordExtractor)
	e1.On("ExtractRecords", mock.Anything, input).Return(output("claude", 0), nil)
	e2.On("ExtractRecords", mock.Anything, input).Return(output("openai", 1), nil)

	fe := aiextract.NewFallbackExtractor([]port.RecordExtractor{e1, e2}, []string{"claude", "openai"}, nil)
	result, err := fe.ExtractRecords(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "openai", result.ModelUsed)
}

func TestFallbackExtractor_NilAnswerCountsAsEmpty(t *testing.T) {
	e1 := new(mocks.MockRecordExtractor)
	e2 := new(mocks.MockRecordExtractor)
	e1.On("ExtractRecords", mock.Anything, input).Return(nil, nil)
	e2.On("ExtractRecords", mock.Anything, input).Return(nil, nil)

	fe := aiextract.NewFallbackExtractor([]port.RecordExtractor{e1, e2}, []string{"claude", "openai"}, nil)

	var result *port.ExtractOutput
	var err error
	require.NotPanics(t, func() { result, err = fe.ExtractRecords(context.Background(), input) })
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result.Records)
	e2.AssertCalled(t, "ExtractRecords", mock.Anything, input)
}

func TestFallbackExtractor_AllEmpty(t *testing.T) {
	e1 := new(mocks.MockRecordExtractor)
	e2 := new(mocks.MockRecordExtractor)
	e1.On("ExtractRecords", mock.Anything, input).Return(output("claude", 0), nil)
	e2.On("ExtractRecords", mock.Anything, input).Return(nil, errors.New("boom"))

	fe := aiextract.NewFallbackExtractor([]port.RecordExtractor{e1, e2}, []string{"claude", "openai"}, nil)
	result, err := fe.ExtractRecords(context.Background(), input)

	require.NoError(t, err)
	assert.Empty(t, result.Records)
}

func TestFallbackExtractor_RateLimitOpensCircuit(t *testing.T) {
	e1 := new(mocks.MockRecordExtractor)
	e2 := new(mocks.MockRecordExtractor)
	e1.On("ExtractRecords", mock.Anything, input).Return(nil, aiextract.NewRateLimitError("claude", errors.New("429"), 60)).Once()
	e2.On("ExtractRecords", mock.Anything, input).Return(output("gemini", 1), nil)

	fe := aiextract.NewFallbackExtractor([]port.RecordExtractor{e1, e2}, []string{"claude", "gemini"}, nil)

	_, err := fe.ExtractRecords(context.Background(), input)
	require.NoError(t, err)
	_, err = fe.ExtractRecords(context.Background(), input)
	require.NoError(t, err)

	e1.AssertNumberOfCalls(t, "ExtractRecords", 1)
	e2.AssertNumberOfCalls(t, "ExtractRecords", 2)
}

func TestFallbackExtractor_AllRateLimited(t *testing.T) {
	e1 := new(mocks.MockRecordExtractor)
	e2 := new(mocks.MockRecordExtractor)
	e1.On("ExtractRecords", mock.Anything, input).Return(nil, aiextract.NewRateLimitError("claude", errors.New("429"), 30))
	e2.On("ExtractRecords", mock.Anything, input).Return(nil, aiextract.NewRateLimitError("gemini", errors.New("429"), 60))

	fe := aiextract.NewFallbackExtractor([]port.RecordExtractor{e1, e2}, []string{"claude", "gemini"}, nil)
	_, err := fe.ExtractRecords(context.Background(), input)

	var rlErr *aiextract.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "all", rlErr.Provider)
}

func TestFallbackExtractor_AllFail(t *testing.T) {
	e1 := new(mocks.MockRecordExtractor)
	e1.On("ExtractRecords", mock.Anything, input).Return(nil, errors.New("bad gateway"))

	fe := aiextract.NewFallbackExtractor([]port.RecordExtractor{e1}, []string{"claude"}, nil)
	_, err := fe.ExtractRecords(context.Background(), input)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "all providers failed")
}
