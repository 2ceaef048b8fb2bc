package llm

import (
	"context"
	"errors"
	"testing"

	"lesson-notes-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectJoinsChunks(t *testing.T) {
	got, err := Collect(NewMockProvider("a", "b", "c").Stream(context.Background(), Request{}))

	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestCollectReturnsPartialTextOnError(t *testing.T) {
	boom := errors.New("boom")
	p := NewMockProvider("a", "b", "c").FailAfter(2, boom)

	got, err := Collect(p.Stream(context.Background(), Request{}))

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "ab", got)
}

func TestMockRecordsRequests(t *testing.T) {
	p := NewMockProvider("x")
	req := Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "hi"}}}

	_, err := Collect(p.Stream(context.Background(), req))

	require.NoError(t, err)
	assert.Equal(t, []Request{req}, p.Requests())
}

func TestApplyOptions(t *testing.T) {
	opts := ApplyOptions(Options{Temperature: 0.7, MaxTokens: 100}, WithModel("m"), WithMaxTokens(50))

	assert.Equal(t, Options{Temperature: 0.7, MaxTokens: 50, Model: "m"}, opts)
}

func TestLoggingProviderPassesChunksThrough(t *testing.T) {
	p := WithLogging(NewMockProvider("one", "two"), logger.NewNopLogger())

	got, err := Collect(p.Stream(context.Background(), Request{}))

	require.NoError(t, err)
	assert.Equal(t, "onetwo", got)
	assert.Equal(t, "mock", p.ModelID())
}
