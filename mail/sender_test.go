package mail

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestPasswordResetTemplate(t *testing.T) {
	var body bytes.Buffer
	require.NoError(t, passwordResetTemplate.Execute(&body, PasswordResetData{
		Name: "Ada",
		Link: "http://localhost:3000/reset-password?token=abc",
	}))

	assert.Contains(t, body.String(), "Hi Ada,")
	assert.Contains(t, body.String(), `href="http://localhost:3000/reset-password?token=abc"`)
}

func TestPasswordResetTemplateWithoutName(t *testing.T) {
	var body bytes.Buffer
	require.NoError(t, passwordResetTemplate.Execute(&body, PasswordResetData{Link: "x"}))
	assert.Contains(t, body.String(), "Hi there,")
}

func TestLogSender(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sender := NewLogSender(zap.New(core))

	require.NoError(t, sender.SendPasswordReset(context.Background(), "ada@example.com", "Ada", "link"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "ada@example.com", entry.ContextMap()["to"])
	assert.Equal(t, "link", entry.ContextMap()["link"])
}
