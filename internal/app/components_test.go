package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/chroma/internal/adapters/logger"
	"go.trai.ch/chroma/internal/app"
	"go.trai.ch/chroma/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestComponents_ConfigureLogging(t *testing.T) {
	lg := logger.New()
	c := &app.Components{Logger: lg}

	assert.NotPanics(t, func() { c.ConfigureLogging(true, true) })
}

func TestComponents_ConfigureLoggingIgnoresPlainLoggers(t *testing.T) {
	c := &app.Components{Logger: mocks.NewMockLogger(gomock.NewController(t))}

	assert.NotPanics(t, func() { c.ConfigureLogging(true, true) })
}
