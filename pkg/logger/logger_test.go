package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_NivelExplicito(t *testing.T) {
	l := New(Config{Env: "production", Level: "warn"})
	assert.Equal(t, zerolog.WarnLevel, l.zl.GetLevel())
}

func TestNew_NivelDesconocidoUsaInfo(t *testing.T) {
	l := New(Config{Env: "production", Level: "gritando"})
	assert.Equal(t, zerolog.InfoLevel, l.zl.GetLevel())
}
