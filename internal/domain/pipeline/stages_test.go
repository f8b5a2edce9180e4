package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
)

// El flujo lineal solo admite el paso inmediato siguiente.
func TestCanAdvance_PasosValidos(t *testing.T) {
	assert.True(t, CanAdvance(entity.StageRequest, entity.StageSurvey))
	assert.True(t, CanAdvance(entity.StageSurvey, entity.StageQuotation))
	assert.True(t, CanAdvance(entity.StageQuotation, entity.StageWon))
}

// No hay saltos ni retrocesos: Request→Won, Survey→Request, etc. se rechazan.
func TestCanAdvance_SaltosYRetrocesos(t *testing.T) {
	assert.False(t, CanAdvance(entity.StageRequest, entity.StageQuotation))
	assert.False(t, CanAdvance(entity.StageRequest, entity.StageWon))
	assert.False(t, CanAdvance(entity.StageSurvey, entity.StageRequest))
	assert.False(t, CanAdvance(entity.StageWon, entity.StageQuotation))
	assert.False(t, CanAdvance(entity.StageLost, entity.StageSurvey))
}

// Lost es alcanzable desde cualquier etapa no terminal.
func TestCanMarkLost(t *testing.T) {
	assert.True(t, CanMarkLost(entity.StageRequest))
	assert.True(t, CanMarkLost(entity.StageSurvey))
	assert.True(t, CanMarkLost(entity.StageQuotation))
	assert.False(t, CanMarkLost(entity.StageWon))
	assert.False(t, CanMarkLost(entity.StageLost))
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 25, Progress(entity.StageRequest))
	assert.Equal(t, 100, Progress(entity.StageWon))
	assert.Equal(t, 0, Progress(entity.StageLost))
}
