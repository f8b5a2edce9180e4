// Package pipeline contiene las reglas puras de la máquina de etapas del
// pipeline comercial (servicio de dominio, sin dependencias de persistencia).
package pipeline

import "github.com/jhoicas/Mantenix-api/internal/domain/entity"

// order posición de cada etapa en el flujo lineal. Lost no participa del
// orden: es salida lateral desde cualquier etapa no terminal.
var order = map[string]int{
	entity.StageRequest:   0,
	entity.StageSurvey:    1,
	entity.StageQuotation: 2,
	entity.StageWon:       3,
}

// CanAdvance indica si la transición from→to es el paso siguiente del flujo
// lineal. No hay retrocesos ni saltos.
func CanAdvance(from, to string) bool {
	fromPos, okFrom := order[from]
	toPos, okTo := order[to]
	if !okFrom || !okTo {
		return false
	}
	return toPos == fromPos+1
}

// CanMarkLost indica si un caso en la etapa dada puede marcarse como perdido.
func CanMarkLost(stage string) bool {
	return stage != entity.StageWon && stage != entity.StageLost
}

// Progress devuelve el avance porcentual de una etapa (proyección de lectura
// para dashboards).
func Progress(stage string) int {
	switch stage {
	case entity.StageRequest:
		return 25
	case entity.StageSurvey:
		return 50
	case entity.StageQuotation:
		return 75
	case entity.StageWon:
		return 100
	default:
		return 0
	}
}
