package seed

import (
	"testing"

	"github.com/nebusis/controlcore-api/internal/domain/entities"
)

func TestChecklistItemsCountAndCodes(t *testing.T) {
	items := ChecklistItems()
	if len(items) != 17 {
		t.Fatalf("items = %d, want 17", len(items))
	}

	codes := map[string]bool{}
	for i, item := range items {
		if codes[item.Code] {
			t.Errorf("código duplicado: %s", item.Code)
		}
		codes[item.Code] = true

		if item.StandardNumber != i+1 {
			t.Errorf("standardNumber del ítem %s = %d, want %d", item.Code, item.StandardNumber, i+1)
		}
		if item.Requirement == "" || item.VerificationQuestion == "" {
			t.Errorf("ítem %s con texto vacío", item.Code)
		}
		if !entities.IsValidComponentType(item.ComponentType) {
			t.Errorf("ítem %s con componente inválido: %s", item.Code, item.ComponentType)
		}
	}
	if !codes["1.1"] || !codes["5.2"] {
		t.Error("faltan los códigos extremos 1.1 y 5.2")
	}
}

func TestChecklistItemsPerComponent(t *testing.T) {
	want := map[string]int{
		entities.ComponentAmbienteControl:         5,
		entities.ComponentEvaluacionRiesgos:       4,
		entities.ComponentActividadesControl:      3,
		entities.ComponentInformacionComunicacion: 3,
		entities.ComponentSupervision:             2,
	}

	got := map[string]int{}
	for _, item := range ChecklistItems() {
		got[item.ComponentType]++
	}

	for component, count := range want {
		if got[component] != count {
			t.Errorf("%s: %d ítems, want %d", component, got[component], count)
		}
	}
}
