package state

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/weld/internal/core/ports"
)

const NodeID graft.ID = "adapter.translation_store"

func init() {
	graft.Register(graft.Node[ports.TranslationStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.TranslationStore, error) {
			return NewStore(DefaultPath)
		},
	})
}
