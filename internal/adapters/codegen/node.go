package codegen

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/weld/internal/core/ports"
)

const NodeID graft.ID = "adapter.codegen"

func init() {
	graft.Register(graft.Node[ports.Generator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Generator, error) {
			return NewGenerator(), nil
		},
	})
}
