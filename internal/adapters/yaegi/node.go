package yaegi

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/weld/internal/core/ports"
)

const NodeID graft.ID = "adapter.yaegi"

func init() {
	graft.Register(graft.Node[ports.ArtifactLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ArtifactLoader, error) {
			return New(), nil
		},
	})
}
