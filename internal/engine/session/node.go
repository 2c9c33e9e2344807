package session

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/weld/internal/adapters/logger"    //nolint:depguard // Wired in engine layer
	"go.trai.ch/weld/internal/adapters/telemetry" //nolint:depguard // Wired in engine layer
	"go.trai.ch/weld/internal/adapters/yaegi"     //nolint:depguard // Wired in engine layer
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/weld/internal/engine/translator"
)

// NodeID is the unique identifier for the session engine Graft node.
const NodeID graft.ID = "engine.session"

func init() {
	graft.Register(graft.Node[*Session]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			translator.NodeID,
			yaegi.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Session, error) {
			tr, err := graft.Dep[*translator.Translator](ctx)
			if err != nil {
				return nil, err
			}

			loader, err := graft.Dep[ports.ArtifactLoader](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return New(tr, loader, log, tracer), nil
		},
	})
}
