package translator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/weld/internal/adapters/codegen" //nolint:depguard // Wired in engine layer
	"go.trai.ch/weld/internal/adapters/fs"      //nolint:depguard // Wired in engine layer
	"go.trai.ch/weld/internal/adapters/logger"  //nolint:depguard // Wired in engine layer
	"go.trai.ch/weld/internal/adapters/state"   //nolint:depguard // Wired in engine layer
	"go.trai.ch/weld/internal/core/ports"
)

// NodeID is the unique identifier for the translator engine Graft node.
const NodeID graft.ID = "engine.translator"

func init() {
	graft.Register(graft.Node[*Translator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.ResolverNodeID,
			fs.CheckerNodeID,
			fs.HasherNodeID,
			codegen.NodeID,
			state.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Translator, error) {
			resolver, err := graft.Dep[ports.UnitResolver](ctx)
			if err != nil {
				return nil, err
			}

			checker, err := graft.Dep[ports.StalenessChecker](ctx)
			if err != nil {
				return nil, err
			}

			generator, err := graft.Dep[ports.Generator](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.TranslationStore](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(resolver, checker, generator, hasher, store, log), nil
		},
	})
}
