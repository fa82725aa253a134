package computer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/chroma/internal/adapters/logger"    //nolint:depguard // Wired in engine layer
	"go.trai.ch/chroma/internal/adapters/memo"      //nolint:depguard // Wired in engine layer
	"go.trai.ch/chroma/internal/adapters/telemetry" //nolint:depguard // Wired in engine layer
	"go.trai.ch/chroma/internal/core/domain"
	"go.trai.ch/chroma/internal/core/ports"
)

// NodeID is the unique identifier for the computer Graft node.
const NodeID graft.ID = "engine.computer"

func init() {
	graft.Register(graft.Node[*Computer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			memo.TableMemoNodeID,
			memo.PlotMemoNodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Computer, error) {
			tables, err := graft.Dep[ports.Memo[domain.TableKey, domain.DerivedTable]](ctx)
			if err != nil {
				return nil, err
			}
			plots, err := graft.Dep[ports.Memo[domain.PlotKey, domain.PlotValue]](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(tables, plots, tracer, log), nil
		},
	})
}
