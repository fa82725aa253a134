package memo

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/chroma/internal/core/domain"
	"go.trai.ch/chroma/internal/core/ports"
)

const (
	// RegistryNodeID is the unique identifier for the metrics registry Graft node.
	RegistryNodeID graft.ID = "adapter.memo.registry"
	// MetricsNodeID is the unique identifier for the memo metrics Graft node.
	MetricsNodeID graft.ID = "adapter.memo.metrics"
	// TableMemoNodeID is the unique identifier for the derived table memo Graft node.
	TableMemoNodeID graft.ID = "adapter.memo.table"
	// PlotMemoNodeID is the unique identifier for the plot value memo Graft node.
	PlotMemoNodeID graft.ID = "adapter.memo.plot"
)

func init() {
	graft.Register(graft.Node[*prometheus.Registry]{
		ID:        RegistryNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*prometheus.Registry, error) {
			return prometheus.NewRegistry(), nil
		},
	})

	graft.Register(graft.Node[*Metrics]{
		ID:        MetricsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{RegistryNodeID},
		Run: func(ctx context.Context) (*Metrics, error) {
			reg, err := graft.Dep[*prometheus.Registry](ctx)
			if err != nil {
				return nil, err
			}
			return NewMetrics(reg), nil
		},
	})

	graft.Register(graft.Node[ports.Memo[domain.TableKey, domain.DerivedTable]]{
		ID:        TableMemoNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{MetricsNodeID},
		Run: func(ctx context.Context) (ports.Memo[domain.TableKey, domain.DerivedTable], error) {
			m, err := graft.Dep[*Metrics](ctx)
			if err != nil {
				return nil, err
			}
			return New[domain.TableKey, domain.DerivedTable]("table", DefaultSize, m)
		},
	})

	graft.Register(graft.Node[ports.Memo[domain.PlotKey, domain.PlotValue]]{
		ID:        PlotMemoNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{MetricsNodeID},
		Run: func(ctx context.Context) (ports.Memo[domain.PlotKey, domain.PlotValue], error) {
			m, err := graft.Dep[*Metrics](ctx)
			if err != nil {
				return nil, err
			}
			return New[domain.PlotKey, domain.PlotValue]("plot", DefaultSize, m)
		},
	})
}
