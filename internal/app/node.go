package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/chroma/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/chroma/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/chroma/internal/adapters/memo"    //nolint:depguard // Wired in app layer
	"go.trai.ch/chroma/internal/adapters/records" //nolint:depguard // Wired in app layer
	"go.trai.ch/chroma/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/chroma/internal/core/ports"
	"go.trai.ch/chroma/internal/engine/computer"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			records.NodeID,
			computer.NodeID,
			watcher.NodeID,
			logger.NodeID,
			memo.RegistryNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	settings, err := graft.Dep[ports.SettingsLoader](ctx)
	if err != nil {
		return nil, err
	}
	source, err := graft.Dep[ports.RecordSource](ctx)
	if err != nil {
		return nil, err
	}
	comp, err := graft.Dep[*computer.Computer](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	reg, err := graft.Dep[*prometheus.Registry](ctx)
	if err != nil {
		return nil, err
	}
	return New(settings, source, comp, w, log, reg), nil
}
