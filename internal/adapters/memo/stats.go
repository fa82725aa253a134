package memo

import (
	"cmp"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.trai.ch/zerr"
)

// Stats is the memo traffic of one stage.
type Stats struct {
	Stage     string
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Snapshot reads the memo counters from g, one entry per stage, ordered by
// stage name.
func Snapshot(g prometheus.Gatherer) ([]Stats, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to gather memo metrics")
	}

	byStage := make(map[string]*Stats)
	for _, family := range families {
		var field func(*Stats) *uint64
		switch strings.TrimPrefix(family.GetName(), "chroma_memo_") {
		case "hits_total":
			field = func(s *Stats) *uint64 { return &s.Hits }
		case "misses_total":
			field = func(s *Stats) *uint64 { return &s.Misses }
		case "evictions_total":
			field = func(s *Stats) *uint64 { return &s.Evictions }
		default:
			continue
		}
		for _, metric := range family.GetMetric() {
			stage := stageLabel(metric)
			s, ok := byStage[stage]
			if !ok {
				s = &Stats{Stage: stage}
				byStage[stage] = s
			}
			*field(s) = uint64(metric.GetCounter().GetValue())
		}
	}

	stats := make([]Stats, 0, len(byStage))
	for _, s := range byStage {
		stats = append(stats, *s)
	}
	slices.SortFunc(stats, func(a, b Stats) int { return cmp.Compare(a.Stage, b.Stage) })
	return stats, nil
}

func stageLabel(m *dto.Metric) string {
	for _, label := range m.GetLabel() {
		if label.GetName() == "stage" {
			return label.GetValue()
		}
	}
	return ""
}
