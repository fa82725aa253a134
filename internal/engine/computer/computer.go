// Package computer memoizes the pipeline stages behind their cache keys.
package computer

import (
	"context"
	"fmt"

	"go.trai.ch/chroma/internal/core/domain"
	"go.trai.ch/chroma/internal/core/ports"
	"go.trai.ch/chroma/internal/engine/pipeline"
)

// Computer serves derived tables and plot values, computing each key at most
// once.
type Computer struct {
	tables ports.Memo[domain.TableKey, domain.DerivedTable]
	plots  ports.Memo[domain.PlotKey, domain.PlotValue]
	tracer ports.Tracer
	logger ports.Logger
}

// New creates a Computer backed by the given memos.
func New(
	tables ports.Memo[domain.TableKey, domain.DerivedTable],
	plots ports.Memo[domain.PlotKey, domain.PlotValue],
	tracer ports.Tracer,
	logger ports.Logger,
) *Computer {
	return &Computer{
		tables: tables,
		plots:  plots,
		tracer: tracer,
		logger: logger,
	}
}

// Table returns the derived table of raw under s.
func (c *Computer) Table(ctx context.Context, raw domain.RawTable, s domain.Settings) (domain.DerivedTable, error) {
	key := domain.NewTableKey(raw, s)
	return c.tables.GetOrCompute(key, func() (domain.DerivedTable, error) {
		_, span := c.tracer.Start(ctx, "compute table")
		defer span.End()
		span.SetAttribute("chroma.key", key.String())
		span.SetAttribute("chroma.sort", s.Sort.String())
		span.SetAttribute("chroma.rows_in", raw.Len())

		c.logger.Debug(fmt.Sprintf("computing table %s from %d records", key, raw.Len()))
		table, err := pipeline.ComputeTable(raw, s)
		if err != nil {
			span.RecordError(err)
			return table, err
		}
		span.SetAttribute("chroma.rows_out", table.Len())
		return table, nil
	})
}

// Plot returns the plot value of derived under s. The key is seeded with the
// derived table's hash.
func (c *Computer) Plot(ctx context.Context, derived domain.DerivedTable, s domain.Settings) (domain.PlotValue, error) {
	key := domain.NewPlotKey(derived, s)
	return c.plots.GetOrCompute(key, func() (domain.PlotValue, error) {
		_, span := c.tracer.Start(ctx, "compute plot")
		defer span.End()
		span.SetAttribute("chroma.key", key.String())
		span.SetAttribute("chroma.stack", s.Plot.Stack)

		c.logger.Debug(fmt.Sprintf("computing plot %s from %d rows", key, derived.Len()))
		plot, err := pipeline.ComputePlot(derived, s)
		if err != nil {
			span.RecordError(err)
			return plot, err
		}
		span.SetAttribute("chroma.bar_groups", len(plot.Bars))
		return plot, nil
	})
}

// View computes the derived table and then its plot value.
func (c *Computer) View(ctx context.Context, raw domain.RawTable, s domain.Settings) (domain.DerivedTable, domain.PlotValue, error) {
	table, err := c.Table(ctx, raw, s)
	if err != nil {
		return domain.DerivedTable{}, domain.PlotValue{}, err
	}
	plot, err := c.Plot(ctx, table, s)
	if err != nil {
		return table, domain.PlotValue{}, err
	}
	return table, plot, nil
}
