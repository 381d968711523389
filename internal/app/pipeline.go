// Package app — оркестрация прогона: сбор из всех источников, агрегация,
// запись артефакта.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rixia6254/info-teacher-radar/internal/news"
)

// ErrNotConfigured возвращается, когда пайплайн запущен без обязательных
// зависимостей.
var ErrNotConfigured = errors.New("pipeline dependencies not configured")

// Clock определяет источник времени (удобно подменять в тестах).
type Clock func() time.Time

// Collector собирает записи одного вида источников.
// По контракту не возвращает ошибку: отказ источника даёт пустой вклад.
type Collector interface {
	Name() string
	Collect(ctx context.Context) []news.RawItem
}

// Aggregator сводит сырые записи в итоговый артефакт.
type Aggregator interface {
	Artifact(raw []news.RawItem) news.Artifact
}

// ArtifactWriter сохраняет артефакт прогона.
type ArtifactWriter interface {
	Write(a news.Artifact) error
}

// PipelineDeps перечисляет зависимости пайплайна.
type PipelineDeps struct {
	Collectors []Collector
	Aggregator Aggregator
	Writer     ArtifactWriter
	Clock      Clock
}

// Pipeline инкапсулирует один прогон агрегации.
type Pipeline struct {
	collectors []Collector
	aggregator Aggregator
	writer     ArtifactWriter
	clock      Clock
}

// NewPipeline создаёт новый экземпляр пайплайна.
func NewPipeline(deps PipelineDeps) *Pipeline {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Pipeline{
		collectors: deps.Collectors,
		aggregator: deps.Aggregator,
		writer:     deps.Writer,
		clock:      clock,
	}
}

// Run исполняет полный цикл: параллельный сбор, агрегация, запись.
// Единственная фатальная ошибка — невозможность записать артефакт.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.validateDeps(); err != nil {
		return err
	}

	log.Println("Step 1: Collecting items from all sources...")
	raw := p.collectAll(ctx)
	log.Printf("Collected %d raw items", len(raw))

	log.Println("Step 2: Aggregating (dedup, classify, score, window)...")
	artifact := p.aggregator.Artifact(raw)
	log.Printf("Aggregated %d items", len(artifact.Items))

	log.Println("Step 3: Writing artifact...")
	if err := p.writer.Write(artifact); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}

	return nil
}

// collectAll — структурный fan-out/fan-in: по задаче на коллектор, общий
// join до агрегации. Коллекторы не разделяют изменяемого состояния: каждый
// пишет только свой слот, читается он после завершения всех задач.
func (p *Pipeline) collectAll(ctx context.Context) []news.RawItem {
	results := make([][]news.RawItem, len(p.collectors))

	var g errgroup.Group
	for i, collector := range p.collectors {
		i, collector := i, collector
		g.Go(func() error {
			items := collector.Collect(ctx)
			log.Printf("Source %q contributed %d items", collector.Name(), len(items))
			results[i] = items
			return nil
		})
	}
	// Коллекторы ошибок не возвращают; Wait — только точка join.
	_ = g.Wait()

	var all []news.RawItem
	for _, items := range results {
		all = append(all, items...)
	}
	return all
}

func (p *Pipeline) validateDeps() error {
	switch {
	case len(p.collectors) == 0,
		p.aggregator == nil,
		p.writer == nil,
		p.clock == nil:
		return ErrNotConfigured
	default:
		return nil
	}
}
