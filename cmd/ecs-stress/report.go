package main

import (
	"io"
	"runtime"
	"slices"
	"strings"
	"text/template"
	"time"

	"github.com/plus3/carnot/ecs"
	"github.com/plus3/carnot/ecs/inspect"
)

type Report struct {
	Duration   time.Duration
	Entities   int
	Components int
	Systems    int

	TotalUpdates int64
	TotalTime    time.Duration
	UpdateTime   Stats
	Memory       MemoryUsage

	Counters  Counters
	World     *ecs.WorldStats
	Scheduler *ecs.SchedulerStats
	History   *inspect.FrameHistory
}

// MemoryUsage is the change in heap and GC counters over a run.
type MemoryUsage struct {
	HeapAlloc  int64
	TotalAlloc uint64
	NumGC      uint32
	GCPause    time.Duration
}

func memoryUsage(start, end *runtime.MemStats) MemoryUsage {
	return MemoryUsage{
		HeapAlloc:  int64(end.HeapAlloc) - int64(start.HeapAlloc),
		TotalAlloc: end.TotalAlloc - start.TotalAlloc,
		NumGC:      end.NumGC - start.NumGC,
		GCPause:    time.Duration(end.PauseTotalNs - start.PauseTotalNs),
	}
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P95     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	sorted := slices.Sorted(slices.Values(s.Samples))
	var total time.Duration
	for _, sample := range sorted {
		total += sample
	}
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Avg = total / time.Duration(len(sorted))
	s.P95 = sorted[(len(sorted)-1)*95/100]
}

const reportTemplate = `
# ECS Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Initial Entities:** {{.Entities}}
- **Component Types:** {{.Components}}
- **Registered Systems:** {{.Systems}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Frame Time:** avg {{.UpdateTime.Avg}}, p95 {{.UpdateTime.P95}}, min {{.UpdateTime.Min}}, max {{.UpdateTime.Max}}

## Workload
- Moved:    {{.Counters.Moved}}
- Damaged:  {{.Counters.Damaged}}
- Respawns: {{.Counters.Respawns}}
- Expired:  {{.Counters.Expired}}
- Spawned:  {{.Counters.Spawned}}

## World
` + "```" + `
{{inspect .}}
` + "```" + `

## Memory
- Heap delta:  {{.Memory.HeapAlloc}} bytes
- Allocated:   {{.Memory.TotalAlloc}} bytes
- GC cycles:   {{.Memory.NumGC}} ({{.Memory.GCPause}} paused)
`

var reportFuncs = template.FuncMap{
	"inspect": func(r *Report) (string, error) {
		var b strings.Builder
		if err := inspect.WriteStats(&b, r.World, r.Scheduler, r.History); err != nil {
			return "", err
		}
		return strings.TrimRight(b.String(), "\n"), nil
	},
}

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
