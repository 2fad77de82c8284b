// cmd/worker-manager/workers.go
package main

import (
	"time"

	"civic-relevance-workers/internal/common/camunda"
	"civic-relevance-workers/internal/common/config"
	"civic-relevance-workers/internal/common/logger"
	"civic-relevance-workers/internal/common/observability"
	"civic-relevance-workers/internal/dataset"

	// Data Access Workers (3)
	ic "civic-relevance-workers/internal/workers/data-access/index-community"
	lds "civic-relevance-workers/internal/workers/data-access/load-dataset"
	mr "civic-relevance-workers/internal/workers/data-access/migrate-resources"

	// Explorer Workers (3)
	bmc "civic-relevance-workers/internal/workers/explorer/build-micro-community"
	ip "civic-relevance-workers/internal/workers/explorer/inspect-profile"
	sr "civic-relevance-workers/internal/workers/explorer/score-relevance"

	// Expertise Workers (3)
	ce "civic-relevance-workers/internal/workers/expertise/compare-expertise"
	re "civic-relevance-workers/internal/workers/expertise/rank-experts"
	se "civic-relevance-workers/internal/workers/expertise/score-expertise"

	// Communication Workers (1)
	nc "civic-relevance-workers/internal/workers/communication/notify-community"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

type registration struct {
	taskType string
	handler  camunda.JobHandler
}

// buildHandlers constructs every handler the configuration can serve. Workers
// whose backing service is missing are left out and logged.
func buildHandlers(cfg *config.Config, src dataset.Source, conns *connections, log logger.Logger, obs *observability.Observability) []registration {
	timeout := func(taskType string) time.Duration {
		return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
	}
	threshold := cfg.Explorer.DefaultThreshold

	var regs []registration
	add := func(taskType string, h camunda.JobHandler) {
		regs = append(regs, registration{taskType: taskType, handler: h})
	}

	// --- 1. Data Access Workers ---
	{
		c := lds.LoadConfig()
		c.Timeout = timeout(lds.TaskType)
		add(lds.TaskType, lds.NewHandler(c, src, log))
	}
	{
		c := mr.LoadConfig()
		c.Timeout = timeout(mr.TaskType)
		add(mr.TaskType, mr.NewHandler(c, src, profileStore(cfg, conns), log))
	}
	if conns.es != nil {
		c := ic.LoadConfig()
		c.Timeout = timeout(ic.TaskType)
		c.DefaultThreshold = threshold
		c.Index = cfg.Explorer.CommunityIndex
		add(ic.TaskType, ic.NewHandler(c, src, conns.es, obs, log))
	} else {
		log.Info("worker skipped, elasticsearch not configured", map[string]interface{}{"taskType": ic.TaskType})
	}

	// --- 2. Explorer Workers ---
	{
		c := sr.LoadConfig()
		c.Timeout = timeout(sr.TaskType)
		c.DefaultThreshold = threshold
		add(sr.TaskType, sr.NewHandler(c, src, log))
	}
	{
		c := bmc.LoadConfig()
		c.Timeout = timeout(bmc.TaskType)
		c.DefaultThreshold = threshold
		add(bmc.TaskType, bmc.NewHandler(c, src, obs, log))
	}
	{
		c := ip.LoadConfig()
		c.Timeout = timeout(ip.TaskType)
		c.DefaultThreshold = threshold
		add(ip.TaskType, ip.NewHandler(c, src, log))
	}

	// --- 3. Expertise Workers ---
	{
		c := se.LoadConfig()
		c.Timeout = timeout(se.TaskType)
		add(se.TaskType, se.NewHandler(c, src, log))
	}
	{
		c := re.LoadConfig()
		c.Timeout = timeout(re.TaskType)
		c.DefaultThreshold = threshold
		add(re.TaskType, re.NewHandler(c, src, log))
	}
	{
		c := ce.LoadConfig()
		c.Timeout = timeout(ce.TaskType)
		add(ce.TaskType, ce.NewHandler(c, src, log))
	}

	// --- 4. Communication Workers ---
	{
		c := nc.LoadConfig()
		c.Timeout = timeout(nc.TaskType)
		c.DefaultThreshold = threshold
		c.Recipients = cfg.Integrations.AWS.SES.ToEmails

		var publisher nc.Publisher
		if conns.sns != nil {
			publisher = conns.sns
		}
		var mailer nc.Mailer
		if conns.ses != nil {
			mailer = conns.ses
		}
		add(nc.TaskType, nc.NewHandler(c, src, publisher, mailer, log))
	}

	return regs
}

// profileStore picks where migrated profiles are written back. An HTTP
// source is read-only.
func profileStore(cfg *config.Config, conns *connections) mr.ProfileStore {
	switch cfg.Explorer.DataSource {
	case config.SourcePostgres:
		if conns.pg != nil {
			return dataset.NewPostgresStore(conns.pg.DB)
		}
	case config.SourceFile, "":
		return dataset.NewFileSource(cfg.Explorer.ProfilesPath, cfg.Explorer.IssuesPath)
	}
	return nil
}

// startWorkers opens a job worker for every enabled registration.
func startWorkers(client zbc.Client, cfg *config.Config, regs []registration, log logger.Logger, obs *observability.Observability) []*camunda.CamundaWorker {
	var workers []*camunda.CamundaWorker
	for _, r := range regs {
		if !config.IsWorkerEnabled(cfg, r.taskType) {
			log.Info("worker disabled", map[string]interface{}{"taskType": r.taskType})
			continue
		}
		wcfg := config.GetWorkerConfig(cfg, r.taskType)
		workers = append(workers, camunda.NewWorker(client, r.taskType, wcfg, r.handler, log, obs))
		log.Info("worker started", map[string]interface{}{
			"taskType":      r.taskType,
			"maxJobsActive": wcfg.MaxJobsActive,
			"timeout":       wcfg.Timeout,
		})
	}
	return workers
}
