package main

import (
	"context"
	"log"
	"time"

	"luckywheel/internal/datastore"
	"luckywheel/internal/services"

	"github.com/robfig/cron/v3"
	"github.com/uptrace/bun"
)

// DrawJob closes the previous day shortly after local midnight. Two firings
// are registered; selection is idempotent so the second one is a no-op
// safety net for a missed or crashed first run.
type DrawJob struct {
	Db          *bun.DB
	ServiceDraw *services.ServiceDraw
}

func NewDrawJob(db *bun.DB, serviceDraw *services.ServiceDraw) *DrawJob {
	return &DrawJob{
		Db:          db,
		ServiceDraw: serviceDraw,
	}
}

func (j *DrawJob) Start(cronRunner *cron.Cron) {
	primary := j.timeline(services.CONFIG_CRONJOB_TIME_DRAW_PRIMARY, services.DEFAULT_CRONJOB_TIME_DRAW_PRIMARY)
	secondary := j.timeline(services.CONFIG_CRONJOB_TIME_DRAW_SECONDARY, services.DEFAULT_CRONJOB_TIME_DRAW_SECONDARY)

	_, err := cronRunner.AddFunc(primary, j.runScheduledTask)
	log.Println("Draw Cronjob start at:", time.Now().Format("2006-01-02 15:04:05"), "cron:", primary, err)

	_, err = cronRunner.AddFunc(secondary, j.runScheduledTask)
	log.Println("Draw Cronjob (retry) start at:", time.Now().Format("2006-01-02 15:04:05"), "cron:", secondary, err)
}

func (j *DrawJob) timeline(key string, fallback string) string {
	timeline, err := datastore.GetConfigByKey(context.Background(), j.Db, key)
	if err != nil || timeline == nil || timeline.Value == "" {
		return fallback
	}
	return timeline.Value
}

func (j *DrawJob) runScheduledTask() {
	ctx := context.Background()

	day := j.ServiceDraw.PreviousDay()
	log.Println("Start daily draw for", day)

	result, err := j.ServiceDraw.SelectWinner(ctx, day)
	if err != nil {
		log.Println("draw failed:", err)
		return
	}

	log.Println("Draw finished:", day, result.Outcome)
}
