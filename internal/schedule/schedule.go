// Package schedule starts missions on recurring cron schedules.
package schedule

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/zulandar/missiondeck/internal/config"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Validate checks that expr is a parseable 5-field cron expression.
func Validate(expr string) error {
	if _, err := cronParser.Parse(expr); err != nil {
		return fmt.Errorf("schedule: parse %q: %w", expr, err)
	}
	return nil
}

// nextCronDuration parses a 5-field cron expression and returns the duration
// until the next fire time. Returns 0 on parse error.
func nextCronDuration(expr string) time.Duration {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return 0
	}
	next := sched.Next(time.Now())
	d := time.Until(next)
	if d < 0 {
		return 0
	}
	return d
}

// Starter creates a mission from a prompt. Satisfied by mission.Controller.
type Starter interface {
	Start(ctx context.Context, prompt string, files []string) (string, error)
}

// Runner fires configured schedules until its context is canceled.
type Runner struct {
	schedules []config.ScheduleConfig
	starter   Starter

	// next computes the wait before a schedule fires. Overridable in tests.
	next func(expr string) time.Duration
}

// NewRunner validates every schedule's cron expression up front.
func NewRunner(schedules []config.ScheduleConfig, starter Starter) (*Runner, error) {
	for _, s := range schedules {
		if err := Validate(s.Cron); err != nil {
			return nil, err
		}
	}
	return &Runner{
		schedules: schedules,
		starter:   starter,
		next:      nextCronDuration,
	}, nil
}

// Run blocks until ctx is canceled, starting a mission each time a schedule
// fires. It returns immediately if no schedules are configured.
func (r *Runner) Run(ctx context.Context) {
	if len(r.schedules) == 0 {
		return
	}

	timers := make([]*time.Timer, len(r.schedules))
	for i, s := range r.schedules {
		if d := r.next(s.Cron); d > 0 {
			timers[i] = time.NewTimer(d)
		}
	}
	defer func() {
		for _, t := range timers {
			if t != nil {
				t.Stop()
			}
		}
	}()

	// Funnel all timer fires into one channel carrying the schedule index.
	fired := make(chan int)
	for i, t := range timers {
		if t == nil {
			continue
		}
		go func(i int, t *time.Timer) {
			for {
				select {
				case <-ctx.Done():
					return
				case <-t.C:
					select {
					case fired <- i:
					case <-ctx.Done():
						return
					}
				}
			}
		}(i, t)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case i := <-fired:
			r.fire(ctx, r.schedules[i])
			if d := r.next(r.schedules[i].Cron); d > 0 {
				timers[i].Reset(d)
			}
		}
	}
}

// fire starts one scheduled mission.
func (r *Runner) fire(ctx context.Context, s config.ScheduleConfig) {
	id, err := r.starter.Start(ctx, s.Prompt, s.Files)
	if err != nil {
		log.Printf("schedule: start mission for %q: %v", s.Cron, err)
		return
	}
	log.Printf("schedule: started mission %s for %q", id, s.Cron)
}
