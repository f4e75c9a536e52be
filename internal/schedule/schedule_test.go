package schedule

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/zulandar/missiondeck/internal/config"
)

type recordingStarter struct {
	mu      sync.Mutex
	prompts []string
	started chan struct{}
}

func newRecordingStarter() *recordingStarter {
	return &recordingStarter{started: make(chan struct{}, 8)}
}

func (r *recordingStarter) Start(ctx context.Context, prompt string, files []string) (string, error) {
	r.mu.Lock()
	r.prompts = append(r.prompts, prompt)
	r.mu.Unlock()
	r.started <- struct{}{}
	return "msn-sched", nil
}

func TestValidate(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr bool
	}{
		{"0 9 * * *", false},
		{"*/5 * * * *", false},
		{"not a cron expr", true},
		{"", true},
		{"0 9 * * * *", true}, // 6 fields not accepted
	}

	for _, tt := range tests {
		err := Validate(tt.expr)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
		}
	}
}

func TestNextCronDurationDaily(t *testing.T) {
	d := nextCronDuration("0 9 * * *")
	if d <= 0 || d > 24*time.Hour {
		t.Errorf("d = %v, want within (0, 24h]", d)
	}
}

func TestNextCronDurationEveryMinute(t *testing.T) {
	d := nextCronDuration("* * * * *")
	if d <= 0 || d > time.Minute {
		t.Errorf("d = %v, want within (0, 1m]", d)
	}
}

func TestNextCronDurationInvalid(t *testing.T) {
	if d := nextCronDuration("not a cron expr"); d != 0 {
		t.Errorf("d = %v, want 0", d)
	}
}

func TestNewRunnerRejectsBadCron(t *testing.T) {
	_, err := NewRunner([]config.ScheduleConfig{{Cron: "bogus", Prompt: "p"}}, newRecordingStarter())
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestRunnerFiresAndReschedules(t *testing.T) {
	starter := newRecordingStarter()
	r, err := NewRunner([]config.ScheduleConfig{
		{Cron: "0 9 * * *", Prompt: "daily digest review"},
	}, starter)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	r.next = func(expr string) time.Duration { return 5 * time.Millisecond }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	for i := 0; i < 2; i++ {
		select {
		case <-starter.started:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for fire %d", i+1)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop on cancel")
	}

	starter.mu.Lock()
	defer starter.mu.Unlock()
	if len(starter.prompts) < 2 || starter.prompts[0] != "daily digest review" {
		t.Fatalf("prompts = %v", starter.prompts)
	}
}

func TestRunnerNoSchedulesReturns(t *testing.T) {
	r, err := NewRunner(nil, newRecordingStarter())
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	done := make(chan struct{})
	go func() {
		r.Run(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return with no schedules")
	}
}
