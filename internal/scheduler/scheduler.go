package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"hancal/config"
	"hancal/internal/calendar"
	"hancal/internal/service"
)

// Scheduler drives the recurring work: the per-minute notification tick and
// the daily agenda digest.
type Scheduler struct {
	cron     *cron.Cron
	cfg      *config.Config
	events   *service.EventService
	notifier *service.NotifierService
	senders  []service.Sender
}

func New(cfg *config.Config, events *service.EventService, notifier *service.NotifierService, senders ...service.Sender) *Scheduler {
	c := cron.New(cron.WithLocation(cfg.Timezone))

	return &Scheduler{
		cron:     c,
		cfg:      cfg,
		events:   events,
		notifier: notifier,
		senders:  senders,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	// Notification windows are minute-granular, so poll every minute.
	if _, err := s.cron.AddFunc("* * * * *", s.checkNotifications); err != nil {
		return fmt.Errorf("add notification check: %w", err)
	}

	hm := strings.Split(s.cfg.DigestTime, ":")
	if len(hm) != 2 {
		return fmt.Errorf("invalid digest time: %s", s.cfg.DigestTime)
	}
	digestSpec := fmt.Sprintf("%s %s * * *", hm[1], hm[0])
	if _, err := s.cron.AddFunc(digestSpec, s.dailyDigest); err != nil {
		return fmt.Errorf("add daily digest: %w", err)
	}

	s.cron.Start()
	log.Printf("Scheduler started (TZ: %s, digest: %s)", s.cfg.Timezone, s.cfg.DigestTime)

	<-ctx.Done()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Scheduler stopped")
}

func (s *Scheduler) checkNotifications() {
	now := time.Now().In(s.cfg.Timezone)
	if _, err := s.notifier.Tick(now); err != nil {
		log.Printf("Error checking notifications: %v", err)
	}
}

func (s *Scheduler) dailyDigest() {
	now := time.Now().In(s.cfg.Timezone)

	events, err := s.events.List()
	if err != nil {
		log.Printf("Error getting events for digest: %v", err)
		return
	}

	today := calendar.FormatDate(now)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("오늘(%s)의 일정\n", today))

	count := 0
	for _, e := range events {
		if e.Date != today {
			continue
		}
		count++
		sb.WriteString(fmt.Sprintf("- %s~%s %s", e.StartTime, e.EndTime, e.Title))
		if e.Location != "" {
			sb.WriteString(" @ " + e.Location)
		}
		sb.WriteByte('\n')
	}
	if count == 0 {
		sb.WriteString("등록된 일정이 없습니다.")
	}

	text := strings.TrimSpace(sb.String())
	for _, sender := range s.senders {
		if err := sender.Send(text); err != nil {
			log.Printf("Error sending daily digest: %v", err)
		}
	}
}
