package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hancal/config"
	"hancal/internal/calendar"
	"hancal/internal/clients/caldav"
	"hancal/internal/notify"
	"hancal/internal/scheduler"
	"hancal/internal/server"
	"hancal/internal/service"
	"hancal/internal/storage"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	// Event times are wall-clock strings; anchor them in the configured zone
	// so view windows and reminder checks agree with the scheduler's clock.
	calendar.SetLocation(cfg.Timezone)

	store, err := storage.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to init storage: %v", err)
	}
	defer store.Close()

	var senders []service.Sender
	if cfg.TelegramEnabled() {
		tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("Failed to init telegram sender: %v", err)
		}
		senders = append(senders, tg)
	} else {
		senders = append(senders, notify.Logger{})
	}

	eventSvc := service.NewEventService(store)
	notifierSvc := service.NewNotifierService(store, senders...)

	caldavClient := caldav.NewClient(cfg.CalDAVURL, cfg.CalDAVUsername,
		cfg.CalDAVPassword, cfg.CalDAVCalendar)

	sched := scheduler.New(cfg, eventSvc, notifierSvc, senders...)
	api := server.New(cfg, eventSvc, notifierSvc, caldavClient)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := sched.Start(ctx); err != nil {
			log.Printf("Scheduler error: %v", err)
		}
	}()

	go func() {
		if err := api.ListenAndServe(); err != nil {
			log.Printf("API server error: %v", err)
		}
	}()

	log.Println("hancal started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")

	cancel()
	sched.Stop()

	log.Println("hancal stopped")
}
