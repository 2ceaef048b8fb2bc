package main

import (
	"context"
	"fmt"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"lesson-notes-be/pkg/events"
	pktNats "lesson-notes-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Tail note lifecycle events mirrored to NATS",
	RunE:  runEvents,
}

func init() {
	eventsCmd.Flags().String("nats", "", "NATS URL (default: NATS_URL)")
	eventsCmd.Flags().String("type", ">", "Event type to follow, e.g. NOTE_EXPORTED")
}

func runEvents(cmd *cobra.Command, args []string) error {
	url, _ := cmd.Flags().GetString("nats")
	eventType, _ := cmd.Flags().GetString("type")
	if url == "" {
		url = loadConfig().Events.NatsURL
	}
	if url == "" {
		return fmt.Errorf("no NATS URL: set NATS_URL or --nats")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sub, err := pktNats.NewSubscriber(url, cliLogger(cmd))
	if err != nil {
		return err
	}
	defer sub.Close()

	stopConsume, err := sub.Subscribe(ctx, pktNats.Subject(eventType), "", func(ctx context.Context, e events.Event) error {
		printEvent(e)
		return nil
	})
	if err != nil {
		return err
	}
	defer stopConsume()

	color.Cyan("Following %s on %s (Ctrl+C to stop)", pktNats.Subject(eventType), url)
	<-ctx.Done()
	return nil
}

func printEvent(e events.Event) {
	line := fmt.Sprintf("%s  %s", e.Timestamp().Local().Format(time.TimeOnly), e.EventType())
	switch {
	case strings.HasSuffix(e.EventType(), "FAILED"):
		color.Red("%s", line)
	case strings.HasSuffix(e.EventType(), "STARTED"):
		color.Yellow("%s", line)
	default:
		color.Green("%s", line)
	}

	keys := make([]string, 0, len(e.Payload()))
	for k := range e.Payload() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("    %s: %v\n", k, e.Payload()[k])
	}
}
