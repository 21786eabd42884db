/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/doctorchannel/apiserver/config"
	"github.com/doctorchannel/apiserver/internal/events"
	"github.com/doctorchannel/apiserver/internal/mq"
	"github.com/spf13/cobra"
)

// workerCmd consumes appointment lifecycle events. This is the hook for
// notification delivery; for now it logs every event it sees.
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consumes appointment events from the message queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		queue, err := mq.NewFromConfig(cmd.Context(), cfg.MQ)
		if err != nil {
			return err
		}
		if queue == nil {
			return fmt.Errorf("MQ_DRIVER is required for the worker")
		}
		defer queue.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log.Printf("worker consuming %s", events.Channel)
		err = queue.Subscribe(ctx, events.Channel, handleAppointmentEvent)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		log.Println("worker stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func handleAppointmentEvent(ctx context.Context, msg mq.Message) error {
	var event events.AppointmentEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		// Drop malformed payloads instead of redelivering them forever.
		log.Printf("worker: discarding malformed event %s: %v", msg.ID, err)
		return nil
	}

	switch event.Event {
	case events.AppointmentCreated:
		log.Printf("appointment %s booked for doctor %s (notify %s)",
			event.AppointmentID, event.DoctorID, event.PatientEmail)
	case events.AppointmentStatusChanged:
		log.Printf("appointment %s moved %s -> %s (notify %s)",
			event.AppointmentID, event.PreviousStatus, event.Status, event.PatientEmail)
	case events.AppointmentDeleted:
		log.Printf("appointment %s removed", event.AppointmentID)
	default:
		log.Printf("worker: unknown event %q on message %s", event.Event, msg.ID)
	}
	return nil
}
