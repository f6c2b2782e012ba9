package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ManuelReschke/AboCheckout/app/models"
	"github.com/ManuelReschke/AboCheckout/app/repository"
	"github.com/ManuelReschke/AboCheckout/internal/pkg/apperror"
	"github.com/ManuelReschke/AboCheckout/internal/pkg/cache"
	"github.com/ManuelReschke/AboCheckout/internal/pkg/checkout"
	"github.com/ManuelReschke/AboCheckout/internal/pkg/database"
	"github.com/ManuelReschke/AboCheckout/internal/pkg/env"
	"github.com/ManuelReschke/AboCheckout/internal/pkg/jobqueue"
	"github.com/ManuelReschke/AboCheckout/internal/pkg/mail"
	"github.com/ManuelReschke/AboCheckout/internal/pkg/messaging"
	"github.com/ManuelReschke/AboCheckout/internal/pkg/metrics/counter"
	"github.com/ManuelReschke/AboCheckout/internal/pkg/payment"
)

func main() {
	env.SetupEnvFile()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "worker":
		err = runWorker()
	case "create":
		if len(os.Args) < 3 {
			printUsage()
			os.Exit(1)
		}
		err = runCreate(os.Args[2])
	case "pending":
		err = runPending()
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		log.Printf("%s failed (%s): %v", os.Args[1], apperror.KindOf(err), err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: abocheckout <command>")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  worker           Run the email job queue and counter flushes until SIGINT/SIGTERM")
	fmt.Println("  create <file>    Create a checkout from a JSON request (use - for stdin)")
	fmt.Println("  pending          List checkouts still in status created")
}

func setupInfrastructure() {
	database.SetupDatabase()
	cache.SetupCache()
}

func newQueue() (*jobqueue.Queue, error) {
	mailCfg, err := mail.LoadConfig()
	if err != nil {
		return nil, err
	}
	sender, err := mail.New(mailCfg)
	if err != nil {
		return nil, err
	}
	return jobqueue.NewQueue(cache.GetClient(), env.GetEnvInt("JOBQUEUE_WORKERS", 3), sender), nil
}

func runWorker() error {
	setupInfrastructure()
	defer cache.Close()

	queue, err := newQueue()
	if err != nil {
		return err
	}

	counters := counter.New(cache.GetClient(), database.GetDB())
	manager := jobqueue.NewManager(queue, counters, env.GetEnvDuration("COUNTER_FLUSH_INTERVAL", 30*time.Second))
	manager.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("Received %s, shutting down", sig)

	manager.Stop()
	return nil
}

func runCreate(path string) error {
	setupInfrastructure()
	defer cache.Close()

	req, err := readRequest(path)
	if err != nil {
		return apperror.BadRequest("could not read checkout request: %v", err)
	}

	payCfg, err := payment.LoadConfig()
	if err != nil {
		return err
	}
	msgCfg, err := messaging.LoadConfig()
	if err != nil {
		return err
	}
	dispatcher, err := messaging.New(msgCfg)
	if err != nil {
		return err
	}
	if closer, ok := dispatcher.(io.Closer); ok {
		defer closer.Close()
	}

	mailCfg, err := mail.LoadConfig()
	if err != nil {
		return err
	}
	queue, err := newQueue()
	if err != nil {
		return err
	}

	svc := checkout.NewService(
		repository.NewRepositories(database.GetDB()),
		payment.NewStripeGateway(payCfg),
		dispatcher,
		jobqueue.NewQueuedSender(queue),
		mailCfg.Templates,
	).WithOutcomeRecorder(counter.New(cache.GetClient(), database.GetDB()))

	result, err := svc.Create(context.Background(), req)
	if result != nil {
		out := json.NewEncoder(os.Stdout)
		out.SetIndent("", "  ")
		if encErr := out.Encode(result.Checkout); encErr != nil {
			log.Printf("could not print checkout: %v", encErr)
		}
	}
	return err
}

func readRequest(path string) (*checkout.Request, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var req checkout.Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func runPending() error {
	database.SetupDatabase()

	repos := repository.NewRepositories(database.GetDB())
	checkouts, err := repos.Checkout.ListByStatus(models.CheckoutStatusCreated, 0, 100)
	if err != nil {
		return err
	}

	for _, c := range checkouts {
		fmt.Printf("%d\tclient=%d\toffer=%d\tcreated=%s\n", c.ID, c.ClientID, c.OfferID, c.CreatedAt.Format(time.RFC3339))
	}
	fmt.Printf("%d checkout(s) in status %s\n", len(checkouts), models.CheckoutStatusCreated)
	return nil
}
