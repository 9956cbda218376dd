// Command robomock impersonates a laboratory robot on an AMQP topic
// exchange: it consumes "{robot_id}.cmd", simulates task execution against
// an in-memory world model, and publishes results, intermediate logs, and
// periodic heartbeats.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/c12-ai/robomock/pkg/broker"
	"github.com/c12-ai/robomock/pkg/config"
	"github.com/c12-ai/robomock/pkg/dispatch"
	"github.com/c12-ai/robomock/pkg/generators"
	"github.com/c12-ai/robomock/pkg/heartbeat"
	"github.com/c12-ai/robomock/pkg/precondition"
	"github.com/c12-ai/robomock/pkg/scenario"
	"github.com/c12-ai/robomock/pkg/simulator"
	"github.com/c12-ai/robomock/pkg/version"
	"github.com/c12-ai/robomock/pkg/wire"
	"github.com/c12-ai/robomock/pkg/worldmodel"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	configDir := flag.String("config-dir",
		getEnv("CONFIG_DIR", "./deploy/config"),
		"Path to configuration directory")
	shutdownTimeout := flag.Duration("shutdown-timeout", 10*time.Second,
		"How long to wait for in-flight long-running tasks before cancelling them")
	flag.Parse()

	envPath := filepath.Join(*configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		log.Printf("Warning: could not load %s: %v", envPath, err)
		log.Printf("Continuing with existing environment variables...")
	} else {
		log.Printf("Loaded environment from %s", envPath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Initialize(ctx, *configDir)
	if err != nil {
		log.Fatalf("Failed to initialize configuration: %v", err)
	}

	log := slog.With("robot_id", cfg.Identity.RobotID)
	log.Info("starting "+version.Full(), "config_dir", cfg.ConfigDir(), "exchange", cfg.Broker.Exchange)

	brokerClient, err := broker.NewClient(cfg.Broker)
	if err != nil {
		log.Error("failed to connect to broker", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := brokerClient.Close(); err != nil {
			log.Error("error closing broker connection", "error", err)
		}
	}()
	log.Info("connected to broker")

	queueName, err := brokerClient.DeclareCommandQueue(cfg.Identity.RobotID)
	if err != nil {
		log.Error("failed to declare command queue", "error", err)
		os.Exit(1)
	}
	log.Info("declared command queue", "queue", queueName)

	world := worldmodel.New()
	checker := precondition.New(world)

	source := generators.NewSource()
	selector := scenario.New(source, cfg.Behavior.FailureRate, cfg.Behavior.TimeoutRate, cfg.Behavior.DefaultScenario, scenario.DefaultTable())

	simCfg := simulator.Config{
		RobotID:            cfg.Identity.RobotID,
		ImageBaseURL:       cfg.Behavior.ImageBaseURL,
		DelayMin:           cfg.Behavior.MinDelaySeconds,
		DelayMax:           cfg.Behavior.MinDelaySeconds * 2,
		DelayMultiplier:    cfg.Behavior.BaseDelayMultiplier,
		DelayFloor:         cfg.Behavior.MinDelaySeconds,
		IntermediateTick:   cfg.Behavior.CCIntermediateTick(),
		REIntermediateTick: cfg.Behavior.REIntermediateTick(),
	}
	factory := simulator.NewFactory(source, simCfg)

	publisher := wire.NewPublisher(brokerClient.Channel(), brokerClient.Exchange(), cfg.Identity.RobotID)
	pipeline := dispatch.New(world, checker, selector, factory, publisher, cfg.Identity.RobotID)

	consumer := wire.NewConsumer(brokerClient.Channel(), queueName, cfg.Identity.RobotID)
	if err := consumer.Start(ctx, pipeline.Handle); err != nil {
		log.Error("failed to start consumer", "error", err)
		os.Exit(1)
	}
	log.Info("consumer started")

	emitter := heartbeat.New(publisher, world, cfg.Identity.RobotID, cfg.Behavior.HeartbeatInterval())
	emitter.Start(ctx)
	log.Info("heartbeat emitter started", "interval", cfg.Behavior.HeartbeatInterval())

	<-ctx.Done()
	log.Info("shutdown signal received, draining")

	consumer.Stop()
	emitter.Stop()
	pipeline.Shutdown(*shutdownTimeout)

	log.Info("shutdown complete")
}
