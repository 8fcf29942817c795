package di

import (
	"staysync/infras/kafka"
	"staysync/infras/otel"
	"staysync/infras/postgres"
	"staysync/internal/domains/booking/consumer"
	"staysync/internal/domains/channelsync/worker"
	"staysync/transport/http"

	goRedis "github.com/redis/go-redis/v9"
)

// App is everything the service process runs and has to stop on shutdown.
type App struct {
	HTTP      *http.HTTP
	Pool      *worker.Pool
	Scheduler *worker.Scheduler
	Consumer  *consumer.Consumer

	Otel  otel.Otel
	Kafka kafka.Client
	DB    *postgres.Connection
	Redis *goRedis.Client
}
