package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/streadway/amqp"
	"github.com/xor-shift/randserver/common"
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Fatalf("loading dotenv failed: %s", err)
	}
}

func main() {
	var err error

	var consumer *common.AMQPConsumer
	var app *iris.Application

	var mu sync.Mutex
	lastBatches := map[uint64]common.DrawBatch{}

	if consumer, err = common.NewAMQPConsumer(
		"consumer_fe_queue",
		"consumer_fe_consumer",
		func(delivery amqp.Delivery) error {
			batch, err := common.ParseDrawBatch(&delivery)
			if err != nil {
				log.Printf("error decoding a batch with gob: %s", err)
				return err
			}

			log.Printf("session %d (%s): %d draws starting at %d",
				batch.SessionID,
				batch.Variant,
				len(batch.Draws),
				batch.FirstSeq)

			mu.Lock()
			lastBatches[batch.SessionID] = batch
			mu.Unlock()

			return nil
		}); err != nil {
		log.Fatalln(err)
	}

	if err = consumer.Start(); err != nil {
		log.Fatalln(err)
	}

	app = iris.New()

	app.Get("/test", func(ctx iris.Context) {
		_, _ = ctx.Text("OK")
	})

	app.Get("/data/{id:uint64}", func(ctx iris.Context) {
		id, _ := strconv.ParseUint(ctx.Params().Get("id"), 10, 64)

		mu.Lock()
		batch, ok := lastBatches[id]
		mu.Unlock()

		if !ok {
			ctx.StatusCode(iris.StatusNotFound)
			return
		}

		_, _ = ctx.JSON(batch)
	})

	if err = app.Listen(fmt.Sprintf(":%s", os.Getenv("CONSUMER_FE_PORT"))); err != nil {
		log.Fatalln(err)
	}
}
