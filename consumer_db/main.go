package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/streadway/amqp"
	"github.com/xor-shift/randserver/common"
)

const insertDrawQuery = "INSERT INTO draws (session_id, seq, value) VALUES (?, ?, ?)"

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Fatalf("loading dotenv failed: %s", err)
	}
}

func main() {
	var err error

	var amqpConn *amqp.Connection
	var amqpChan *amqp.Channel
	var amqpQueue amqp.Queue
	var amqpConsumer <-chan amqp.Delivery
	var db *sql.DB

	if amqpConn, err = amqp.Dial(os.Getenv("AMQP_URL")); err != nil {
		log.Fatalf("Failed to dial amqp: %s", err)
	}

	if amqpChan, err = amqpConn.Channel(); err != nil {
		log.Fatalf("Failed to establish an amqp channel: %s", err)
	}

	defer amqpChan.Close()

	if err = common.DeclareExchange(amqpChan); err != nil {
		log.Fatalf("Failed to declare an amqp exchange: %s", err)
	}

	if amqpQueue, err = amqpChan.QueueDeclare(
		"draw_batch_queue_db", // name
		false,                 // durable
		false,                 // delete when unused
		true,                  // exclusive
		false,                 // no-wait
		nil,                   // arguments
	); err != nil {
		log.Fatalf("Failed to declare an amqp queue: %s", err)
	}

	if err = amqpChan.QueueBind(
		amqpQueue.Name,      // queue name
		"",                  // routing key
		common.ExchangeName, // exchange
		false,
		nil,
	); err != nil {
		log.Fatalf("Failed to bind an amqp queue: %s", err)
	}

	if amqpConsumer, err = amqpChan.Consume(
		amqpQueue.Name, // queue
		"",             // consumer
		true,           // auto-ack
		false,          // exclusive
		false,          // no-local
		false,          // no-wait
		nil,            // args
	); err != nil {
		log.Fatalf("Failed to start an amqp consumer: %s", err)
	}

	dbConfig := mysql.Config{
		User:                 os.Getenv("DB_USER"),
		Passwd:               os.Getenv("DB_PASSWORD"),
		Addr:                 os.Getenv("DB_ADDRESS"),
		DBName:               os.Getenv("DB_NAME"),
		Collation:            "utf8mb4_general_ci",
		Net:                  "tcp",
		AllowNativePasswords: true,
	}

	if db, err = sql.Open("mysql", dbConfig.FormatDSN()); err != nil {
		log.Fatalln(err)
	}

	processBatch := func(batch common.DrawBatch) error {
		tx, err := db.BeginTx(context.TODO(), nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		var stmt *sql.Stmt
		if stmt, err = tx.Prepare(insertDrawQuery); err != nil {
			return err
		}
		defer stmt.Close()

		for i, v := range batch.Draws {
			if _, err = stmt.Exec(batch.SessionID, batch.FirstSeq+uint64(i), v); err != nil {
				return err
			}
		}

		return tx.Commit()
	}

	for delivery := range amqpConsumer {
		batch, err := common.ParseDrawBatch(&delivery)
		if err != nil {
			log.Printf("error decoding a batch with gob: %s", err)
			continue
		}

		if err := processBatch(batch); err != nil {
			log.Printf("failed archiving a batch of %d draws for session %d: %s",
				len(batch.Draws), batch.SessionID, err)
		}
	}
}
