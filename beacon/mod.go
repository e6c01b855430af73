package beacon

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/go-sql-driver/mysql"
	"github.com/streadway/amqp"
	"github.com/xor-shift/randserver/common"
	"github.com/xor-shift/randserver/romu"
	"github.com/xor-shift/randserver/util"
)

type session struct {
	id      uint64
	variant string

	gen romu.Source

	// initial is kept verbatim so any draw can be re-derived later; the
	// generator itself only ever moves forward.
	initial   []uint64
	drawCount uint64
}

// Beacon owns the live generator sessions. Draws are served from memory,
// published to the fanout exchange by a worker pool, and the session
// record (variant + initial state) is persisted so draws stay verifiable
// after the fact.
type Beacon struct {
	db       *sql.DB
	amqpConn *amqp.Connection

	mu       sync.Mutex
	sessions map[uint64]*session
	stopped  bool

	publisherWG sync.WaitGroup
	outgoing    chan common.DrawBatch
}

func NewBeacon() (*Beacon, error) {
	var err error

	beacon := &Beacon{
		sessions: map[uint64]*session{},
		outgoing: make(chan common.DrawBatch, 128),
	}

	if beacon.amqpConn, err = amqp.Dial(os.Getenv("AMQP_URL")); err != nil {
		return nil, err
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

	if beacon.db, err = sql.Open("mysql", dbConfig.FormatDSN()); err != nil {
		return nil, err
	}

	return beacon, nil
}

func newGenerator(variant string, params common.StreamParams) (romu.Source, []uint64, error) {
	switch variant {
	case common.VariantDuoJr:
		if params.Words != nil {
			gen, err := romu.NewRomuDuoJrFromState(params.Words[0], params.Words[1])
			if err != nil {
				return nil, nil, err
			}
			return gen, append([]uint64{}, gen.State[:]...), nil
		}

		gen := romu.NewRomuDuoJr(params.Seed)
		return gen, append([]uint64{}, gen.State[:]...), nil

	case common.VariantDuo:
		if params.Words != nil {
			gen, err := romu.NewRomuDuoFromState(params.Words[0], params.Words[1])
			if err != nil {
				return nil, nil, err
			}
			return gen, append([]uint64{}, gen.State[:]...), nil
		}

		gen := romu.NewRomuDuo(params.Seed)
		return gen, append([]uint64{}, gen.State[:]...), nil

	case common.VariantTrio:
		if params.Words != nil {
			gen, err := romu.NewRomuTrioFromState(params.Words[0], params.Words[1], params.Words[2])
			if err != nil {
				return nil, nil, err
			}
			return gen, append([]uint64{}, gen.State[:]...), nil
		}

		gen := romu.NewRomuTrio(params.Seed)
		return gen, append([]uint64{}, gen.State[:]...), nil

	case common.VariantQuad:
		if params.Words != nil {
			gen, err := romu.NewRomuQuadFromState(params.Words[0], params.Words[1], params.Words[2], params.Words[3])
			if err != nil {
				return nil, nil, err
			}
			return gen, append([]uint64{}, gen.State[:]...), nil
		}

		gen := romu.NewRomuQuad(params.Seed)
		return gen, append([]uint64{}, gen.State[:]...), nil

	default:
		return nil, nil, fmt.Errorf("unknown variant %q", variant)
	}
}

// replayDraw recomputes the draw at seq from an initial state vector.
// Replaying from the start every time is honestly wasteful, but romu is
// fast enough for the sequence numbers we see in practice.
func replayDraw(variant string, initial []uint64, seq uint64) (uint64, error) {
	gen, _, err := newGenerator(variant, common.StreamParams{Words: initial})
	if err != nil {
		return 0, err
	}

	var result uint64

	for i := uint64(0); i <= seq; i++ {
		result = gen.Next()
	}

	return result, nil
}

// NewSession seeds a generator, records the session, and returns its ID
// together with the initial state rendered as hex.
func (b *Beacon) NewSession(variant string, params common.StreamParams) (uint64, string, error) {
	gen, initial, err := newGenerator(variant, params)
	if err != nil {
		return 0, "", err
	}

	initialString := util.ArrayToString(initial)

	rows, err := b.db.Query(
		"insert into sessions (variant, initial_state) values (?, ?) returning session_id",
		variant, initialString)

	if err != nil {
		return 0, "", err
	}

	defer rows.Close()

	if !rows.Next() {
		return 0, "", errors.New("no rows returned from sql insert query")
	}

	var sessionID uint64
	if err := rows.Scan(&sessionID); err != nil {
		return 0, "", err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.sessions[sessionID] = &session{
		id:      sessionID,
		variant: variant,
		gen:     gen,
		initial: initial,
	}

	return sessionID, initialString, nil
}

// Draw advances the session count times and returns the batch. The batch
// is also handed to the publisher workers.
func (b *Beacon) Draw(sessionID uint64, count uint) (common.DrawBatch, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stopped {
		return common.DrawBatch{}, errors.New("the beacon is shutting down")
	}

	sess, ok := b.sessions[sessionID]
	if !ok {
		return common.DrawBatch{}, fmt.Errorf("no session %d", sessionID)
	}

	draws := make([]uint64, count)
	for i := range draws {
		draws[i] = sess.gen.Next()
	}

	batch := common.DrawBatch{
		SessionID: sessionID,
		Variant:   sess.variant,
		FirstSeq:  sess.drawCount,
		Draws:     draws,
	}

	sess.drawCount += uint64(count)

	b.outgoing <- batch

	return batch, nil
}

// Verify checks that value really is draw number seq of the session's
// stream, by deterministic replay from the recorded initial state.
func (b *Beacon) Verify(sessionID uint64, seq uint64, value uint64) error {
	b.mu.Lock()
	sess, ok := b.sessions[sessionID]
	b.mu.Unlock()

	if !ok {
		return fmt.Errorf("no session %d", sessionID)
	}

	if seq >= sess.drawCount {
		return fmt.Errorf("draw %d has not been served yet (served: %d)", seq, sess.drawCount)
	}

	expected, err := replayDraw(sess.variant, sess.initial, seq)
	if err != nil {
		return err
	}

	if value != expected {
		return errors.New(fmt.Sprintf("bad draw value (got: %d, expected: %d)", value, expected))
	}

	return nil
}

type SessionInfo struct {
	SessionID uint64 `json:"sessionId"`
	Variant   string `json:"variant"`
	Initial   string `json:"initialState"`
	DrawCount uint64 `json:"drawCount"`
}

func (b *Beacon) Info(sessionID uint64) (SessionInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sess, ok := b.sessions[sessionID]
	if !ok {
		return SessionInfo{}, fmt.Errorf("no session %d", sessionID)
	}

	return SessionInfo{
		SessionID: sess.id,
		Variant:   sess.variant,
		Initial:   util.ArrayToString(sess.initial),
		DrawCount: sess.drawCount,
	}, nil
}

// Start launches the publisher workers draining the batch channel.
func (b *Beacon) Start(numWorkers uint) {
	b.publisherWG.Add(int(numWorkers))

	for i := uint(0); i < numWorkers; i++ {
		go b.task()
	}
}

func (b *Beacon) Stop() {
	// Draw publishes under b.mu, so closing under the same lock means no
	// send can race the close.
	b.mu.Lock()

	if !b.stopped {
		b.stopped = true
		close(b.outgoing)
	}

	b.mu.Unlock()

	b.publisherWG.Wait()
}

func (b *Beacon) task() {
	defer b.publisherWG.Done()

	var err error
	var amqpChan *amqp.Channel

	if amqpChan, err = b.amqpConn.Channel(); err != nil {
		log.Fatalf("Failed to establish an amqp channel: %s", err)
		return
	}

	defer amqpChan.Close()

	if err = common.DeclareExchange(amqpChan); err != nil {
		log.Fatalf("Failed to declare an amqp exchange: %s", err)
		return
	}

	for batch := range b.outgoing {
		if err := publishBatch(amqpChan, batch); err != nil {
			log.Printf("Error while publishing a batch of %d draws: %s", len(batch.Draws), err)
		}
	}
}

func publishBatch(amqpChan *amqp.Channel, batch common.DrawBatch) error {
	body, err := common.EncodeDrawBatch(batch)
	if err != nil {
		return err
	}

	return amqpChan.Publish(
		common.ExchangeName,
		"",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/octet-stream",
			Body:        body,
		})
}
