package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/xor-shift/randserver/common"
	"github.com/xor-shift/randserver/romu"
	"github.com/xor-shift/randserver/util"
)

// producer is a synthetic client doubling as an end-to-end check: it seeds
// a local generator, asks the server for a stream with the same seed, and
// compares every served draw against the local one.

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Fatalf("loading dotenv failed: %s", err)
	}
}

type createResponse struct {
	SessionID    uint64 `json:"sessionId"`
	InitialState string `json:"initialState"`
}

type drawResponse struct {
	FirstSeq uint64   `json:"firstSeq"`
	Draws    []string `json:"draws"`
}

func newLocalGenerator(variant string, seed uint64) (romu.Source, fmt.Stringer) {
	switch variant {
	case common.VariantDuoJr:
		gen := romu.NewRomuDuoJr(seed)
		return gen, gen
	case common.VariantDuo:
		gen := romu.NewRomuDuo(seed)
		return gen, gen
	case common.VariantTrio:
		gen := romu.NewRomuTrio(seed)
		return gen, gen
	case common.VariantQuad:
		gen := romu.NewRomuQuad(seed)
		return gen, gen
	default:
		log.Fatalf("unknown variant %q", variant)
		return nil, nil
	}
}

func postJSON(url string, request any, response any) error {
	body, err := json.Marshal(request)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", url, resp.StatusCode)
	}

	if response == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(response)
}

func main() {
	args := struct {
		Server  string `name:"server" default:"http://localhost:8080" help:"beacon base URL"`
		Variant string `name:"variant" short:"v" enum:"duojr,duo,trio,quad" default:"trio" help:"romu variant"`
		Seed    uint64 `name:"seed" short:"s" default:"1" help:"scalar seed"`
		Count   int    `name:"count" short:"n" default:"256" help:"draws to fetch per request"`
		Rounds  int    `name:"rounds" short:"r" default:"4" help:"number of draw requests"`
	}{}

	_ = kong.Parse(&args)

	local, stateString := newLocalGenerator(args.Variant, args.Seed)

	var created createResponse
	if err := postJSON(args.Server+"/stream", common.CreateRequest{
		Variant: args.Variant,
		Params:  common.SeedParams{Seed: args.Seed},
	}, &created); err != nil {
		log.Fatalf("creating a stream failed: %s", err)
	}

	if created.InitialState != stateString.String() {
		log.Fatalf("initial state mismatch: server %s, local %s", created.InitialState, stateString)
	}

	// parse it back too, the hex round trip is part of what we check
	if _, err := util.StringToUint64Array(created.InitialState); err != nil {
		log.Fatalf("server returned an unparseable state %q: %s", created.InitialState, err)
	}

	log.Printf("session %d confirmed initial state %s", created.SessionID, created.InitialState)

	seq := uint64(0)
	var lastDraw uint64

	for round := 0; round < args.Rounds; round++ {
		var drawn drawResponse

		resp, err := http.Get(fmt.Sprintf("%s/stream/%d/draw?count=%d", args.Server, created.SessionID, args.Count))
		if err != nil {
			log.Fatalf("draw request failed: %s", err)
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		if err != nil {
			log.Fatalf("draw request failed (body): %s", err)
		}

		if err := json.Unmarshal(body, &drawn); err != nil {
			log.Fatalf("draw request failed (json): %s", err)
		}

		if drawn.FirstSeq != seq {
			log.Fatalf("sequence mismatch: server at %d, local at %d", drawn.FirstSeq, seq)
		}

		for _, rendered := range drawn.Draws {
			served, err := strconv.ParseUint(rendered, 16, 64)
			if err != nil {
				log.Fatalf("bad draw %q: %s", rendered, err)
			}

			expected := local.Next()
			if served != expected {
				log.Fatalf("draw %d mismatch: served %016x, local %016x", seq, served, expected)
			}

			lastDraw = served
			seq++
		}
	}

	// have the server attest the last draw from its own records
	verifyBody, err := json.Marshal(map[string]any{
		"seq":   seq - 1,
		"value": strconv.FormatUint(lastDraw, 16),
	})
	if err != nil {
		log.Fatalln(err)
	}

	verifyURL := fmt.Sprintf("%s/stream/%d/verify", args.Server, created.SessionID)

	resp, err := http.Post(verifyURL, "application/json", bytes.NewReader(verifyBody))
	if err != nil {
		log.Fatalf("verify request failed: %s", err)
	}

	verdict, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	if err != nil {
		log.Fatalf("verify request failed (body): %s", err)
	}

	if string(verdict) != "+VERIFY_OK" {
		log.Fatalf("verify failed: %q", string(verdict))
	}

	log.Printf("%d draws matched, verify of draw %d passed", seq, seq-1)
}
