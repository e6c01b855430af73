package common

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/streadway/amqp"
	"github.com/xor-shift/randserver/util"
)

const (
	VariantDuoJr = "duojr"
	VariantDuo   = "duo"
	VariantTrio  = "trio"
	VariantQuad  = "quad"
)

func VariantWords(variant string) (int, error) {
	switch variant {
	case VariantDuoJr, VariantDuo:
		return 2, nil
	case VariantTrio:
		return 3, nil
	case VariantQuad:
		return 4, nil
	default:
		return 0, fmt.Errorf("unknown variant %q", variant)
	}
}

// CreateRequest is the body of POST /stream. Params is variant-shaped:
// either {"seed": n} or {"state": "<hex words>"}, so it stays untyped
// until ResolveParams looks at it.
type CreateRequest struct {
	Variant string      `json:"variant"`
	Params  interface{} `json:"params"`
}

type SeedParams struct {
	Seed uint64 `json:"seed" mapstructure:"seed"`
}

type StateParams struct {
	State string `json:"state" mapstructure:"state"`
}

// StreamParams is the resolved form: Words is nil for scalar seeding.
type StreamParams struct {
	Seed  uint64
	Words []uint64
}

func ParseCreateRequest(body []byte) (req CreateRequest, err error) {
	if err = json.Unmarshal(body, &req); err != nil {
		return
	}

	if _, err = VariantWords(req.Variant); err != nil {
		return
	}

	return
}

func ResolveParams(req CreateRequest) (params StreamParams, err error) {
	var stateParams StateParams
	if err = mapstructure.Decode(req.Params, &stateParams); err == nil && stateParams.State != "" {
		var words []uint64
		if words, err = util.StringToUint64Array(stateParams.State); err != nil {
			return
		}

		var n int
		if n, err = VariantWords(req.Variant); err != nil {
			return
		}

		if len(words) != n {
			err = fmt.Errorf("variant %q wants %d state words, got %d", req.Variant, n, len(words))
			return
		}

		params.Words = words
		return
	}

	var seedParams SeedParams
	if err = mapstructure.Decode(req.Params, &seedParams); err != nil {
		err = errors.New(fmt.Sprintf("params are neither a seed nor a state: %s", err))
		return
	}

	params.Seed = seedParams.Seed
	return
}

// DrawBatch is one served run of draws, as published to the fanout
// exchange and archived by consumer_db.
type DrawBatch struct {
	SessionID uint64   `json:"sessionId"`
	Variant   string   `json:"variant"`
	FirstSeq  uint64   `json:"firstSeq"`
	Draws     []uint64 `json:"draws"`
}

func EncodeDrawBatch(batch DrawBatch) ([]byte, error) {
	var buf bytes.Buffer

	if err := gob.NewEncoder(&buf).Encode(batch); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func ParseDrawBatch(delivery *amqp.Delivery) (batch DrawBatch, err error) {
	err = gob.NewDecoder(bytes.NewReader(delivery.Body)).Decode(&batch)
	return
}
