package common

import (
	"testing"

	"github.com/streadway/amqp"
)

func TestParseCreateRequestSeed(t *testing.T) {
	req, err := ParseCreateRequest([]byte(`{"variant": "trio", "params": {"seed": 12345}}`))
	if err != nil {
		t.Fatal(err)
	}

	params, err := ResolveParams(req)
	if err != nil {
		t.Fatal(err)
	}

	if params.Words != nil {
		t.Errorf("scalar seed resolved to state words %v", params.Words)
	}

	if params.Seed != 12345 {
		t.Errorf("got seed %d", params.Seed)
	}
}

func TestParseCreateRequestState(t *testing.T) {
	body := `{"variant": "duojr", "params": {"state": "00000000000000030000000000000005"}}`

	req, err := ParseCreateRequest([]byte(body))
	if err != nil {
		t.Fatal(err)
	}

	params, err := ResolveParams(req)
	if err != nil {
		t.Fatal(err)
	}

	if len(params.Words) != 2 || params.Words[0] != 3 || params.Words[1] != 5 {
		t.Errorf("got words %v", params.Words)
	}
}

func TestParseCreateRequestRejects(t *testing.T) {
	if _, err := ParseCreateRequest([]byte(`{"variant": "mt19937"}`)); err == nil {
		t.Error("unknown variant accepted")
	}

	if _, err := ParseCreateRequest([]byte(`not json`)); err == nil {
		t.Error("garbage accepted")
	}

	// word count has to match the variant
	req, err := ParseCreateRequest([]byte(`{"variant": "quad", "params": {"state": "0000000000000003"}}`))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ResolveParams(req); err == nil {
		t.Error("one state word accepted for a four word variant")
	}
}

func TestVariantWords(t *testing.T) {
	cases := map[string]int{
		VariantDuoJr: 2,
		VariantDuo:   2,
		VariantTrio:  3,
		VariantQuad:  4,
	}

	for variant, want := range cases {
		got, err := VariantWords(variant)
		if err != nil {
			t.Fatalf("%s: %s", variant, err)
		}

		if got != want {
			t.Errorf("%s: got %d words, want %d", variant, got, want)
		}
	}
}

func TestDrawBatchGobRoundTrip(t *testing.T) {
	batch := DrawBatch{
		SessionID: 7,
		Variant:   VariantTrio,
		FirstSeq:  1024,
		Draws:     []uint64{1, 0xdeadbeefcafebabe, 0xffffffffffffffff},
	}

	body, err := EncodeDrawBatch(batch)
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := ParseDrawBatch(&amqp.Delivery{Body: body})
	if err != nil {
		t.Fatal(err)
	}

	if decoded.SessionID != batch.SessionID || decoded.Variant != batch.Variant || decoded.FirstSeq != batch.FirstSeq {
		t.Errorf("header mismatch: %+v", decoded)
	}

	for i := range batch.Draws {
		if decoded.Draws[i] != batch.Draws[i] {
			t.Errorf("draw %d: got %016x, want %016x", i, decoded.Draws[i], batch.Draws[i])
		}
	}
}
