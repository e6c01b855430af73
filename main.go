package main

import (
	"log"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/xor-shift/randserver/beacon"
	"github.com/xor-shift/randserver/common"
)

var (
	app *iris.Application
	bcn *beacon.Beacon
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Fatalf("loading dotenv failed: %s", err)
	}

	app = iris.New()

	bcn, err = beacon.NewBeacon()
	if err != nil {
		log.Fatalf("creating the beacon failed: %s", err)
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

type verifyRequest struct {
	Seq   uint64 `json:"seq"`
	Value string `json:"value"`
}

func main() {
	bcn.Start(1)

	app.Post("/stream", func(ctx iris.Context) {
		app.Logger().Printf("stream create request from %s", ctx.RemoteAddr())

		body, err := ctx.GetBody()
		if err != nil {
			app.Logger().Printf("/stream error (body): %s", err)
			return
		}

		req, err := common.ParseCreateRequest(body)
		if err != nil {
			app.Logger().Printf("/stream error (parse): %s", err)
			ctx.StatusCode(iris.StatusBadRequest)
			return
		}

		params, err := common.ResolveParams(req)
		if err != nil {
			app.Logger().Printf("/stream error (params): %s", err)
			ctx.StatusCode(iris.StatusBadRequest)
			return
		}

		sessionID, initialState, err := bcn.NewSession(req.Variant, params)
		if err != nil {
			app.Logger().Warnf("/stream error (session): %s", err)
			ctx.StatusCode(iris.StatusInternalServerError)
			return
		}

		app.Logger().Printf("started %s session %d with state %s", req.Variant, sessionID, initialState)

		_, _ = ctx.JSON(createResponse{
			SessionID:    sessionID,
			InitialState: initialState,
		})
	})

	app.Get("/stream/{id:uint64}", func(ctx iris.Context) {
		id, _ := strconv.ParseUint(ctx.Params().Get("id"), 10, 64)

		info, err := bcn.Info(id)
		if err != nil {
			ctx.StatusCode(iris.StatusNotFound)
			return
		}

		_, _ = ctx.JSON(info)
	})

	app.Get("/stream/{id:uint64}/draw", func(ctx iris.Context) {
		id, _ := strconv.ParseUint(ctx.Params().Get("id"), 10, 64)
		count := ctx.URLParamIntDefault("count", 1)

		if count < 1 || count > 65536 {
			ctx.StatusCode(iris.StatusBadRequest)
			return
		}

		batch, err := bcn.Draw(id, uint(count))
		if err != nil {
			app.Logger().Printf("/stream/%d/draw error: %s", id, err)
			ctx.StatusCode(iris.StatusNotFound)
			return
		}

		rendered := make([]string, len(batch.Draws))
		for i, v := range batch.Draws {
			rendered[i] = strconv.FormatUint(v, 16)
		}

		_, _ = ctx.JSON(drawResponse{
			FirstSeq: batch.FirstSeq,
			Draws:    rendered,
		})
	})

	app.Post("/stream/{id:uint64}/verify", func(ctx iris.Context) {
		id, _ := strconv.ParseUint(ctx.Params().Get("id"), 10, 64)

		var req verifyRequest
		if err := ctx.ReadJSON(&req); err != nil {
			app.Logger().Printf("/stream/%d/verify error (body): %s", id, err)
			ctx.StatusCode(iris.StatusBadRequest)
			return
		}

		value, err := strconv.ParseUint(req.Value, 16, 64)
		if err != nil {
			app.Logger().Printf("/stream/%d/verify error (value): %s", id, err)
			ctx.StatusCode(iris.StatusBadRequest)
			return
		}

		if err := bcn.Verify(id, req.Seq, value); err != nil {
			app.Logger().Warnf("/stream/%d/verify failed: %s", id, err)

			_, _ = ctx.Text("+VERIFY_FAIL")
			return
		}

		_, _ = ctx.Text("+VERIFY_OK")
	})

	if err := app.Listen(":8080"); err != nil {
		log.Fatalln(err)
	}
}
