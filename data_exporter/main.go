package main

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"log"
	"os"
	"strconv"
	"text/template"

	"github.com/alecthomas/kong"
	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Fatalf("loading dotenv failed: %s", err)
	}
}

func main() {
	var err error

	var db *sql.DB

	args := struct {
		Session            int    `name:"session" short:"s" help:"session number to export" required:""`
		Out                string `name:"out" short:"o" default:"session_{{.SessionNo}}.csv" help:"File to output to (templated)"`
		Format             string `name:"format" short:"f" enum:"csv,json" default:"csv" help:"Data format"`
		Hex                bool   `name:"hex" negatable:"" default:"true" help:"Render draw values as hex instead of decimal"`
		ExportColumnTitles bool   `name:"export_column_titles" negatable:"" default:"true" help:"(applicable only to CSV outputs) whether to include column titles"`
	}{}

	_ = kong.Parse(&args)

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

	defer db.Close()

	type Row struct {
		Seq   uint64 `json:"seq"`
		Value string `json:"value"`
	}

	rows, err := db.Query("SELECT seq, value FROM draws WHERE session_id = ? ORDER BY seq", args.Session)
	if err != nil {
		log.Fatalln(err)
	}

	defer rows.Close()

	var exported []Row

	for rows.Next() {
		var seq, value uint64
		if err := rows.Scan(&seq, &value); err != nil {
			log.Fatalln(err)
		}

		rendered := strconv.FormatUint(value, 10)
		if args.Hex {
			rendered = strconv.FormatUint(value, 16)
		}

		exported = append(exported, Row{Seq: seq, Value: rendered})
	}

	if err := rows.Err(); err != nil {
		log.Fatalln(err)
	}

	outNameTemplate, err := template.New("out").Parse(args.Out)
	if err != nil {
		log.Fatalln(err)
	}

	var outName bytes.Buffer
	if err := outNameTemplate.Execute(&outName, struct{ SessionNo int }{args.Session}); err != nil {
		log.Fatalln(err)
	}

	outFile, err := os.Create(outName.String())
	if err != nil {
		log.Fatalln(err)
	}

	defer outFile.Close()

	switch args.Format {
	case "csv":
		writer := csv.NewWriter(outFile)

		if args.ExportColumnTitles {
			_ = writer.Write([]string{"seq", "value"})
		}

		for _, row := range exported {
			_ = writer.Write([]string{strconv.FormatUint(row.Seq, 10), row.Value})
		}

		writer.Flush()

		if err := writer.Error(); err != nil {
			log.Fatalln(err)
		}

	case "json":
		encoder := json.NewEncoder(outFile)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(exported); err != nil {
			log.Fatalln(err)
		}
	}

	log.Printf("exported %d draws of session %d to %s", len(exported), args.Session, outName.String())
}
