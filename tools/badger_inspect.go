package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"
	"github.com/vmihailenco/msgpack/v5"

	"voice-lab/domain"
)

func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to badger DB")
	prefix := flag.String("prefix", "session:", "Prefix to scan")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Device", "IP", "Created", "S3 Location", "PESQ", "SNR", "Category"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()

			err := item.Value(func(v []byte) error {
				var session domain.RecordingSession
				if err := msgpack.Unmarshal(v, &session); err != nil {
					// Au lieu de stopper tout le script, on log l'erreur et on continue
					fmt.Printf("Error unmarshaling key %s: %v\n", string(item.Key()), err)
					return nil
				}

				location := "-"
				if session.S3Location != nil {
					location = *session.S3Location
				}

				pesq, snr, category := "-", "-", "-"
				if session.AnalysisOutput != nil {
					pesq = fmt.Sprintf("%.2f", session.AnalysisOutput.PESQScore)
					if math.IsInf(session.AnalysisOutput.SNRdB, 1) {
						snr = "Infinity"
					} else {
						snr = fmt.Sprintf("%.2f", session.AnalysisOutput.SNRdB)
					}
					category = string(session.AnalysisOutput.QualityCategory)
				}

				// On affiche les 8 premiers caractères de l'id pour la lisibilité
				displayKey := strings.TrimPrefix(string(item.Key()), *prefix)
				if len(displayKey) > 8 {
					displayKey = displayKey[:8]
				}

				table.Append([]string{
					displayKey,
					session.DeviceName,
					session.IPAddress,
					session.CreatedAt.Format("15:04:05"),
					location,
					pesq,
					snr,
					category,
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	db, err := badger.Open(opts)
	if err != nil {
		// Si corruption détectée, essaie un open en write pour truncate
		if strings.Contains(err.Error(), "Log truncate required") {
			repairOpts := badger.DefaultOptions(path).
				WithLogger(nil).WithBypassLockGuard(true)

			db, err = badger.Open(repairOpts)
			if err != nil {
				return nil, fmt.Errorf("repair failed: %w", err)
			}

			// Ferme et réouvre en read-only
			db.Close()
			return badger.Open(opts)
		}
		return nil, err
	}
	return db, nil
}
