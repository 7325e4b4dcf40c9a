package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/justuswilhelm/binview/internal/config"
	"github.com/justuswilhelm/binview/internal/store"
)

// historyLimit is the number of scans listed by the history command.
const historyLimit = 20

// cmdHistory lists recorded scans, newest first. With a target path only
// that file's scans are shown.
func cmdHistory(cfg *config.Config, target string) error {
	if _, err := os.Stat(cfg.History.Path); err != nil {
		return fmt.Errorf("no scan history at %s", cfg.History.Path)
	}

	s, err := store.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer s.Close()

	var scans []store.Scan
	if target != "" {
		scans, err = s.ScansForPath(target, historyLimit)
	} else {
		scans, err = s.RecentScans(historyLimit)
	}
	if err != nil {
		return err
	}

	if len(scans) == 0 {
		fmt.Println("No scans recorded")
		return nil
	}

	for _, scan := range scans {
		period := "-"
		if scan.Period != nil {
			period = fmt.Sprintf("%d", *scan.Period)
		}
		fmt.Printf("%s  %-30s %8d bytes  entropy %.2f..%.2f (mean %.2f)  period %-4s %s\n",
			scan.Timestamp.Format(time.RFC3339),
			scan.Path,
			scan.Size,
			scan.MinEntropy, scan.MaxEntropy, scan.MeanEntropy,
			period,
			hex.EncodeToString(scan.Digest[:8]),
		)
	}
	return nil
}
