package commands

import (
	"fmt"
	"os"

	"github.com/wifista-project/wifista-go/pkg/log"
)

// RunFilter reads the log file and writes matching events to a new log
// file in the same format.
func RunFilter(path, output string, filter *log.Filter) error {
	reader, err := log.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	encoder := log.NewEncoder(out)

	events, err := reader.ReadAll(filter)
	if err != nil {
		return fmt.Errorf("failed to read event: %w", err)
	}

	for _, event := range events {
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to write event: %w", err)
		}
	}

	fmt.Fprintf(os.Stderr, "Wrote %d events to %s\n", len(events), output)
	return nil
}
