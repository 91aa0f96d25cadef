package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/pixeltrainer/internal/engine"
)

var csvHeader = []string{"Habit ID", "Habit", "Type", "Frequency", "Difficulty", "Completed At", "Capture #"}

// ToCSV writes one row per recorded completion to path.
func ToCSV(habits []engine.Habit, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, habits); err != nil {
		return err
	}
	return f.Close()
}

// WriteCSV writes the completion rows to w, habits in collection order and
// completions oldest first.
func WriteCSV(out io.Writer, habits []engine.Habit) error {
	w := csv.NewWriter(out)

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, h := range habits {
		for i, c := range h.Completions {
			row := []string{
				h.ID,
				h.Name,
				string(h.Type),
				string(h.Frequency),
				string(h.Difficulty),
				c.Local().Format(time.RFC3339),
				strconv.Itoa(i + 1),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}
