package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

type EngineConfig struct {
	ID         int
	Goroutines int
	Shuffle    bool
	Seed       uint64
}

// RunRecord is one timed count of a board under one EngineConfig.
type RunRecord struct {
	RunID       string `parquet:"run_id"`
	Board       string `parquet:"board,dict"`
	Config      int32  `parquet:"config"` // EngineConfig.ID
	Repeat      int32  `parquet:"repeat"`
	Goroutines  int32  `parquet:"goroutines"`
	Count       uint64 `parquet:"count"`
	DurationNs  int64  `parquet:"duration_ns"`
	Expanded    int64  `parquet:"expanded"`
	MemoHits    int64  `parquet:"memo_hits"`
	SharedWaits int64  `parquet:"shared_waits"`
	Completions int64  `parquet:"completions"`
	Escapes     int64  `parquet:"escapes"`
	Spawned     int64  `parquet:"spawned"`
}

func NewRunRecord(runID, board string, config EngineConfig, repeat int, count uint64, metric SearchMetric) RunRecord {
	return RunRecord{
		RunID:       runID,
		Board:       board,
		Config:      int32(config.ID),
		Repeat:      int32(repeat),
		Goroutines:  int32(metric.Goroutines),
		Count:       count,
		DurationNs:  metric.Duration.Nanoseconds(),
		Expanded:    metric.Expanded,
		MemoHits:    metric.MemoHits,
		SharedWaits: metric.SharedWaits,
		Completions: metric.Completions,
		Escapes:     metric.Escapes,
		Spawned:     metric.Spawned,
	}
}

type Writer struct {
	baseDir string
}

func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteEngineConfigs(configs []EngineConfig) error {
	path := filepath.Join(w.baseDir, "engine_configs.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create engine configs file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "goroutines", "shuffle", "seed"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write engine configs header: %w", err)
	}

	for _, config := range configs {
		row := []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Goroutines),
			strconv.FormatBool(config.Shuffle),
			strconv.FormatUint(config.Seed, 10),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write engine config row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteRunRecords(records []RunRecord) error {
	path := filepath.Join(w.baseDir, "runs.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create run records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"run_id", "board", "config", "repeat", "goroutines", "count", "duration",
		"expanded", "memo_hits", "shared_waits", "completions", "escapes", "spawned"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write run records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.RunID,
			record.Board,
			strconv.Itoa(int(record.Config)),
			strconv.Itoa(int(record.Repeat)),
			strconv.Itoa(int(record.Goroutines)),
			strconv.FormatUint(record.Count, 10),
			time.Duration(record.DurationNs).String(),
			strconv.FormatInt(record.Expanded, 10),
			strconv.FormatInt(record.MemoHits, 10),
			strconv.FormatInt(record.SharedWaits, 10),
			strconv.FormatInt(record.Completions, 10),
			strconv.FormatInt(record.Escapes, 10),
			strconv.FormatInt(record.Spawned, 10),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write run record row: %w", err)
		}
	}

	return nil
}

// WriteRunParquet stores the records as runs.parquet, writing to a temporary
// name first and renaming it into place.
func (w *Writer) WriteRunParquet(records []RunRecord) (string, error) {
	finalPath := filepath.Join(w.baseDir, "runs.parquet")
	tmpPath := finalPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, records,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "run_record_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename parquet: %w", err)
	}

	return finalPath, nil
}
