// Package logger provides structured logging and CSV export of cycle
// results.
package logger

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pulseview/syshealth/config"
	"github.com/pulseview/syshealth/models"
)

// Logger is the application logger with CSV export support.
type Logger struct {
	*logrus.Logger
	csvWriter *csv.Writer
	csvFile   *os.File
	csvMu     sync.Mutex
	logFile   *lumberjack.Logger
}

var (
	instance *Logger
	once     sync.Once
)

// Get returns the singleton logger instance.
func Get() *Logger {
	once.Do(func() {
		instance = &Logger{
			Logger: logrus.New(),
		}
	})
	return instance
}

// Init initializes the logger with the provided configuration.
func (l *Logger) Init(cfg *config.LoggingConfig, configDir string) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if cfg.ToFile {
		logPath := cfg.FilePath
		if !filepath.IsAbs(logPath) {
			logPath = filepath.Join(configDir, logPath)
		}
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		maxSize := 10 // MB
		if cfg.MaxFileSize != "" {
			fmt.Sscanf(cfg.MaxFileSize, "%dMB", &maxSize)
		}

		l.logFile = &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    maxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   true,
		}
		l.SetOutput(io.MultiWriter(os.Stderr, l.logFile))
	} else {
		l.SetOutput(os.Stderr)
	}

	if cfg.CSVExport {
		csvPath := cfg.CSVPath
		if !filepath.IsAbs(csvPath) {
			csvPath = filepath.Join(configDir, csvPath)
		}
		if err := l.initCSV(csvPath); err != nil {
			l.Warnf("Failed to initialize CSV export: %v", err)
		}
	}

	return nil
}

var csvHeader = []string{
	"Timestamp",
	"CPU%",
	"CPU_Band",
	"Temp_C",
	"Mem%",
	"Swap%",
	"Disk%",
	"Disk_Read_Bps",
	"Disk_Write_Bps",
	"Net_Up_Bps",
	"Net_Down_Bps",
	"Battery%",
}

// initCSV opens the CSV file for appending, writing a header when the
// file is new.
func (l *Logger) initCSV(path string) error {
	l.csvMu.Lock()
	defer l.csvMu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	isNewFile := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		isNewFile = true
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	l.csvFile = file
	l.csvWriter = csv.NewWriter(file)

	if isNewFile {
		if err := l.csvWriter.Write(csvHeader); err != nil {
			return err
		}
		l.csvWriter.Flush()
	}
	return nil
}

// csvRecord flattens one cycle result. Absent fields render empty, not
// zero, so spreadsheets can tell "no sensor" from "idle".
func csvRecord(r *models.Result) []string {
	s := &r.Snapshot
	rec := make([]string, 0, len(csvHeader))
	rec = append(rec, s.Timestamp.Format("2006-01-02 15:04:05"))

	if s.CPU != nil {
		rec = append(rec, fmt.Sprintf("%.1f", s.CPU.AveragePercent))
	} else {
		rec = append(rec, "")
	}
	rec = append(rec, r.Health[models.KindCPU].String())
	if s.CPU != nil && s.CPU.TemperatureC != nil {
		rec = append(rec, fmt.Sprintf("%.1f", *s.CPU.TemperatureC))
	} else {
		rec = append(rec, "")
	}
	if s.Memory != nil {
		rec = append(rec, fmt.Sprintf("%.1f", s.Memory.UsedPercent), fmt.Sprintf("%.1f", s.Memory.SwapPercent))
	} else {
		rec = append(rec, "", "")
	}
	if s.Disk != nil {
		rec = append(rec, fmt.Sprintf("%.1f", s.Disk.UsedPercent))
	} else {
		rec = append(rec, "")
	}
	rec = append(rec,
		fmt.Sprintf("%.0f", r.Rates.DiskReadBps),
		fmt.Sprintf("%.0f", r.Rates.DiskWriteBps),
		fmt.Sprintf("%.0f", r.Rates.NetUploadBps),
		fmt.Sprintf("%.0f", r.Rates.NetDownloadBps),
	)
	if s.Battery != nil {
		rec = append(rec, fmt.Sprintf("%.0f", s.Battery.Percent))
	} else {
		rec = append(rec, "")
	}
	return rec
}

// LogResult appends one cycle result to the CSV file.
func (l *Logger) LogResult(r *models.Result) {
	if l.csvWriter == nil || l.csvFile == nil {
		return
	}

	l.csvMu.Lock()
	defer l.csvMu.Unlock()

	if err := l.csvWriter.Write(csvRecord(r)); err != nil {
		l.Errorf("Failed to write CSV record: %v", err)
		return
	}
	l.csvWriter.Flush()
}

// ExportCSV writes a history of cycle results to a new CSV file.
func (l *Logger) ExportCSV(path string, results []*models.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range results {
		if err := writer.Write(csvRecord(r)); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the logger and associated resources.
func (l *Logger) Close() {
	l.csvMu.Lock()
	defer l.csvMu.Unlock()

	if l.csvWriter != nil {
		l.csvWriter.Flush()
	}
	if l.csvFile != nil {
		l.csvFile.Close()
	}
	if l.logFile != nil {
		l.logFile.Close()
	}
}

// Cycle logs a sampling-cycle message.
func (l *Logger) Cycle(format string, args ...interface{}) {
	l.WithField("component", "engine").Debugf(format, args...)
}

// Alert logs an alert message.
func (l *Logger) Alert(kind string, format string, args ...interface{}) {
	l.WithFields(logrus.Fields{
		"component": "alerter",
		"kind":      kind,
	}).Warnf(format, args...)
}
